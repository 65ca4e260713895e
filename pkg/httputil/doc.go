// Package httputil fetches page documents over HTTP.
//
// # Overview
//
// [Client] downloads documents from http(s) URLs so the CLI can lay out a
// page published elsewhere:
//
//	client := httputil.NewClient(fileCache, logger)
//	doc, err := client.Document(ctx, "https://example.com/pages/article.yaml", false)
//
// The document format is taken from the URL path's extension.
//
// # Caching
//
// Response bodies are stored in the given [cache.Cache] under a key derived
// from the URL, for [DefaultTTL]. Pass refresh to bypass cache reads.
//
// # Retry
//
// Network errors, 429 and 5xx responses are retried with exponential
// backoff via [cache.RetryWithBackoff]. Other failures are returned
// immediately:
//
//   - 404: NOT_FOUND
//   - any other non-2xx status: NETWORK_ERROR
//   - bodies over [MaxBodyBytes]: INVALID_DOCUMENT
//
// [cache.Cache]: github.com/matzehuels/siderail/pkg/cache
// [cache.RetryWithBackoff]: github.com/matzehuels/siderail/pkg/cache
package httputil
