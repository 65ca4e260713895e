// Package pkg provides the core libraries for siderail, a right-hand rail
// layout engine.
//
// # Overview
//
// siderail lays out a page's sidebar: the rail beside the article column is
// cut into fixed-height regions that follow the content, ad slots are packed
// into regions with enough free space, and widgets are placed at the top,
// middle or bottom of the rail. The pkg directory is organized into four
// areas:
//
//  1. Domain logic: [dom], [rail]
//  2. Input and output: [page], [plan], [render]
//  3. Orchestration: [pipeline]
//  4. Infrastructure: [cache], [errors], [observability], [httputil], [buildinfo]
//
// # Architecture
//
// The typical data flow through siderail:
//
//	page document (TOML, YAML or JSON)
//	         ↓
//	    [page] package (decode, validate, build a dom fixture)
//	         ↓
//	    [rail] package (group content, cut regions, run queued commands)
//	         ↓
//	    [rail] package (PlaceSlots, PlaceItem)
//	         ↓
//	    [plan] package (snapshot of rails, regions and children)
//	         ↓
//	    [render] packages (SVG, DOT, tree, PNG, PDF)
//
// # Quick Start
//
// Lay out a document and render the page diagram:
//
//	doc, err := page.ReadFile("article.toml")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts["svg"]
//
// # Main Packages
//
// ## Domain Logic
//
// [dom] - A minimal node tree with boxes, classes and datasets. Rails read
// geometry through [dom.Geometry] and relayout when a [dom.Notifier]
// announces a change.
//
// [rail] - The rail itself. [rail.New] groups the content column, computes
// region geometry and builds the region elements. [rail.Rail.PlaceSlots]
// packs slots by free space and [rail.Rail.PlaceItem] positions widgets.
// Commands queued before the regions exist run once they do.
//
// ## Input and Output
//
// [page] - Page documents and the fixtures built from them. A fixture can be
// updated in place so live rails relayout on the new geometry.
//
// [plan] - The serialized layout: rails, regions, children and leftover
// slots, keyed by a UUID.
//
// [render] - Format conversion (SVG to PDF/PNG via rsvg-convert) plus two
// renderers:
//
//   - [render/railsvg]: the page diagram, content beside each rail
//   - [render/tree]: rail → region → child hierarchy drawn by graphviz
//
// ## Orchestration
//
// [pipeline] - The layout → render pipeline shared by the CLI and the API,
// with caching of plans and artifacts. [pipeline.Layout] keeps rails alive
// across document updates.
//
// ## Infrastructure
//
// [cache] - File, Redis and null caches behind one interface, with content
// hashed keys.
//
// [errors] - Coded errors with user-facing messages and validation helpers.
//
// [observability] - Hook registries for cache, layout and placement events.
//
// [httputil] - Fetches page documents over HTTP through the cache.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/rail/...      # Specific package
//	go test -run Example ./...  # Examples only
//
// [dom]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/dom
// [rail]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/rail
// [page]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/page
// [plan]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/plan
// [render]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/render
// [render/railsvg]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/render/railsvg
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/render/tree
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/siderail/pkg/buildinfo
package pkg
