package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testDocJSON = `{
  "title": "Article",
  "slots": ["ad-1", "ad-2", "ad-3"],
  "rails": [{
    "name": "article",
    "box": {"left": 620, "width": 300, "height": 0},
    "content": {
      "box": {"width": 600, "height": 2600},
      "children": [
        {"id": "intro", "box": {"width": 600, "height": 1300}},
        {"id": "hero", "tag": "figure", "box": {"top": 1300, "width": 1200, "height": 100}},
        {"id": "body", "box": {"top": 1400, "width": 600, "height": 1200}}
      ]
    }
  }],
  "items": [
    {"id": "promo", "height": 200, "required_height": 250, "placement": "bottom"}
  ]
}`

// newTestCLI returns a CLI logging to a buffer with a file cache in a
// temporary directory.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	c := New(&buf, LogDebug)
	c.Config.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	return c, &buf
}

// writeDoc writes the test document into dir and returns its path.
func writeDoc(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testContext(c *CLI) context.Context {
	return withLogger(context.Background(), c.Logger)
}
