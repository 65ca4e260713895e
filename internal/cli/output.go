package cli

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/httputil"
	"github.com/matzehuels/siderail/pkg/pipeline"
)

// basePath derives the base output path, without extension.
//
// With no output, it is the input path minus its extension (and a trailing
// ".plan"), or the last path segment of a URL input. An output carrying a
// known format extension has it stripped.
func basePath(output, input string) string {
	if output == "" {
		name := input
		if httputil.IsURL(input) {
			name = "page"
			if u, err := url.Parse(input); err == nil {
				if b := path.Base(u.Path); b != "/" && b != "." {
					name = b
				}
			}
		}
		name = strings.TrimSuffix(name, filepath.Ext(name))
		return strings.TrimSuffix(name, ".plan")
	}

	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file a format is written to. Tree diagrams are SVG
// and get a ".tree.svg" suffix to keep them apart from the page diagram.
func outputPath(base, format string) string {
	if format == pipeline.FormatTree {
		return base + ".tree.svg"
	}
	return base + "." + format
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
