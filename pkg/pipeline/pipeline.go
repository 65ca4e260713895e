// Package pipeline provides the page layout pipeline for siderail.
//
// This package implements the complete build → place → render pipeline that
// is used by the CLI and the HTTP API. By centralizing this logic, every
// entry point lays out a page document the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Build the page fixture, construct every rail, run queued
//     placement commands and pack the slot pool into the rails
//  2. Render: Generate output in various formats (JSON, SVG, DOT, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := page.ReadFile("article.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Keep rails live to react to geometry changes:
//
//	l, err := pipeline.NewLayout(doc, logger)
//	defer l.Close()
//	err = l.Update(newDoc) // relays out every rail
//	p := l.Plan()
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/siderail/pkg/cache"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/plan"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultScale is the default output scale for page diagrams.
const DefaultScale = 1.0

// Format constants for output formats.
const (
	FormatJSON = "json" // the plan itself
	FormatSVG  = "svg"  // page diagram
	FormatDOT  = "dot"  // rail tree as Graphviz source
	FormatTree = "tree" // rail tree rendered by Graphviz
	FormatPNG  = "png"  // page diagram via rsvg-convert
	FormatPDF  = "pdf"  // page diagram via rsvg-convert
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatTree: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ContentTypes maps output formats to their MIME types.
var ContentTypes = map[string]string{
	FormatJSON: "application/json",
	FormatSVG:  "image/svg+xml",
	FormatDOT:  "text/vnd.graphviz",
	FormatTree: "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // detailed labels in tree output

	// Refresh skips cache reads. Results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether Validate has succeeded.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the laid-out page.
	Plan *plan.Plan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rails      int
	Regions    int
	Slots      int // slots placed
	Items      int // items placed
	Leftover   int // slots no rail could take
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, formatList())
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatList() string {
	return strings.Join([]string{FormatJSON, FormatSVG, FormatDOT, FormatTree, FormatPNG, FormatPDF}, ", ")
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks the options.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) Validate() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	o.validated = true
	return nil
}

// PlanKeyOpts returns cache key options for plan computation.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{Version: plan.Version}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Scale: o.Scale}
	if format == FormatDOT || format == FormatTree {
		opts.Detailed = o.Detailed
	}
	return opts
}

// String is used in log lines.
func (o *Options) String() string {
	return fmt.Sprintf("formats=%v scale=%v", o.Formats, o.Scale)
}
