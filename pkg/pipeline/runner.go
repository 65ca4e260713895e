package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/siderail/pkg/cache"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/observability"
	"github.com/matzehuels/siderail/pkg/page"
	"github.com/matzehuels/siderail/pkg/plan"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *page.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	p, planHit, err := r.PlanWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Plan = p
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Rails = len(p.Rails)
	result.Stats.Regions = p.RegionCount()
	result.Stats.Slots = p.Count(plan.KindSlot)
	result.Stats.Items = p.Count(plan.KindItem)
	result.Stats.Leftover = len(p.Leftover)
	result.CacheInfo.PlanHit = planHit

	r.Logger.Info("laid out page",
		"rails", result.Stats.Rails,
		"regions", result.Stats.Regions,
		"slots", result.Stats.Slots,
		"items", result.Stats.Items,
		"leftover", result.Stats.Leftover,
		"cached", planHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PlanWithCacheInfo lays out doc with caching and returns cache hit info.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, doc *page.Document, opts Options) (*plan.Plan, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	if err := doc.Validate(); err != nil {
		return nil, false, err
	}

	docData, err := doc.Canonical()
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize document for cache key")
	}
	cacheKey := r.Keyer.PlanKey(cache.Hash(docData), opts.PlanKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := plan.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	start := time.Now()
	observability.Pipeline().OnPlanStart(ctx, len(doc.Rails))
	p, err := LayoutPlan(doc, opts.Logger)
	regions := 0
	if p != nil {
		regions = p.RegionCount()
	}
	observability.Pipeline().OnPlanComplete(ctx, len(doc.Rails), regions, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := plan.Marshal(p); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
		if err := r.Cache.Set(ctx, r.Keyer.PlanIDKey(p.ID), data, cache.TTLPlan); err != nil {
			opts.Logger.Warn("cache write failed", "err", err, "plan", p.ID)
		}
	}

	return p, false, nil
}

// LoadPlan returns a plan previously computed by this runner's cache, by id.
// Plans are kept for cache.TTLPlan; an unknown or expired id is
// ErrCodeNotFound.
func (r *Runner) LoadPlan(ctx context.Context, id string) (*plan.Plan, error) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.PlanIDKey(id))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read plan %s", id)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "planid")
		return nil, errors.New(errors.ErrCodeNotFound, "no plan %s", id)
	}
	observability.Cache().OnCacheHit(ctx, "planid")
	p, err := plan.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode plan %s", id)
	}
	return p, nil
}

// Plan is a convenience wrapper that calls PlanWithCacheInfo and discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, doc *page.Document, opts Options) (*plan.Plan, error) {
	p, _, err := r.PlanWithCacheInfo(ctx, doc, opts)
	return p, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *plan.Plan, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	planData, err := plan.Marshal(p)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize plan for cache key")
	}
	planHash := cache.Hash(planData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, p, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
