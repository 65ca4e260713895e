package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/siderail/pkg/cache"
	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/observability"
	"github.com/matzehuels/siderail/pkg/page"
	"github.com/matzehuels/siderail/pkg/plan"
	"github.com/matzehuels/siderail/pkg/rail"
)

// testDoc is an article rail split by a fullbleed hero, and an unsplit
// comments rail below it.
func testDoc() *page.Document {
	return &page.Document{
		Title: "test",
		Rails: []page.Rail{
			{
				Name: "article",
				Box:  dom.Rect{Left: 620, Width: 300},
				Content: page.Content{
					Box: dom.Rect{Width: 600, Height: 4200},
					Children: []page.Block{
						{ID: "intro", Box: dom.Rect{Width: 600, Height: 1300}},
						{ID: "hero", Tag: "figure", Box: dom.Rect{Top: 1300, Width: 1200, Height: 500}},
						{ID: "body", Box: dom.Rect{Top: 1800, Width: 600, Height: 2400}},
					},
				},
			},
			{
				Name: "comments",
				Box:  dom.Rect{Top: 4400, Left: 620, Width: 300},
				Content: page.Content{
					Box:      dom.Rect{Top: 4400, Width: 600, Height: 700},
					Children: []page.Block{{ID: "thread", Box: dom.Rect{Top: 4400, Width: 600, Height: 700}}},
				},
			},
		},
		Slots: []string{"s1", "s2", "s3", "s4", "s5", "s6"},
		Items: []page.Item{
			{ID: "promo", Height: 200, RequiredHeight: 250, Placement: "top", Queue: page.QueueBefore},
			{ID: "widget", Rail: "comments", Height: 300, RequiredHeight: 300, Placement: "bottom"},
			{ID: "huge", Height: 100, RequiredHeight: 5000, Placement: "middle"},
		},
	}
}

func childIDs(r plan.Region) []string {
	var ids []string
	for _, c := range r.Children {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"svg", false},
		{"dot", false},
		{"tree", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.Validate(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}
	if !slices.Equal(opts.Formats, []string{FormatJSON}) {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"svg", "gif"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 2, Detailed: true}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Detailed || k.Scale != 2 {
		t.Errorf("svg key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatTree); !k.Detailed {
		t.Errorf("tree key opts = %+v", k)
	}
}

func TestNewLayout(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLayout(testDoc(), log.New(&buf))
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	defer l.Close()
	p := l.Plan()

	if p.Version != plan.Version || p.ID == "" || len(p.DocumentHash) != 64 || p.Title != "test" {
		t.Errorf("plan header = %+v", p)
	}
	if len(p.Rails) != 2 {
		t.Fatalf("rails = %d, want 2", len(p.Rails))
	}

	article := p.Rail("article")
	if !article.Intersected || len(article.Regions) != 2 {
		t.Fatalf("article = %+v", article)
	}
	if !article.Blocks[1].Fullbleed || article.Blocks[0].Fullbleed || article.Blocks[2].Fullbleed {
		t.Errorf("fullbleed blocks = %+v", article.Blocks)
	}

	r0, r1 := article.Regions[0], article.Regions[1]
	if r0.Top != 0 || r0.Height != 1300 || r1.Top != 1800 || r1.Height != 2400 {
		t.Errorf("article regions = %+v / %+v", r0, r1)
	}
	// promo ran before construction, so the packed slot lands after it
	if got := childIDs(r0); !slices.Equal(got, []string{"promo", "s1"}) {
		t.Errorf("article region 0 children = %v", got)
	}
	if got := childIDs(r1); !slices.Equal(got, []string{"s2", "s3"}) {
		t.Errorf("article region 1 children = %v", got)
	}
	if r0.FreeSpace != 1100 {
		t.Errorf("region 0 free space = %v, want 1100", r0.FreeSpace)
	}
	if r0.Children[0].Kind != plan.KindItem || r0.Children[0].Height != 200 {
		t.Errorf("promo child = %+v", r0.Children[0])
	}

	s1 := r0.Children[1]
	if s1.Kind != plan.KindSlot || s1.Dataset[DataConfigKey] != ConfigKeyFullbleed || s1.Dataset[rail.DataFormatsLarge] != rail.SlotFormats {
		t.Errorf("s1 = %+v", s1)
	}
	if _, tagged := r1.Children[0].Dataset[rail.DataFormatsLarge]; tagged {
		t.Error("slots in a multi-slot region should not be tagged")
	}

	comments := p.Rail("comments")
	if comments.Intersected || len(comments.Regions) != 1 {
		t.Fatalf("comments = %+v", comments)
	}
	c0 := comments.Regions[0]
	if c0.Top != 0 || c0.Height != 700 || c0.HasClass(rail.ClassRegionSufficient) {
		t.Errorf("comments region = %+v", c0)
	}
	if got := childIDs(c0); !slices.Equal(got, []string{"s4", "widget"}) {
		t.Errorf("comments children = %v", got)
	}
	if c0.Children[0].Dataset[DataConfigKey] != ConfigKeyDefault {
		t.Errorf("s4 config key = %q", c0.Children[0].Dataset[DataConfigKey])
	}

	if !slices.Equal(p.Leftover, []string{"s5", "s6"}) {
		t.Errorf("leftover = %v", p.Leftover)
	}
	if p.Count(plan.KindItem) != 2 {
		t.Errorf("placed items = %d, want 2 (huge does not fit)", p.Count(plan.KindItem))
	}
	if !strings.Contains(buf.String(), "couldn't place item") {
		t.Errorf("missing capacity warning in log:\n%s", buf.String())
	}
}

func TestNewLayoutInvalid(t *testing.T) {
	doc := testDoc()
	doc.Rails[0].Name = "bad name"
	if _, err := NewLayout(doc, nil); !errors.IsValidation(err) {
		t.Errorf("NewLayout(bad name) = %v, want validation error", err)
	}
}

func TestLayoutUpdate(t *testing.T) {
	l, err := NewLayout(testDoc(), log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	grown := testDoc()
	grown.Rails[0].Content.Children[2].Box.Height = 2600
	if err := l.Update(grown); err != nil {
		t.Fatalf("Update: %v", err)
	}

	p := l.Plan()
	r1 := p.Rail("article").Regions[1]
	if r1.Height != 2600 {
		t.Errorf("region height after update = %v, want 2600", r1.Height)
	}
	// relayout keeps placed children
	if got := childIDs(r1); !slices.Equal(got, []string{"s2", "s3"}) {
		t.Errorf("children after update = %v", got)
	}

	reshaped := testDoc()
	reshaped.Rails[0].Content.Children = reshaped.Rails[0].Content.Children[:2]
	if err := l.Update(reshaped); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("Update(reshaped) = %v, want INVALID_DOCUMENT", err)
	}
}

func TestRender(t *testing.T) {
	p, err := LayoutPlan(testDoc(), log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := Render(context.Background(), p, Options{Formats: []string{"json", "svg", "dot", "tree"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got, err := plan.Unmarshal(artifacts["json"]); err != nil || got.RegionCount() != 3 {
		t.Errorf("json artifact = %v, %v", got, err)
	}
	if !bytes.Contains(artifacts["svg"], []byte("rhr-region--sufficient")) {
		t.Error("svg artifact missing region classes")
	}
	if !bytes.Contains(artifacts["dot"], []byte(`"article-region-0" -> "promo"`)) {
		t.Errorf("dot artifact = %s", artifacts["dot"])
	}
	if !bytes.Contains(artifacts["tree"], []byte("<svg")) {
		t.Error("tree artifact is not svg")
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets map[string]int
}

func newCountingCacheHooks() *countingCacheHooks {
	return &countingCacheHooks{hits: map[string]int{}, misses: map[string]int{}, sets: map[string]int{}}
}

func (h *countingCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.hits[keyType]++
}

func (h *countingCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.misses[keyType]++
}

func (h *countingCacheHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.sets[keyType]++
}

func TestRunnerCaching(t *testing.T) {
	hooks := newCountingCacheHooks()
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, log.New(&bytes.Buffer{}))
	defer runner.Close()

	ctx := context.Background()
	opts := Options{Formats: []string{"json", "svg"}}

	first, err := runner.Execute(ctx, testDoc(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.PlanHit || first.CacheInfo.RenderHit {
		t.Errorf("first run cache info = %+v", first.CacheInfo)
	}
	if first.Stats.Rails != 2 || first.Stats.Regions != 3 || first.Stats.Slots != 4 || first.Stats.Items != 2 || first.Stats.Leftover != 2 {
		t.Errorf("stats = %+v", first.Stats)
	}

	second, err := runner.Execute(ctx, testDoc(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.PlanHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v", second.CacheInfo)
	}
	if second.Plan.ID != first.Plan.ID {
		t.Error("cached plan should keep its id")
	}
	if !bytes.Equal(second.Artifacts["svg"], first.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	refreshed, err := runner.Execute(ctx, testDoc(), Options{Formats: []string{"json"}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.PlanHit || refreshed.Plan.ID == first.Plan.ID {
		t.Error("Refresh should recompute the plan")
	}

	if hooks.hits["plan"] != 1 || hooks.misses["plan"] != 1 || hooks.sets["plan"] != 2 {
		t.Errorf("plan hooks hits=%d misses=%d sets=%d", hooks.hits["plan"], hooks.misses["plan"], hooks.sets["plan"])
	}
	if hooks.hits["artifact"] != 2 {
		t.Errorf("artifact hits = %d, want 2", hooks.hits["artifact"])
	}
}

func TestRunnerErrors(t *testing.T) {
	runner := NewRunner(nil, nil, log.New(&bytes.Buffer{}))
	ctx := context.Background()

	if _, err := runner.Execute(ctx, &page.Document{}, Options{}); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("empty document error = %v", err)
	}
	if _, err := runner.Execute(ctx, testDoc(), Options{Formats: []string{"gif"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v", err)
	}
}

func TestRunnerLoadPlan(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, cache.NewScopedKeyer(nil, "test:"), log.New(&bytes.Buffer{}))
	defer runner.Close()
	ctx := context.Background()

	p, err := runner.Plan(ctx, testDoc(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	got, err := runner.LoadPlan(ctx, p.ID)
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}
	if got.ID != p.ID || got.RegionCount() != p.RegionCount() {
		t.Errorf("LoadPlan = %s with %d regions, want %s with %d", got.ID, got.RegionCount(), p.ID, p.RegionCount())
	}

	if _, err := runner.LoadPlan(ctx, "3f1c0d7e-0000-4000-8000-000000000000"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown id error = %v", err)
	}
	if _, err := NewRunner(nil, nil, nil).LoadPlan(ctx, p.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("null cache error = %v", err)
	}
}
