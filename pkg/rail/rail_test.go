package rail

import (
	"testing"
	"time"

	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/observability"
)

func TestNewMissingElements(t *testing.T) {
	p := newPage(0)
	tests := []struct {
		name string
		els  Elements
	}{
		{"no rail", Elements{Groups: p.content}},
		{"no groups", Elements{Rail: p.rail}},
		{"nothing", Elements{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New("article", tt.els)
			if r != nil {
				t.Error("expected nil rail")
			}
			if !errors.Is(err, errors.ErrCodeMissingElements) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeMissingElements)
			}
		})
	}
}

func TestNewInvalidName(t *testing.T) {
	p := newPage(0)
	for _, name := range []string{"", "has space", "a.b"} {
		if _, err := New(name, Elements{Rail: p.rail, Groups: p.content}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("New(%q) err = %v, want invalid input", name, err)
		}
	}
}

func TestNewBuildsRegions(t *testing.T) {
	p := newPage(0)
	p.rail.AppendChild(dom.NewElement("div", "stale"))
	p.add("a", 0, 1200, contentWidth)
	p.add("fb", 1200, 400, 1000)
	p.add("b", 1600, 500, contentWidth)

	r := p.build(t)

	if !r.IsIntersected() {
		t.Error("rail with fullbleed content should be intersected")
	}
	if len(r.Groups()) != 2 || len(r.Regions()) != 2 {
		t.Fatalf("groups=%d regions=%d, want 2 2", len(r.Groups()), len(r.Regions()))
	}
	sameIDs(t, "rail children", p.rail.Children(), "article-region-0", "article-region-1")

	first, second := r.Regions()[0], r.Regions()[1]
	for _, region := range r.Regions() {
		if !region.HasClass(ClassRegion) || !region.HasClass("rhr-region--article") {
			t.Errorf("region %s classes = %q", region.ID, region.ClassName())
		}
		if !region.Style.Positioned {
			t.Errorf("region %s not positioned", region.ID)
		}
	}
	if !first.HasClass(ClassRegionSufficient) {
		t.Error("1200px region should be sufficient")
	}
	if second.HasClass(ClassRegionSufficient) {
		t.Error("500px region should not be sufficient")
	}

	want := []RegionRect{{Top: 0, Height: 1200}, {Top: 1600, Height: 500}}
	got := r.RegionRects()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("region %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNotIntersected(t *testing.T) {
	p := newPage(0)
	p.add("a", 0, 500, contentWidth)
	p.add("b", 500, 500, contentWidth)

	r := p.build(t)
	if r.IsIntersected() {
		t.Error("single group should not be intersected")
	}
	if r.Name() != "article" || r.Element() != p.rail {
		t.Error("accessors mismatch")
	}
}

func TestIntersectedByFullbleedPosition(t *testing.T) {
	const fb = contentWidth * 2
	tests := []struct {
		name    string
		widths  []float64
		want    bool
		regions int
	}{
		{"leading", []float64{fb, contentWidth}, false, 1},
		{"middle", []float64{contentWidth, fb, contentWidth}, true, 2},
		{"trailing", []float64{contentWidth, fb}, true, 1},
		{"adjacent", []float64{contentWidth, fb, fb, contentWidth}, true, 2},
		{"only fullbleed", []float64{fb}, false, 0},
		{"empty", nil, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPage(0)
			for i, w := range tt.widths {
				p.add("c", float64(i)*100, 100, w)
			}
			r := p.build(t)
			if got := r.IsIntersected(); got != tt.want {
				t.Errorf("IsIntersected() = %v, want %v", got, tt.want)
			}
			if len(r.Regions()) != tt.regions {
				t.Errorf("regions = %d, want %d", len(r.Regions()), tt.regions)
			}
		})
	}
}

func TestNewStretchesToContainer(t *testing.T) {
	p := newPage(200)
	p.container = dom.NewElement("main", "main")
	p.container.Box = dom.Rect{Top: 120, Width: 1000}
	p.rail.Box.Top = 120
	p.add("a", 200, 800, contentWidth)

	r := p.build(t)

	// contentDiff = 80: region runs from the container top to the group's end
	if got := r.RegionRects()[0]; got != (RegionRect{Top: 0, Height: 880}) {
		t.Errorf("region = %+v, want {0 880}", got)
	}
}

func TestRelayout(t *testing.T) {
	p := newPage(0)
	a := p.add("a", 0, 1000, contentWidth)
	p.add("fb", 1000, 200, 1000)
	b := p.add("b", 1200, 600, contentWidth)

	notifier := dom.NewBroadcaster()
	r := p.build(t, WithNotifier(notifier))
	regions := append([]*dom.Node(nil), r.Regions()...)
	r.Regions()[0].AppendChild(item("ad", 250))

	before := r.RegionRects()
	r.Relayout()
	r.Relayout()
	if after := r.RegionRects(); after[0] != before[0] || after[1] != before[1] {
		t.Errorf("relayout not idempotent: %v -> %v", before, after)
	}

	a.Box.Height = 1400
	b.Box.Top = 1600
	notifier.Notify()

	got := r.RegionRects()
	if got[0] != (RegionRect{Top: 0, Height: 1400}) || got[1] != (RegionRect{Top: 1600, Height: 600}) {
		t.Errorf("after notify = %v", got)
	}
	for i := range regions {
		if r.Regions()[i] != regions[i] {
			t.Error("relayout must reuse region placeholders")
		}
	}
	sameIDs(t, "region 0", r.Regions()[0].Children(), "ad")
	// Class set at construction is kept.
	if r.Regions()[0].HasClass(ClassRegionSufficient) {
		t.Error("sufficient class should not be added by relayout")
	}

	r.Close()
	if notifier.Len() != 0 {
		t.Errorf("Close left %d subscriptions", notifier.Len())
	}
	a.Box.Height = 100
	notifier.Notify()
	if r.RegionRects()[0].Height != 1400 {
		t.Error("closed rail should not relayout")
	}
	r.Close()
}

func TestWithGeometry(t *testing.T) {
	p := newPage(0)
	p.add("a", 0, 100, contentWidth)

	calls := 0
	geo := dom.GeometryFunc(func(n *dom.Node) dom.Rect {
		calls++
		return dom.BoxGeometry{}.Rect(n)
	})
	r := p.build(t, WithGeometry(geo), WithGeometry(nil))

	if calls == 0 {
		t.Error("custom geometry was not consulted")
	}
	if _, ok := r.Geometry().(dom.GeometryFunc); !ok {
		t.Errorf("Geometry() = %T, want dom.GeometryFunc", r.Geometry())
	}
}

type recordingHooks struct {
	observability.NoopRailHooks
	built    int
	relayout int
	placed   []int
	failed   int
}

func (h *recordingHooks) OnRailBuilt(string, int, int)          { h.built++ }
func (h *recordingHooks) OnRelayout(string, int, time.Duration) { h.relayout++ }
func (h *recordingHooks) OnCommandFailed(string, error)         { h.failed++ }
func (h *recordingHooks) OnItemPlaced(_, _ string, region int, _ error) {
	h.placed = append(h.placed, region)
}

func TestRailHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetRailHooks(hooks)
	t.Cleanup(observability.Reset)

	r, _ := railWithRegions(t, 300, 2000)
	r.Relayout()
	r.PlaceItem(PlacementRequest{Item: item("x", 100), RequiredHeight: 500, Placement: PlacementTop})
	r.PlaceItem(PlacementRequest{Item: item("y", 100), RequiredHeight: 5000, Placement: PlacementTop})
	Commands(r.Element()).Push(func(*Rail) { panic("boom") })

	if hooks.built != 1 || hooks.relayout != 1 || hooks.failed != 1 {
		t.Errorf("built=%d relayout=%d failed=%d, want 1 1 1", hooks.built, hooks.relayout, hooks.failed)
	}
	if len(hooks.placed) != 2 || hooks.placed[0] != 1 || hooks.placed[1] != -1 {
		t.Errorf("placed regions = %v, want [1 -1]", hooks.placed)
	}
}
