package railsvg

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/plan"
)

func samplePlan() *plan.Plan {
	return &plan.Plan{
		Rails: []plan.Rail{{
			Name:    "article",
			Box:     dom.Rect{Top: 0, Left: 620, Width: 300},
			Content: dom.Rect{Width: 600},
			Blocks: []plan.Block{
				{ID: "intro", Box: dom.Rect{Width: 600, Height: 1300}},
				{ID: "hero", Box: dom.Rect{Top: 1300, Width: 1000, Height: 400}, Fullbleed: true},
				{ID: "body & more", Box: dom.Rect{Top: 1700, Width: 600, Height: 500}},
			},
			Regions: []plan.Region{
				{ID: "article-region-0", Height: 1300, Classes: []string{"rhr-region", "rhr-region--article", "rhr-region--sufficient"},
					Children: []plan.Child{{ID: "ad-1", Kind: plan.KindSlot}, {ID: "promo", Kind: plan.KindItem, Height: 200}}},
				{ID: "article-region-1", Top: 1700, Height: 500, Classes: []string{"rhr-region", "rhr-region--article"}},
			},
		}},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(samplePlan(), Options{}))

	for _, want := range []string{
		`class="rhr-region rhr-region--article rhr-region--sufficient"`,
		`class="block fullbleed" data-id="hero"`,
		`class="child slot" data-id="ad-1"`,
		`class="child item" data-id="promo"`,
		`body &amp; more`,
		`viewBox="0 0 1040.0 2240.0"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %s", want)
		}
	}

	// must be well-formed XML
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		if _, err := dec.Token(); err != nil {
			if err != io.EOF {
				t.Fatalf("invalid XML: %v", err)
			}
			break
		}
	}
}

func TestRenderSVGScale(t *testing.T) {
	svg := string(RenderSVG(samplePlan(), Options{Scale: 0.5, Margin: 20}))
	if !strings.Contains(svg, `width="520" height="1120"`) {
		t.Errorf("scaled size missing:\n%s", svg[:200])
	}
}

func TestRailColumnDefaults(t *testing.T) {
	x, w := railColumn(plan.Rail{Content: dom.Rect{Left: 10, Width: 600}})
	if x != 630 || w != defaultRailWidth {
		t.Errorf("railColumn = %v, %v", x, w)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 300, 12); got != "short" {
		t.Errorf("truncate kept = %q", got)
	}
	if got := truncate("a-very-long-identifier-for-a-slot", 60, 12); !strings.HasSuffix(got, "..") || len(got) > 10 {
		t.Errorf("truncate = %q", got)
	}
}
