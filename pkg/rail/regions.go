package rail

import (
	"fmt"
	"time"

	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/observability"
)

// initRegions empties the rail element and inserts one placeholder per group.
func (r *Rail) initRegions() []*dom.Node {
	r.railEl.Clear()

	rects := r.rects()
	regions := make([]*dom.Node, 0, len(rects))
	for i, rect := range rects {
		region := dom.NewElement("div", fmt.Sprintf("%s-region-%d", r.name, i))
		region.SetClassName(ClassRegion + " " + InstanceClass(r.name))
		region.Style = dom.Style{Positioned: true, Top: rect.Top, Height: rect.Height}

		if rect.Height >= RegionHeight {
			region.AddClass(ClassRegionSufficient)
		}

		regions = append(regions, r.railEl.AppendChild(region))
	}
	return regions
}

// Relayout recomputes region geometry from the groups formed at construction
// and writes the new top and height onto the existing placeholders.
//
// Placeholders are neither recreated nor regrouped, and their children are
// untouched. Relayout is idempotent for unchanged content geometry.
func (r *Rail) Relayout() {
	start := time.Now()

	rects := r.rects()
	for i, rect := range rects {
		if i >= len(r.regions) {
			break
		}
		r.regions[i].Style.Top = rect.Top
		r.regions[i].Style.Height = rect.Height
	}

	r.logger.Debug("relayout", "regions", len(rects))
	observability.Rail().OnRelayout(r.name, len(rects), time.Since(start))
}

// RegionRects returns the current geometry written on each region.
func (r *Rail) RegionRects() []RegionRect {
	out := make([]RegionRect, len(r.regions))
	for i, region := range r.regions {
		out[i] = RegionRect{Top: region.Style.Top, Height: region.Style.Height}
	}
	return out
}

func (r *Rail) rects() []RegionRect {
	return RegionRects(r.groups, r.groupsEl, r.railEl, r.containerEl, r.geo)
}
