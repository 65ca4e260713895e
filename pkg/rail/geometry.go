package rail

import (
	"math"

	"github.com/matzehuels/siderail/pkg/dom"
)

// RegionRect is a region's rail-local position.
type RegionRect struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Bottom returns the rail-local bottom edge.
func (r RegionRect) Bottom() float64 { return r.Top + r.Height }

// RegionRects returns one rail-local rectangle per non-empty group.
//
// Offsets are taken relative to the container's top so regions can be
// absolutely positioned inside the rail without page coordinates. Each
// rectangle spans from the top of its group's first element to the bottom of
// its last, rounded to whole pixels. The first rectangle is then moved up and
// stretched by the distance between the container's top and the content's
// top, so together the regions span from the container's top to the end of
// the last group. The first rectangle's bottom is unchanged.
func RegionRects(groups [][]*dom.Node, content, rail, container *dom.Node, geo dom.Geometry) []RegionRect {
	containerTop := geo.Rect(container).Top
	contentTop := geo.Rect(content).Top
	railTop := geo.Rect(rail).Top

	contentDiff := contentTop - containerTop
	railDiff := railTop - containerTop
	railOffset := containerTop + railDiff

	rects := make([]RegionRect, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		top := roundPx(geo.Rect(g[0]).Top - railOffset)
		bottom := roundPx(geo.Rect(g[len(g)-1]).Bottom() - railOffset)
		rects = append(rects, RegionRect{Top: top, Height: bottom - top})
	}

	if len(rects) > 0 {
		rects[0].Top -= contentDiff
		rects[0].Height += contentDiff
	}

	return rects
}

// roundPx rounds half towards +Inf, matching browser pixel rounding.
func roundPx(x float64) float64 {
	return math.Floor(x + 0.5)
}
