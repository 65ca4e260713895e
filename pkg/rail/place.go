package rail

import (
	"math"
	"slices"

	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/observability"
)

// Placement is a hint for where an item should land among the regions that
// can hold it.
type Placement string

// Placement hints.
const (
	PlacementTop    Placement = "top"
	PlacementMiddle Placement = "middle"
	PlacementBottom Placement = "bottom"
)

// Valid reports whether p is a known placement hint.
func (p Placement) Valid() bool {
	switch p {
	case PlacementTop, PlacementMiddle, PlacementBottom:
		return true
	}
	return false
}

// PlacementRequest asks for a single item to be placed in the rail.
type PlacementRequest struct {
	// Item is the node to insert.
	Item *dom.Node

	// RequiredHeight is the item's height plus the margins it needs from
	// neighbouring items.
	RequiredHeight float64

	// Placement is the position hint.
	Placement Placement
}

// Validate checks the request without touching the rail.
func (req PlacementRequest) Validate() error {
	if req.Item == nil {
		return errors.New(errors.ErrCodeInvalidInput, "item is required")
	}
	h := req.RequiredHeight
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "required height must be a finite non-negative number, got %v", h)
	}
	if !req.Placement.Valid() {
		return errors.New(errors.ErrCodeInvalidPlacement, "unknown placement %q (must be one of: top, middle, bottom)", req.Placement)
	}
	return nil
}

// PlaceItem inserts req.Item into the region that best matches the hint among
// regions whose free space is at least req.RequiredHeight.
//
// Invalid requests and requests no region can hold are logged and dropped
// without modifying the rail.
func (r *Rail) PlaceItem(req PlacementRequest) {
	region, err := r.placeItem(req)
	if err != nil {
		if errors.Is(err, errors.ErrCodeInsufficientSpace) {
			r.logger.Warn("couldn't place item", "placement", req.Placement, "required", req.RequiredHeight, "err", errors.UserMessage(err))
		} else {
			r.logger.Error("invalid arguments", "err", err)
		}
	}
	observability.Rail().OnItemPlaced(r.name, string(req.Placement), region, err)
}

// placeItem performs the placement and returns the index of the region the
// item went into.
func (r *Rail) placeItem(req PlacementRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return -1, err
	}

	available := r.regionsWithSpace(req.RequiredHeight)
	if len(available) == 0 {
		return -1, errors.New(errors.ErrCodeInsufficientSpace, "insufficient space in rail for %vpx", req.RequiredHeight)
	}

	var region *dom.Node
	switch req.Placement {
	case PlacementTop:
		region = placeTop(req.Item, available)
	case PlacementMiddle:
		region = placeMiddle(req.Item, available)
	case PlacementBottom:
		region = placeBottom(req.Item, available)
	}
	return slices.Index(r.regions, region), nil
}

// FreeSpace returns each region's height minus the heights of its children.
func (r *Rail) FreeSpace() []float64 {
	spaces := make([]float64, len(r.regions))
	for i, region := range r.regions {
		used := 0.0
		for _, child := range region.Children() {
			used += r.geo.Rect(child).Height
		}
		spaces[i] = r.geo.Rect(region).Height - used
	}
	return spaces
}

func (r *Rail) regionsWithSpace(required float64) []*dom.Node {
	var available []*dom.Node
	for i, space := range r.FreeSpace() {
		if space >= required {
			available = append(available, r.regions[i])
		}
	}
	return available
}

// placeTop inserts item into the first region as its second child, leaving
// whatever is already first in place.
func placeTop(item *dom.Node, regions []*dom.Node) *dom.Node {
	first := regions[0]
	if first.ChildCount() <= 1 {
		first.AppendChild(item)
		return first
	}
	first.InsertBefore(item, first.Child(1))
	return first
}

// placeMiddle inserts item before the middle child across all regions. If
// the middle child leads its region the item is appended instead, so a lead
// item is never displaced. Regions without children take the item in the
// middle region.
func placeMiddle(item *dom.Node, regions []*dom.Node) *dom.Node {
	var children []*dom.Node
	for _, region := range regions {
		children = append(children, region.Children()...)
	}

	if len(children) == 0 {
		region := regions[len(regions)/2]
		region.AppendChild(item)
		return region
	}

	middle := children[len(children)/2]
	parent := middle.Parent()
	if middle == parent.FirstChild() {
		parent.AppendChild(item)
	} else {
		parent.InsertBefore(item, middle)
	}
	return parent
}

// placeBottom appends item to the last region.
func placeBottom(item *dom.Node, regions []*dom.Node) *dom.Node {
	last := regions[len(regions)-1]
	last.AppendChild(item)
	return last
}
