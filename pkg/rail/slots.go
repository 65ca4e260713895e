package rail

import (
	"math"

	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/observability"
)

// PlaceSlots packs slots into regions, in region order, and returns the
// slots it placed.
//
// Slots are consumed from the front of *slots, which shrinks in place. Per
// region of height h, with n = floor(h / RegionHeight):
//   - n <= 1 and h >= SingleSlotRegionHeight: one slot, tagged with both
//     SlotFormats dataset keys so it may render at either accepted size
//   - n > 1: n slots, untagged
//   - otherwise: none
//
// Packing stops once *slots is empty. Slots that do not fit stay in *slots
// in their original order for the caller to place elsewhere.
func (r *Rail) PlaceSlots(slots *[]*dom.Node) []*dom.Node {
	if slots == nil {
		return nil
	}

	var placed []*dom.Node
	for _, region := range r.regions {
		if len(*slots) == 0 {
			break
		}

		h := r.geo.Rect(region).Height
		n := int(math.Floor(h / RegionHeight))

		var take []*dom.Node
		switch {
		case n <= 1 && h >= SingleSlotRegionHeight:
			take = splice(slots, 1)
			for _, slot := range take {
				slot.SetData(DataFormatsLarge, SlotFormats)
				slot.SetData(DataFormatsExtra, SlotFormats)
			}
		case n > 1:
			take = splice(slots, n)
		}

		for _, slot := range take {
			placed = append(placed, region.AppendChild(slot))
		}
	}

	r.logger.Debug("placed slots", "placed", len(placed), "remaining", len(*slots))
	observability.Rail().OnSlotsPlaced(r.name, len(placed), len(*slots))

	return placed
}

// splice removes up to n items from the front of *s and returns them.
func splice(s *[]*dom.Node, n int) []*dom.Node {
	n = min(n, len(*s))
	head := make([]*dom.Node, n)
	copy(head, (*s)[:n])
	*s = (*s)[n:]
	return head
}
