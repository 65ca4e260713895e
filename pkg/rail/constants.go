package rail

// Region sizing, in CSS pixels.
const (
	// RegionHeight is the height one full-size slot owns.
	RegionHeight = 1080

	// SlotMinHeight is the height of the smallest accepted slot format.
	SlotMinHeight = 250

	// SlotPaddingEnd is the space kept free below a lone slot.
	SlotPaddingEnd = 300

	// SingleSlotRegionHeight is the smallest region that takes a slot at all.
	SingleSlotRegionHeight = SlotMinHeight + SlotPaddingEnd
)

// Class names written to region placeholders. Downstream styles depend on
// these exact strings.
const (
	ClassRegion           = "rhr-region"
	ClassRegionSufficient = "rhr-region--sufficient"
	classRegionPrefix     = "rhr-region--"
)

// Slot format tagging for slots placed alone in an undersized region.
const (
	// SlotFormats lists the two formats a lone slot may render at.
	SlotFormats = "MediumRectangle,OneByOne"

	// DataFormatsLarge and DataFormatsExtra are the dataset keys
	// (data-o-ads-formats-large, data-o-ads-formats-extra) that carry SlotFormats.
	DataFormatsLarge = "oAdsFormatsLarge"
	DataFormatsExtra = "oAdsFormatsExtra"
)

// CommandsProp is the host element property holding the command queue.
const CommandsProp = "cmd"

// InstanceClass returns the rail-instance class for regions of the named rail.
func InstanceClass(name string) string {
	return classRegionPrefix + name
}
