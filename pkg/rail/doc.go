// Package rail positions ad slots and widgets in a sidebar that tracks the
// layout of a multi-column content area.
//
// # How a rail works
//
//  1. The content container's immediate children are scanned for runs that
//     do not exceed the container's width. A child wider than the container
//     (a "fullbleed" element) ends the current run and is left out of every
//     run. See [GroupContent].
//  2. One region placeholder is inserted into the rail element per run. Each
//     region is absolutely positioned so that it starts level with the first
//     element of its run and ends at the bottom of the last. The first region
//     is stretched up to the top of the outer container. See [RegionRects].
//  3. [Rail.PlaceSlots] packs same-sized ad slots into regions by height and
//     [Rail.PlaceItem] places a single arbitrary item by a top/middle/bottom
//     hint against the free space left in each region.
//  4. When the content's geometry may have changed (for example a late
//     loading embed grew), the notifier fires and [Rail.Relayout] rewrites
//     each region's top and height in place. Grouping is not repeated.
//
// # Command queue
//
// Code that runs before a rail exists can still schedule work against it:
//
//	rail.Commands(host).Push(func(r *rail.Rail) {
//	    r.PlaceItem(rail.PlacementRequest{
//	        Item:           widget,
//	        RequiredHeight: 600 + 200,
//	        Placement:      rail.PlacementTop,
//	    })
//	})
//
// Commands pushed before construction run, in order, while [New] returns.
// Commands pushed afterwards run immediately on the pushing goroutine.
//
// # Concurrency
//
// A Rail is not safe for concurrent use. Construction, relayout, placement and
// queued commands all mutate the same region subtree and must be serialized by
// the caller, as they are on a browser main thread.
package rail
