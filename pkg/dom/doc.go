// Package dom provides the minimal node tree that rails are laid out against.
//
// A [Node] models an element: it has an ordered list of children, a class
// list, a dataset (the data-* attributes), an inline style carrying the
// absolutely positioned top/height written by rails, and a free-form property
// bag used by host-element protocols such as the command queue.
//
// Geometry is never stored on nodes as truth. It is read through a [Geometry]
// provider, which returns a [Rect] for any node in a shared page coordinate
// space. [BoxGeometry] is the default provider: it reads the static box
// assigned to content nodes and derives the rectangle of absolutely
// positioned nodes from their parent and inline style.
//
// Layout changes are announced through a [Notifier]. The core subscribes a
// callback and recomputes on every notification; rate limiting is the
// notifier's concern. [Broadcaster] is a synchronous in-process notifier.
//
// # Example
//
//	rail := dom.NewElement("aside", "article-rail")
//	region := dom.NewElement("div", "")
//	rail.AppendChild(region)
//	region.Style = dom.Style{Positioned: true, Top: 120, Height: 1200}
//
//	geo := dom.BoxGeometry{}
//	fmt.Println(geo.Rect(region).Height) // 1200
package dom
