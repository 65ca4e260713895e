// Package page describes static page fixtures for laying out rails offline.
//
// A page [Document] lists one or more rails, each with the rectangles of its
// host element, its content container and the content children, plus a pool
// of ad slots and the items to place. Documents are read from TOML, YAML or
// JSON:
//
//	title = "long read"
//	slots = ["ad-1", "ad-2", "ad-3"]
//
//	[[rails]]
//	name = "article"
//	box = { top = 0, left = 620, width = 300, height = 0 }
//
//	[rails.content]
//	box = { top = 0, width = 600, height = 0 }
//
//	[[rails.content.children]]
//	id = "intro"
//	box = { top = 0, width = 600, height = 1300 }
//
//	[[items]]
//	id = "newsletter"
//	height = 280
//	required_height = 320
//	placement = "middle"
//
// [Document.Build] turns a validated document into a [Fixture] of dom nodes
// whose boxes are ready for dom.BoxGeometry. [Fixture.Apply] copies the boxes
// of a later version of the same document onto an existing fixture, which is
// how a watched file drives relayout.
package page
