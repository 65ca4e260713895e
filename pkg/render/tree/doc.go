// Package tree renders a plan as a tree diagram of rails, regions and the
// slots and items placed in them.
//
// # Usage
//
// Convert a plan to DOT, then render to SVG:
//
//	dot := tree.ToDOT(p, tree.Options{})
//	svg, err := tree.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, region labels include geometry and free space,
//     and child labels include their dataset
//
// # DOT Format
//
// Each rail is a cluster. Regions hang off their rail in order and children
// hang off their region in order. Slots no rail could take are collected
// under a separate "leftover" node. Sufficient regions are drawn with a
// green fill.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package tree
