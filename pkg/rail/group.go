package rail

import "github.com/matzehuels/siderail/pkg/dom"

// GroupContent partitions the content container's children into ordered runs.
//
// A child is fullbleed when its width exceeds containerWidth. Fullbleed
// children belong to no run and close the run before them. Runs keep sibling
// order and are never empty: two adjacent fullbleed children do not produce an
// empty run between them. A container without children yields no runs.
func GroupContent(children []*dom.Node, containerWidth float64, geo dom.Geometry) [][]*dom.Node {
	var (
		groups  [][]*dom.Node
		current []*dom.Node
	)

	for i, el := range children {
		if !isFullbleed(el, containerWidth, geo) {
			current = append(current, el)
		}

		if i == len(children)-1 {
			break
		}

		if isFullbleed(children[i+1], containerWidth, geo) {
			groups = appendGroup(groups, current)
			current = nil
		}
	}

	return appendGroup(groups, current)
}

// closesRun reports whether any fullbleed child closes a run. Only a leading
// fullbleed child does not: nothing precedes it. A trailing one closes the
// last run even though no content follows it.
func closesRun(children []*dom.Node, containerWidth float64, geo dom.Geometry) bool {
	for _, el := range children[min(1, len(children)):] {
		if isFullbleed(el, containerWidth, geo) {
			return true
		}
	}
	return false
}

func isFullbleed(n *dom.Node, containerWidth float64, geo dom.Geometry) bool {
	return geo.Rect(n).Width > containerWidth
}

func appendGroup(groups [][]*dom.Node, g []*dom.Node) [][]*dom.Node {
	if len(g) == 0 {
		return groups
	}
	return append(groups, g)
}
