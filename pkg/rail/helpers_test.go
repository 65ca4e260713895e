package rail

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/siderail/pkg/dom"
)

const contentWidth = 600

// page is a hand-built page: a content container, a rail and an optional
// outer container, all with static boxes.
type page struct {
	content   *dom.Node
	rail      *dom.Node
	container *dom.Node
	logs      *bytes.Buffer
	logger    *log.Logger
}

func newPage(contentTop float64) *page {
	content := dom.NewElement("article", "content")
	content.Box = dom.Rect{Top: contentTop, Width: contentWidth}
	rail := dom.NewElement("aside", "rail")
	rail.Box = dom.Rect{Top: contentTop, Left: contentWidth, Width: 300}

	var buf bytes.Buffer
	return &page{
		content: content,
		rail:    rail,
		logs:    &buf,
		logger:  log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}),
	}
}

// add appends a content child with the given geometry.
func (p *page) add(id string, top, height, width float64) *dom.Node {
	n := dom.NewElement("p", id)
	n.Box = dom.Rect{Top: top, Width: width, Height: height}
	return p.content.AppendChild(n)
}

func (p *page) build(t *testing.T, opts ...Option) *Rail {
	t.Helper()
	opts = append([]Option{WithLogger(p.logger)}, opts...)
	r, err := New("article", Elements{Rail: p.rail, Groups: p.content, Container: p.container}, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return r
}

// railWithRegions builds a rail whose regions have exactly the given heights,
// separating the content runs with zero-height fullbleed elements.
func railWithRegions(t *testing.T, heights ...float64) (*Rail, *page) {
	t.Helper()
	p := newPage(0)
	y := 0.0
	for i, h := range heights {
		if i > 0 {
			p.add("fullbleed", y, 0, contentWidth*2)
		}
		p.add("p", y, h, contentWidth)
		y += h
	}
	return p.build(t), p
}

func item(id string, height float64) *dom.Node {
	n := dom.NewElement("div", id)
	n.Box = dom.Rect{Height: height}
	return n
}

func nodeIDs(nodes []*dom.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func sameIDs(t *testing.T, what string, got []*dom.Node, want ...string) {
	t.Helper()
	ids := nodeIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("%s = %v, want %v", what, ids, want)
	}
	for i := range ids {
		if ids[i] != want[i] {
			t.Fatalf("%s = %v, want %v", what, ids, want)
		}
	}
}
