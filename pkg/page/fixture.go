package page

import (
	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/errors"
)

// Node kinds tracked by a fixture.
const (
	KindBlock = "block"
	KindSlot  = "slot"
	KindItem  = "item"
)

// Fixture is a built document: live dom nodes with their boxes set.
type Fixture struct {
	// Rails holds the nodes of each rail in document order.
	Rails []*RailNodes

	// Slots is the slot pool in document order.
	Slots []*dom.Node

	nodes map[string]*dom.Node
	kinds map[string]string
	items []Item // placement requests, rail names resolved
}

// RailNodes are the elements one rail is built against.
type RailNodes struct {
	Name      string
	Rail      *dom.Node
	Content   *dom.Node
	Container *dom.Node // nil when the document gives none
}

// Build creates the dom nodes described by d. The document must be valid.
func (d *Document) Build() *Fixture {
	f := &Fixture{
		nodes: make(map[string]*dom.Node),
		kinds: make(map[string]string),
	}

	for _, r := range d.Rails {
		rn := &RailNodes{
			Name:    r.Name,
			Rail:    dom.NewElement("aside", r.Name+"-rail"),
			Content: dom.NewElement("div", r.Name+"-content"),
		}
		rn.Rail.Box = r.Box
		rn.Content.Box = r.Content.Box
		if r.Container != nil {
			rn.Container = dom.NewElement("main", r.Name+"-container")
			rn.Container.Box = *r.Container
			rn.Container.AppendChild(rn.Content)
		}

		for _, b := range r.Content.Children {
			tag := b.Tag
			if tag == "" {
				tag = "p"
			}
			n := dom.NewElement(tag, b.ID)
			n.Box = b.Box
			rn.Content.AppendChild(n)
			f.track(n, KindBlock)
		}
		f.Rails = append(f.Rails, rn)
	}

	for _, id := range d.Slots {
		n := dom.NewElement("div", id)
		f.Slots = append(f.Slots, n)
		f.track(n, KindSlot)
	}

	for _, it := range d.Items {
		it.Rail = it.RailName(d)
		f.items = append(f.items, it)
		n := dom.NewElement("div", it.ID)
		n.Box.Height = it.Height
		f.track(n, KindItem)
	}

	return f
}

func (f *Fixture) track(n *dom.Node, kind string) {
	f.nodes[n.ID] = n
	f.kinds[n.ID] = kind
}

// Node returns the block, slot or item node with the given id, or nil.
func (f *Fixture) Node(id string) *dom.Node { return f.nodes[id] }

// Kind returns the kind of the node with the given id, or "".
func (f *Fixture) Kind(id string) string { return f.kinds[id] }

// Rail returns the nodes of the named rail, or nil.
func (f *Fixture) Rail(name string) *RailNodes {
	for _, rn := range f.Rails {
		if rn.Name == name {
			return rn
		}
	}
	return nil
}

// Apply copies the boxes of doc onto the fixture's existing nodes.
//
// doc must describe the same structure: the same rails, each with or without
// a container as before, the same content children, the same slot pool and
// the same placement requests. Only boxes and item heights may change.
// Nothing is modified when the structure differs.
func (f *Fixture) Apply(doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := f.sameShape(doc); err != nil {
		return err
	}

	for _, r := range doc.Rails {
		rn := f.Rail(r.Name)
		rn.Rail.Box = r.Box
		rn.Content.Box = r.Content.Box
		if rn.Container != nil {
			rn.Container.Box = *r.Container
		}
		for _, b := range r.Content.Children {
			f.nodes[b.ID].Box = b.Box
		}
	}
	for _, it := range doc.Items {
		f.nodes[it.ID].Box.Height = it.Height
	}
	return nil
}

func (f *Fixture) sameShape(doc *Document) error {
	if len(doc.Rails) != len(f.Rails) {
		return errors.New(errors.ErrCodeInvalidDocument, "rail count changed from %d to %d", len(f.Rails), len(doc.Rails))
	}

	for _, r := range doc.Rails {
		rn := f.Rail(r.Name)
		if rn == nil {
			return errors.New(errors.ErrCodeInvalidDocument, "unknown rail %q", r.Name)
		}
		if (rn.Container == nil) != (r.Container == nil) {
			return errors.New(errors.ErrCodeInvalidDocument, "rail %q: container added or removed", r.Name)
		}
		if len(r.Content.Children) != rn.Content.ChildCount() {
			return errors.New(errors.ErrCodeInvalidDocument, "rail %q: content children changed", r.Name)
		}
		for i, b := range r.Content.Children {
			if rn.Content.Child(i).ID != b.ID {
				return errors.New(errors.ErrCodeInvalidDocument, "rail %q: content child %d is %q, was %q", r.Name, i, b.ID, rn.Content.Child(i).ID)
			}
		}
	}

	if len(doc.Slots) != len(f.Slots) {
		return errors.New(errors.ErrCodeInvalidDocument, "slot pool changed from %d to %d slots", len(f.Slots), len(doc.Slots))
	}
	for i, id := range doc.Slots {
		if f.Slots[i].ID != id {
			return errors.New(errors.ErrCodeInvalidDocument, "slot %d is %q, was %q", i, id, f.Slots[i].ID)
		}
	}

	if len(doc.Items) != len(f.items) {
		return errors.New(errors.ErrCodeInvalidDocument, "item count changed from %d to %d", len(f.items), len(doc.Items))
	}
	for i, it := range doc.Items {
		was := f.items[i]
		if it.ID != was.ID {
			return errors.New(errors.ErrCodeInvalidDocument, "item %d is %q, was %q", i, it.ID, was.ID)
		}
		if it.RailName(doc) != was.Rail ||
			it.RequiredHeight != was.RequiredHeight ||
			it.Placement != was.Placement ||
			it.QueuedBefore() != was.QueuedBefore() {
			return errors.New(errors.ErrCodeInvalidDocument, "item %q: placement request changed", it.ID)
		}
	}
	return nil
}
