package page

import (
	"encoding/json"

	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/rail"
)

// Queue positions for items, relative to rail construction.
const (
	QueueBefore = "before"
	QueueAfter  = "after"
)

// =============================================================================
// Document Types
// =============================================================================

// Document is a page fixture.
type Document struct {
	Title string   `json:"title,omitempty" toml:"title" yaml:"title,omitempty"`
	Rails []Rail   `json:"rails" toml:"rails" yaml:"rails"`
	Slots []string `json:"slots,omitempty" toml:"slots" yaml:"slots,omitempty"`
	Items []Item   `json:"items,omitempty" toml:"items" yaml:"items,omitempty"`
}

// Rail describes one sidebar and the content it runs alongside.
type Rail struct {
	Name string   `json:"name" toml:"name" yaml:"name"`
	Box  dom.Rect `json:"box" toml:"box" yaml:"box"`

	// Container is the outer reference container. Defaults to the content box.
	Container *dom.Rect `json:"container,omitempty" toml:"container" yaml:"container,omitempty"`

	Content Content `json:"content" toml:"content" yaml:"content"`
}

// Content is a content container and its children.
type Content struct {
	Box      dom.Rect `json:"box" toml:"box" yaml:"box"`
	Children []Block  `json:"children" toml:"children" yaml:"children"`
}

// Block is one content child.
type Block struct {
	ID  string   `json:"id" toml:"id" yaml:"id"`
	Tag string   `json:"tag,omitempty" toml:"tag" yaml:"tag,omitempty"`
	Box dom.Rect `json:"box" toml:"box" yaml:"box"`
}

// Item is something to place in a rail with PlaceItem.
type Item struct {
	ID             string  `json:"id" toml:"id" yaml:"id"`
	Rail           string  `json:"rail,omitempty" toml:"rail" yaml:"rail,omitempty"`
	Height         float64 `json:"height" toml:"height" yaml:"height"`
	RequiredHeight float64 `json:"required_height" toml:"required_height" yaml:"required_height"`
	Placement      string  `json:"placement" toml:"placement" yaml:"placement"`

	// Queue is "before" to push the command before the rail is built, or
	// "after" (the default) to push it once the rail exists.
	Queue string `json:"queue,omitempty" toml:"queue" yaml:"queue,omitempty"`
}

// RailName returns the rail the item targets, defaulting to the first rail.
func (it Item) RailName(doc *Document) string {
	if it.Rail != "" || len(doc.Rails) == 0 {
		return it.Rail
	}
	return doc.Rails[0].Name
}

// QueuedBefore reports whether the item is pushed before rail construction.
func (it Item) QueuedBefore() bool { return it.Queue == QueueBefore }

// =============================================================================
// Validation
// =============================================================================

// Validate checks that the document can be built.
//
// Validation rules:
//   - At least one rail, with unique valid names and a positive content width
//   - Ids of content children, slots and items valid and unique across the document
//   - Items reference an existing rail, with a known placement and queue
//   - Heights are non-negative
func (d *Document) Validate() error {
	if len(d.Rails) == 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "document has no rails")
	}

	ids := make(map[string]string)
	claim := func(id, what string) error {
		if err := errors.ValidateNodeID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", what)
		}
		if prev, ok := ids[id]; ok {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate id %q (%s and %s)", id, prev, what)
		}
		ids[id] = what
		return nil
	}

	rails := make(map[string]bool, len(d.Rails))
	for i, r := range d.Rails {
		if err := errors.ValidateRailName(r.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "rail %d", i)
		}
		if rails[r.Name] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate rail %q", r.Name)
		}
		rails[r.Name] = true

		if r.Content.Box.Width <= 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "rail %q: content width must be positive", r.Name)
		}
		for _, b := range r.Content.Children {
			if err := claim(b.ID, "content of "+r.Name); err != nil {
				return err
			}
			if b.Box.Height < 0 || b.Box.Width < 0 {
				return errors.New(errors.ErrCodeInvalidDocument, "block %q: negative size", b.ID)
			}
		}
	}

	for _, id := range d.Slots {
		if err := claim(id, "slot"); err != nil {
			return err
		}
	}

	for _, it := range d.Items {
		if err := claim(it.ID, "item"); err != nil {
			return err
		}
		if name := it.RailName(d); !rails[name] {
			return errors.New(errors.ErrCodeInvalidDocument, "item %q: unknown rail %q", it.ID, name)
		}
		if !rail.Placement(it.Placement).Valid() {
			return errors.New(errors.ErrCodeInvalidPlacement, "item %q: unknown placement %q (must be one of: top, middle, bottom)", it.ID, it.Placement)
		}
		switch it.Queue {
		case "", QueueBefore, QueueAfter:
		default:
			return errors.New(errors.ErrCodeInvalidDocument, "item %q: unknown queue %q (must be before or after)", it.ID, it.Queue)
		}
		if it.Height < 0 || it.RequiredHeight < 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "item %q: negative height", it.ID)
		}
	}

	return nil
}

// Rail returns the rail named name, or nil.
func (d *Document) Rail(name string) *Rail {
	for i := range d.Rails {
		if d.Rails[i].Name == name {
			return &d.Rails[i]
		}
	}
	return nil
}

// ItemsFor returns the items targeting the named rail, in document order.
func (d *Document) ItemsFor(name string) []Item {
	var out []Item
	for _, it := range d.Items {
		if it.RailName(d) == name {
			out = append(out, it)
		}
	}
	return out
}

// Canonical returns the document as compact JSON. Documents decoded from
// different formats but describing the same page produce the same bytes.
func (d *Document) Canonical() ([]byte, error) {
	return json.Marshal(d)
}
