// Package plan defines the serialized result of laying out a page: the
// regions of every rail and what was placed in them.
//
// A [Plan] is the wire format shared by the CLI, the HTTP API, the cache and
// the renderers. It is a snapshot: it carries no dom nodes and can be
// rendered or compared without rebuilding the page.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/matzehuels/siderail/pkg/dom"
)

// Version identifies the layout rules a plan was computed with. Bump it when
// grouping, region geometry or packing change.
const Version = 1

// Child kinds.
const (
	KindSlot = "slot"
	KindItem = "item"
)

// =============================================================================
// Plan Types
// =============================================================================

// Plan is the layout of every rail on a page.
type Plan struct {
	ID           string `json:"id"`
	Version      int    `json:"version"`
	DocumentHash string `json:"document_hash"`
	Title        string `json:"title,omitempty"`
	Rails        []Rail `json:"rails"`

	// Leftover lists slots no rail could take, in pool order.
	Leftover []string `json:"leftover_slots,omitempty"`
}

// Rail is one laid-out rail.
type Rail struct {
	Name        string   `json:"name"`
	Intersected bool     `json:"intersected"`
	Box         dom.Rect `json:"box"`
	Content     dom.Rect `json:"content"`
	Blocks      []Block  `json:"blocks"`
	Regions     []Region `json:"regions"`
}

// Block is a content child, in page coordinates.
type Block struct {
	ID        string   `json:"id"`
	Box       dom.Rect `json:"box"`
	Fullbleed bool     `json:"fullbleed,omitempty"`
}

// Region is a placeholder in rail-local coordinates.
type Region struct {
	ID        string   `json:"id"`
	Top       float64  `json:"top"`
	Height    float64  `json:"height"`
	Classes   []string `json:"classes"`
	FreeSpace float64  `json:"free_space"`
	Children  []Child  `json:"children,omitempty"`
}

// Child is a slot or item inside a region.
type Child struct {
	ID      string            `json:"id"`
	Kind    string            `json:"kind"`
	Height  float64           `json:"height,omitempty"`
	Dataset map[string]string `json:"dataset,omitempty"`
}

// HasClass reports whether the region carries class name.
func (r Region) HasClass(name string) bool { return slices.Contains(r.Classes, name) }

// Rail returns the rail named name, or nil.
func (p *Plan) Rail(name string) *Rail {
	for i := range p.Rails {
		if p.Rails[i].Name == name {
			return &p.Rails[i]
		}
	}
	return nil
}

// RegionCount returns the number of regions across all rails.
func (p *Plan) RegionCount() int {
	n := 0
	for _, r := range p.Rails {
		n += len(r.Regions)
	}
	return n
}

// Count returns how many children of the given kind were placed.
func (p *Plan) Count(kind string) int {
	n := 0
	for _, r := range p.Rails {
		for _, reg := range r.Regions {
			for _, c := range reg.Children {
				if c.Kind == kind {
					n++
				}
			}
		}
	}
	return n
}

// =============================================================================
// Serialization
// =============================================================================

// Marshal serializes a plan to pretty-printed JSON.
func Marshal(p *Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Unmarshal parses a plan and checks it has at least one rail.
func Unmarshal(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	if len(p.Rails) == 0 {
		return nil, fmt.Errorf("plan must contain at least one rail")
	}
	return &p, nil
}

// WriteFile writes a plan to a JSON file.
func WriteFile(p *Plan, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a plan from a JSON file.
func ReadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
