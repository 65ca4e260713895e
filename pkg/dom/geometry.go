package dom

// Rect is a rectangle in page coordinates. Y grows downwards.
type Rect struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Left   float64 `json:"left,omitempty" toml:"left" yaml:"left,omitempty"`
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Geometry returns the current rectangle of a node.
type Geometry interface {
	Rect(n *Node) Rect
}

// GeometryFunc adapts a function to the Geometry interface.
type GeometryFunc func(n *Node) Rect

// Rect calls f(n).
func (f GeometryFunc) Rect(n *Node) Rect { return f(n) }

// BoxGeometry resolves rectangles from node boxes and inline styles.
//
// Positioned nodes take their parent's top and width, offset by Style.Top,
// with Style.Height as their height. All other nodes report their Box.
type BoxGeometry struct{}

// Rect implements Geometry.
func (g BoxGeometry) Rect(n *Node) Rect {
	if n == nil {
		return Rect{}
	}
	if n.Style.Positioned && n.parent != nil {
		p := g.Rect(n.parent)
		return Rect{
			Top:    p.Top + n.Style.Top,
			Left:   p.Left,
			Width:  p.Width,
			Height: n.Style.Height,
		}
	}
	return n.Box
}

var _ Geometry = BoxGeometry{}
