package geom

import "fmt"

// Coordinate is a point in some parent frame.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of c and o.
func (c Coordinate) Add(o Coordinate) Coordinate { return Coordinate{X: c.X + o.X, Y: c.Y + o.Y} }

// Sub returns the component-wise difference c - o.
func (c Coordinate) Sub(o Coordinate) Coordinate { return Coordinate{X: c.X - o.X, Y: c.Y - o.Y} }

// Scale multiplies both components by f.
func (c Coordinate) Scale(f float64) Coordinate { return Coordinate{X: c.X * f, Y: c.Y * f} }

// String formats the coordinate as "(x, y)".
func (c Coordinate) String() string { return fmt.Sprintf("(%g, %g)", c.X, c.Y) }

// Bounds is an axis-aligned rectangle whose origin is relative to the
// enclosing parent.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Origin returns the top-left corner.
func (b Bounds) Origin() Coordinate { return Coordinate{X: b.X, Y: b.Y} }

// Right returns the x of the right edge.
func (b Bounds) Right() float64 { return b.X + b.Width }

// Bottom returns the y of the bottom edge.
func (b Bounds) Bottom() float64 { return b.Y + b.Height }

// Area returns Width*Height. Degenerate bounds may yield zero or a negative
// value; callers ordering by area get a well-defined result either way.
func (b Bounds) Area() float64 { return b.Width * b.Height }

// Contains reports whether p lies inside b. Edges are inclusive, so a point
// exactly on the right or bottom edge counts as inside.
func (b Bounds) Contains(p Coordinate) bool {
	return p.X >= b.X && p.X <= b.X+b.Width &&
		p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// Translate returns b moved by d.
func (b Bounds) Translate(d Coordinate) Bounds {
	b.X += d.X
	b.Y += d.Y
	return b
}

// Scale returns b with origin and size multiplied by f.
func (b Bounds) Scale(f float64) Bounds {
	return Bounds{X: b.X * f, Y: b.Y * f, Width: b.Width * f, Height: b.Height * f}
}

// AtOrigin returns a copy of b with X and Y set to zero.
func (b Bounds) AtOrigin() Bounds {
	b.X, b.Y = 0, 0
	return b
}

// Local re-expresses p, given in the same frame as b, in b's own frame.
func (b Bounds) Local(p Coordinate) Coordinate { return p.Sub(b.Origin()) }

// String formats the bounds as "(x, y, w×h)".
func (b Bounds) String() string {
	return fmt.Sprintf("(%g, %g, %g×%g)", b.X, b.Y, b.Width, b.Height)
}
