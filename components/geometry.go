package components

import "math"

// Point is an integer grid coordinate, or an integer extent when used as a size
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference of two points
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale multiplies both components by k
func (p Point) Scale(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Mul returns the component-wise product of two points
func (p Point) Mul(o Point) Point {
	return Point{X: p.X * o.X, Y: p.Y * o.Y}
}

// Div divides both components by k using integer division
func (p Point) Div(k int) Point {
	return Point{X: p.X / k, Y: p.Y / k}
}

// Swap exchanges the X and Y components
func (p Point) Swap() Point {
	return Point{X: p.Y, Y: p.X}
}

// Magnitude returns the euclidean length of the point seen as a vector
func (p Point) Magnitude() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// Distance returns the euclidean distance between two points
func (p Point) Distance(o Point) float64 {
	return p.Sub(o).Magnitude()
}

// Rect is an axis-aligned box described by its top-left corner and its size
type Rect struct {
	Position Point
	Size     Point
}

// BottomRight returns the last cell covered by the rectangle
func (r Rect) BottomRight() Point {
	return r.Position.Add(r.Size).Sub(Point{1, 1})
}

// Contains reports whether p lies inside the rectangle
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Position.X && p.X < r.Position.X+r.Size.X &&
		p.Y >= r.Position.Y && p.Y < r.Position.Y+r.Size.Y
}

// Intersects reports whether two rectangles share at least one cell
func (r Rect) Intersects(o Rect) bool {
	return r.Position.X < o.Position.X+o.Size.X && o.Position.X < r.Position.X+r.Size.X &&
		r.Position.Y < o.Position.Y+o.Size.Y && o.Position.Y < r.Position.Y+r.Size.Y
}

// Inflate grows the rectangle by n cells on every side
func (r Rect) Inflate(n int) Rect {
	return Rect{
		Position: r.Position.Sub(Point{n, n}),
		Size:     r.Size.Add(Point{2 * n, 2 * n}),
	}
}

// Axis selects the horizontal (X) or vertical (Y) direction
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Unit returns the unit vector along the axis
func (a Axis) Unit() Point {
	if a == AxisX {
		return Point{1, 0}
	}
	return Point{0, 1}
}

// Perpendicular returns the unit vector across the axis
func (a Axis) Perpendicular() Point {
	if a == AxisX {
		return Point{0, 1}
	}
	return Point{1, 0}
}

// Along extracts the component of p that lies on the axis
func (a Axis) Along(p Point) int {
	if a == AxisX {
		return p.X
	}
	return p.Y
}

// Across extracts the component of p that lies across the axis
func (a Axis) Across(p Point) int {
	if a == AxisX {
		return p.Y
	}
	return p.X
}

// Compose builds a point from its along and across components
func (a Axis) Compose(along, across int) Point {
	if a == AxisX {
		return Point{X: along, Y: across}
	}
	return Point{X: across, Y: along}
}

// String returns the axis name
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}
