package components

import (
	"github.com/pkg/errors"
)

// ErrInvalidMask is returned when a stencil mask cannot be parsed
var ErrInvalidMask = errors.New("invalid stencil mask")

// Rotation is a clockwise quarter-turn applied to a stencil mask
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Rotations lists every supported rotation, in the order used for random draws
var Rotations = [...]Rotation{Rotate0, Rotate90, Rotate180, Rotate270}

// SwapsAxes reports whether the rotation exchanges width and height
func (r Rotation) SwapsAxes() bool {
	return r == Rotate90 || r == Rotate270
}

// Mask is a boolean stencil; true cells are solid
type Mask struct {
	Width  int
	Height int
	cells  []bool
}

// NewMask creates an empty mask of the given dimensions
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		cells:  make([]bool, width*height),
	}
}

// ParseMask builds a mask from text rows where '#', 'X' and '1' are solid
// and '.', ' ' and '0' are empty. All rows must have the same length.
func ParseMask(rows []string) (*Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidMask, "mask has no cells")
	}

	width := len(rows[0])
	m := NewMask(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.Wrapf(ErrInvalidMask, "row %d has length %d, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			switch row[x] {
			case '#', 'X', '1':
				m.Set(x, y, true)
			case '.', ' ', '0':
			default:
				return nil, errors.Wrapf(ErrInvalidMask, "unexpected %q at (%d,%d)", row[x], x, y)
			}
		}
	}

	if m.SolidCount() == 0 {
		return nil, errors.Wrap(ErrInvalidMask, "mask has no solid cells")
	}
	return m, nil
}

// At returns the mask value at (x, y); out of range cells are empty
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.cells[y*m.Width+x]
}

// Set writes the mask value at (x, y)
func (m *Mask) Set(x, y int, solid bool) {
	m.cells[y*m.Width+x] = solid
}

// SolidCount returns the number of solid cells
func (m *Mask) SolidCount() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// ShapeKind tags the variant held by a Shape
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeStencil
)

// Shape decides which cells of a room's bounding box are solid.
// A rectangle is solid everywhere; a stencil consults its rotated mask.
type Shape struct {
	Kind     ShapeKind
	Mask     *Mask
	Rotation Rotation
}

// RectangleShape returns the plain rectangular shape
func RectangleShape() Shape {
	return Shape{Kind: ShapeRectangle}
}

// StencilShape returns a mask-backed shape with the given rotation
func StencilShape(mask *Mask, rotation Rotation) Shape {
	return Shape{Kind: ShapeStencil, Mask: mask, Rotation: rotation}
}

// IsSolid tests a cell given in local, already rotated coordinates.
// For a stencil the cell is mapped back into mask space:
//
//	0°:   (x, y)
//	90°:  (y, H-1-x)
//	180°: (W-1-x, H-1-y)
//	270°: (W-1-y, x)
//
// where W and H are the unrotated mask dimensions.
func (s Shape) IsSolid(x, y int) bool {
	if s.Kind == ShapeRectangle {
		return true
	}

	m := s.Mask
	switch s.Rotation {
	case Rotate90:
		return m.At(y, m.Height-1-x)
	case Rotate180:
		return m.At(m.Width-1-x, m.Height-1-y)
	case Rotate270:
		return m.At(m.Width-1-y, x)
	default:
		return m.At(x, y)
	}
}
