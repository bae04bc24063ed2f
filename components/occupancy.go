package components

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidSize is returned when a grid is constructed with a non-positive dimension
	ErrInvalidSize = errors.New("occupancy grid size must be positive")
	// ErrSizeMismatch is returned when two grids of different dimensions are merged
	ErrSizeMismatch = errors.New("occupancy grid sizes differ")
)

// Layer identifies one of the occupancy views exposed by a generated layout
type Layer int

const (
	LayerRooms Layer = iota
	LayerCorridors
	LayerMerged
)

// String returns the layer name
func (l Layer) String() string {
	switch l {
	case LayerRooms:
		return "rooms"
	case LayerCorridors:
		return "corridors"
	case LayerMerged:
		return "merged"
	default:
		return "unknown"
	}
}

// OccupancyGrid is a square bit matrix holding one spatial layer.
//
// Get and Set do not check bounds. Callers must keep col and row inside
// [0, Size); an out of range coordinate either panics or aliases another
// cell. Use InBounds when a coordinate is not already known to be valid.
type OccupancyGrid struct {
	Size  int
	words []uint64
}

// NewOccupancyGrid allocates a zeroed grid of size x size cells
func NewOccupancyGrid(size int) (*OccupancyGrid, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "got %d", size)
	}

	cells := size * size
	return &OccupancyGrid{
		Size:  size,
		words: make([]uint64, (cells+63)/64),
	}, nil
}

// bit returns the word index and mask for a cell
func (g *OccupancyGrid) bit(col, row int) (int, uint64) {
	i := col*g.Size + row
	return i >> 6, uint64(1) << (uint(i) & 63)
}

// Get returns the value at (col, row)
func (g *OccupancyGrid) Get(col, row int) bool {
	w, m := g.bit(col, row)
	return g.words[w]&m != 0
}

// Set writes the value at (col, row)
func (g *OccupancyGrid) Set(col, row int, value bool) {
	w, m := g.bit(col, row)
	if value {
		g.words[w] |= m
	} else {
		g.words[w] &^= m
	}
}

// InBounds reports whether (col, row) addresses a cell of the grid
func (g *OccupancyGrid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Size && row >= 0 && row < g.Size
}

// FillRect sets every cell of r to value; r must lie inside the grid
func (g *OccupancyGrid) FillRect(r Rect, value bool) {
	for x := r.Position.X; x < r.Position.X+r.Size.X; x++ {
		for y := r.Position.Y; y < r.Position.Y+r.Size.Y; y++ {
			g.Set(x, y, value)
		}
	}
}

// Count returns the number of set cells
func (g *OccupancyGrid) Count() int {
	n := 0
	for _, w := range g.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clone returns an independent copy of the grid
func (g *OccupancyGrid) Clone() *OccupancyGrid {
	words := make([]uint64, len(g.words))
	copy(words, g.words)
	return &OccupancyGrid{Size: g.Size, words: words}
}

// Merge returns a new grid holding the cell-wise OR of a and b
func Merge(a, b *OccupancyGrid) (*OccupancyGrid, error) {
	if a.Size != b.Size {
		return nil, errors.Wrapf(ErrSizeMismatch, "%d != %d", a.Size, b.Size)
	}

	merged := a.Clone()
	for i, w := range b.words {
		merged.words[i] |= w
	}
	return merged, nil
}

// String renders the grid one column per line as "1 " and "0 " cells
func (g *OccupancyGrid) String() string {
	var sb strings.Builder
	sb.Grow(g.Size * (2*g.Size + 1))
	for col := 0; col < g.Size; col++ {
		for row := 0; row < g.Size; row++ {
			if g.Get(col, row) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString("0 ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
