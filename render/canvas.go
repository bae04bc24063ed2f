package render

import (
	"strings"

	"dungeon-layout/components"
	"dungeon-layout/generation"
)

// Cell glyphs
const (
	GlyphEmpty    = '.'
	GlyphRoom     = '#'
	GlyphPath     = '*' // Room on the start to end path
	GlyphCorridor = '+'
	GlyphStart    = 'S'
	GlyphEnd      = 'E'
	GlyphEvent    = '!'
	GlyphOutside  = ' '
)

// Canvas resolves the cells of one layout layer to glyphs
type Canvas struct {
	layout  *generation.Layout
	layer   components.Layer
	owner   []components.RoomID
	markers map[components.Point]rune
}

// NewCanvas indexes the room cells and markers of a layout
func NewCanvas(l *generation.Layout, layer components.Layer) *Canvas {
	n := l.Size()
	c := &Canvas{
		layout:  l,
		layer:   layer,
		owner:   make([]components.RoomID, n*n),
		markers: make(map[components.Point]rune),
	}
	for i := range c.owner {
		c.owner[i] = components.NoRoom
	}

	for _, r := range l.Rooms() {
		b := r.Bounds()
		for y := b.Position.Y; y < b.Position.Y+b.Size.Y; y++ {
			for x := b.Position.X; x < b.Position.X+b.Size.X; x++ {
				if x < 0 || y < 0 || x >= n || y >= n {
					continue
				}
				if r.IsSolidAt(components.Point{X: x, Y: y}) {
					c.owner[y*n+x] = r.ID
				}
			}
		}
	}

	// Later markers win
	for _, id := range l.Events {
		c.mark(id, GlyphEvent)
	}
	c.mark(l.End, GlyphEnd)
	c.mark(l.Start, GlyphStart)
	return c
}

func (c *Canvas) mark(id components.RoomID, glyph rune) {
	if id == components.NoRoom || int(id) >= c.layout.Graph.Count() {
		return
	}
	c.markers[c.layout.Graph.Room(id).Center()] = glyph
}

// Layer returns the layer being drawn
func (c *Canvas) Layer() components.Layer {
	return c.layer
}

// Size returns the side length of the grid
func (c *Canvas) Size() int {
	return c.layout.Size()
}

// Glyph returns the glyph for (x, y). Cells outside the grid are blank.
func (c *Canvas) Glyph(x, y int) rune {
	n := c.layout.Size()
	if x < 0 || y < 0 || x >= n || y >= n {
		return GlyphOutside
	}

	if c.layer != components.LayerCorridors {
		if m, ok := c.markers[components.Point{X: x, Y: y}]; ok {
			return m
		}
		if id := c.owner[y*n+x]; id != components.NoRoom {
			if c.layout.OnPath(id) {
				return GlyphPath
			}
			return GlyphRoom
		}
	}
	if c.layer != components.LayerRooms && c.layout.CorridorGrid.Get(x, y) {
		return GlyphCorridor
	}
	return GlyphEmpty
}

// Lines renders the whole grid, one string per row
func (c *Canvas) Lines() []string {
	n := c.layout.Size()
	lines := make([]string, n)
	var sb strings.Builder
	for y := 0; y < n; y++ {
		sb.Reset()
		for x := 0; x < n; x++ {
			sb.WriteRune(c.Glyph(x, y))
		}
		lines[y] = sb.String()
	}
	return lines
}

// String renders the grid as newline separated rows
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n") + "\n"
}
