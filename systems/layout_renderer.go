package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dungeon-layout/components"
	"dungeon-layout/config"
	"dungeon-layout/generation"
	"dungeon-layout/render"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	edgeColor       = color.RGBA{100, 149, 237, 255} // Cornflower Blue
	hullColor       = color.RGBA{186, 85, 211, 255}  // Medium Orchid
	panelColor      = color.RGBA{24, 24, 32, 255}
)

var glyphColors = map[rune]color.RGBA{
	render.GlyphRoom:     {200, 200, 200, 255},
	render.GlyphPath:     {218, 165, 32, 255},
	render.GlyphCorridor: {70, 130, 130, 255},
	render.GlyphStart:    {60, 220, 60, 255},
	render.GlyphEnd:      {255, 100, 100, 255},
	render.GlyphEvent:    {255, 255, 0, 255},
}

// LayoutRenderer draws a layout through a camera. Cells become filled
// squares; the connectivity graph and the convex hull can be overlaid.
type LayoutRenderer struct {
	camera    *components.Camera
	cellSize  int
	layout    *generation.Layout
	canvas    *render.Canvas
	showGraph bool
}

// NewLayoutRenderer creates a renderer drawing cellSize pixel cells
func NewLayoutRenderer(camera *components.Camera, cellSize int) *LayoutRenderer {
	return &LayoutRenderer{
		camera:    camera,
		cellSize:  cellSize,
		showGraph: true,
	}
}

// SetLayout replaces the layout being drawn
func (s *LayoutRenderer) SetLayout(l *generation.Layout, layer components.Layer) {
	s.layout = l
	s.canvas = render.NewCanvas(l, layer)
	s.camera.Clamp(l.Size())
}

// ToggleGraph shows or hides the graph overlay
func (s *LayoutRenderer) ToggleGraph() {
	s.showGraph = !s.showGraph
}

// Draw renders the visible cells, the overlays and the status lines
func (s *LayoutRenderer) Draw(screen *ebiten.Image, status []string) {
	screen.Fill(backgroundColor)

	if s.canvas != nil {
		s.drawCells(screen)
		if s.showGraph {
			s.drawGraph(screen)
		}
	}

	s.drawStatusPanel(screen, status)
}

func (s *LayoutRenderer) drawCells(screen *ebiten.Image) {
	size := float32(s.cellSize)
	for sy := 0; sy < s.camera.ViewH; sy++ {
		for sx := 0; sx < s.camera.ViewW; sx++ {
			worldX, worldY := s.camera.ScreenToWorld(sx, sy)
			clr, ok := glyphColors[s.canvas.Glyph(worldX, worldY)]
			if !ok {
				continue
			}
			vector.DrawFilledRect(screen, float32(sx)*size, float32(sy)*size, size, size, clr, false)
		}
	}
}

// cellCenter returns the pixel center of a grid cell
func (s *LayoutRenderer) cellCenter(p components.Point) (float32, float32) {
	sx, sy := s.camera.WorldToScreen(p.X, p.Y)
	half := float32(s.cellSize) / 2
	return float32(sx*s.cellSize) + half, float32(sy*s.cellSize) + half
}

func (s *LayoutRenderer) drawGraph(screen *ebiten.Image) {
	graph := s.layout.Graph
	for _, room := range graph.Rooms() {
		x0, y0 := s.cellCenter(room.Center())
		for _, id := range room.Connections {
			// Each edge once
			if id < room.ID {
				continue
			}
			x1, y1 := s.cellCenter(graph.Room(id).Center())
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, edgeColor, true)
		}
	}

	hull := s.layout.Hull
	for i := range hull {
		a := graph.Room(hull[i]).Center()
		b := graph.Room(hull[(i+1)%len(hull)]).Center()
		x0, y0 := s.cellCenter(a)
		x1, y1 := s.cellCenter(b)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, hullColor, true)
	}
}

func (s *LayoutRenderer) drawStatusPanel(screen *ebiten.Image, status []string) {
	top := config.ViewHeight * config.CellSize
	vector.DrawFilledRect(screen, 0, float32(top), float32(config.WindowWidth), float32(config.StatusHeight*config.CellSize), panelColor, false)

	// DebugPrint glyphs are 16 pixels tall
	for i, line := range status {
		y := top + 2 + i*16
		if y+16 > config.WindowHeight {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, 4, y)
	}
}
