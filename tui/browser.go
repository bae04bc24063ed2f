package tui

import (
	"fmt"
	"io"
	"log"
	"time"

	"dungeon-layout/components"
	"dungeon-layout/config"
	"dungeon-layout/generation"
	"dungeon-layout/render"

	"github.com/gdamore/tcell/v2"
)

// layerCycle is the order the layer key steps through
var layerCycle = []components.Layer{
	components.LayerMerged,
	components.LayerRooms,
	components.LayerCorridors,
}

var glyphStyles = map[rune]tcell.Style{
	render.GlyphRoom:     tcell.StyleDefault.Foreground(tcell.ColorSilver),
	render.GlyphPath:     tcell.StyleDefault.Foreground(tcell.ColorYellow),
	render.GlyphCorridor: tcell.StyleDefault.Foreground(tcell.ColorTeal),
	render.GlyphStart:    tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	render.GlyphEnd:      tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	render.GlyphEvent:    tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true),
	render.GlyphEmpty:    tcell.StyleDefault.Foreground(tcell.ColorGray),
}

var statusStyle = tcell.StyleDefault.Reverse(true)

// Browser is a terminal viewer for generated layouts. The bottom row holds a
// status line; the rest of the screen is a scrollable window on the grid.
type Browser struct {
	screen tcell.Screen
	cfg    config.Generation
	logger *log.Logger

	layout *generation.Layout
	canvas *render.Canvas
	layer  int // Index into layerCycle
	offset components.Point
	status string
}

// NewBrowser creates a browser drawing on an initialized screen
func NewBrowser(screen tcell.Screen, cfg config.Generation, logger *log.Logger) *Browser {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Browser{
		screen: screen,
		cfg:    cfg,
		logger: logger,
	}
}

// Generate builds a layout with the configured seed. A zero seed picks one
// from the clock.
func (b *Browser) Generate() error {
	return b.generate(b.cfg.Seed)
}

// Regenerate builds the layout for the next seed
func (b *Browser) Regenerate() error {
	seed := time.Now().UnixNano()
	if b.layout != nil {
		seed = b.layout.Seed + 1
	}
	return b.generate(seed)
}

func (b *Browser) generate(seed int64) error {
	cfg := b.cfg
	cfg.Seed = seed

	layout, err := generation.NewGenerator(cfg, generation.WithLogger(b.logger)).Run()
	if err != nil {
		b.status = err.Error()
		return err
	}

	b.layout = layout
	b.canvas = render.NewCanvas(layout, layerCycle[b.layer])
	b.clamp()
	s := layout.Summary()
	b.status = fmt.Sprintf("seed %d  rooms %d  corridors %d  edges %d", layout.Seed, s.Rooms, s.Corridors, s.Edges)
	return nil
}

// Layout returns the layout on screen
func (b *Browser) Layout() *generation.Layout {
	return b.layout
}

// Layer returns the layer on screen
func (b *Browser) Layer() components.Layer {
	return layerCycle[b.layer]
}

// Offset returns the grid cell drawn in the top left corner
func (b *Browser) Offset() components.Point {
	return b.offset
}

// viewSize is the grid area of the screen
func (b *Browser) viewSize() (int, int) {
	w, h := b.screen.Size()
	return w, max(h-1, 0)
}

// Scroll moves the window, keeping it on the grid
func (b *Browser) Scroll(dx, dy int) {
	b.offset = b.offset.Add(components.Point{X: dx, Y: dy})
	b.clamp()
}

func (b *Browser) clamp() {
	if b.layout == nil {
		b.offset = components.Point{}
		return
	}
	w, h := b.viewSize()
	n := b.layout.Size()
	b.offset.X = min(max(b.offset.X, 0), max(n-w, 0))
	b.offset.Y = min(max(b.offset.Y, 0), max(n-h, 0))
}

// NextLayer switches to the next occupancy layer
func (b *Browser) NextLayer() {
	b.layer = (b.layer + 1) % len(layerCycle)
	if b.layout != nil {
		b.canvas = render.NewCanvas(b.layout, layerCycle[b.layer])
	}
}

// HandleEvent applies one screen event. It returns false when the browser
// should quit.
func (b *Browser) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		w, h := b.viewSize()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			b.Scroll(-1, 0)
		case tcell.KeyRight:
			b.Scroll(1, 0)
		case tcell.KeyUp:
			b.Scroll(0, -1)
		case tcell.KeyDown:
			b.Scroll(0, 1)
		case tcell.KeyPgUp:
			b.Scroll(0, -h)
		case tcell.KeyPgDn:
			b.Scroll(0, h)
		case tcell.KeyHome:
			b.offset = components.Point{}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				b.Scroll(-1, 0)
			case 'l':
				b.Scroll(1, 0)
			case 'k':
				b.Scroll(0, -1)
			case 'j':
				b.Scroll(0, 1)
			case 'H':
				b.Scroll(-w, 0)
			case 'L':
				b.Scroll(w, 0)
			case 'r':
				if err := b.Regenerate(); err != nil {
					b.logger.Printf("Regenerate failed: %v", err)
				}
			case 'v':
				b.NextLayer()
			}
		}

	case *tcell.EventResize:
		b.screen.Sync()
		b.clamp()
	}

	return true
}

// Draw paints the window and the status line
func (b *Browser) Draw() {
	b.screen.Clear()
	w, h := b.viewSize()

	if b.canvas != nil {
		for sy := 0; sy < h; sy++ {
			for sx := 0; sx < w; sx++ {
				g := b.canvas.Glyph(b.offset.X+sx, b.offset.Y+sy)
				b.screen.SetContent(sx, sy, g, nil, glyphStyles[g])
			}
		}
	}

	status := fmt.Sprintf("%s  layer %s  [arrows] pan [r] regenerate [v] layer [q] quit", b.status, b.Layer())
	b.putString(0, h, status, w, statusStyle)
	b.screen.Show()
}

func (b *Browser) putString(x, y int, s string, width int, style tcell.Style) {
	for _, r := range s {
		if x >= width {
			return
		}
		b.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run draws and handles events until the user quits or the screen closes
func (b *Browser) Run() error {
	if b.layout == nil {
		if err := b.Generate(); err != nil {
			return err
		}
	}

	for {
		b.Draw()
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !b.HandleEvent(ev) {
			return nil
		}
	}
}
