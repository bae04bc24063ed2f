package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dungeon-layout/components"
	"dungeon-layout/config"
	"dungeon-layout/events"
	"dungeon-layout/generation"
	"dungeon-layout/render"
	"dungeon-layout/systems"
)

var viewerLayers = []components.Layer{
	components.LayerMerged,
	components.LayerRooms,
	components.LayerCorridors,
}

// LayoutViewer implements ebiten.Game for browsing generated layouts
type LayoutViewer struct {
	cfg      config.Generation
	camera   *components.Camera
	renderer *systems.LayoutRenderer
	messages *render.MessageLog
	logger   *log.Logger
	events   *events.EventManager

	layout *generation.Layout
	layer  int
}

// NewLayoutViewer creates a viewer and generates its first layout
func NewLayoutViewer(cfg config.Generation, layer components.Layer) (*LayoutViewer, error) {
	camera := components.NewCamera(config.ViewWidth, config.ViewHeight)
	messages := render.NewMessageLog(50)

	v := &LayoutViewer{
		cfg:      cfg,
		camera:   camera,
		renderer: systems.NewLayoutRenderer(camera, config.CellSize),
		messages: messages,
		logger:   log.New(messages, "", 0),
		events:   events.NewEventManager(),
	}
	for i, l := range viewerLayers {
		if l == layer {
			v.layer = i
		}
	}

	v.events.Subscribe(events.EventCorridorsCrossed, func(e events.Event) {
		cc := e.(events.CorridorsCrossed)
		v.messages.Add(fmt.Sprintf("Corridor %d crossed corridor %d", cc.Corridor, cc.Crossed))
	})

	if err := v.generate(cfg.Seed); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *LayoutViewer) generate(seed int64) error {
	cfg := v.cfg
	cfg.Seed = seed

	gen := generation.NewGenerator(cfg, generation.WithLogger(v.logger), generation.WithEvents(v.events))
	layout, err := gen.Run()
	if err != nil {
		return err
	}

	v.layout = layout
	v.camera.CenterOn(layout.Graph.Room(layout.Start).Center())
	v.renderer.SetLayout(layout, viewerLayers[v.layer])
	return nil
}

// Update handles input
func (v *LayoutViewer) Update() error {
	moveSpeed := 2

	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.camera.Move(0, -moveSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.camera.Move(0, moveSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.camera.Move(-moveSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.camera.Move(moveSpeed, 0)
	}
	v.camera.Clamp(v.layout.Size())

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := v.generate(v.layout.Seed + 1); err != nil {
			v.messages.Add("Error: " + err.Error())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		v.layer = (v.layer + 1) % len(viewerLayers)
		v.renderer.SetLayout(v.layout, viewerLayers[v.layer])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		v.renderer.ToggleGraph()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// Draw draws the layout and the status panel
func (v *LayoutViewer) Draw(screen *ebiten.Image) {
	s := v.layout.Summary()
	status := []string{
		fmt.Sprintf("Seed %d  rooms %d  corridors %d  edges %d  layer %s  [arrows] pan [R] regenerate [L] layer [G] graph [F] fullscreen",
			v.layout.Seed, s.Rooms, s.Corridors, s.Edges, viewerLayers[v.layer]),
	}
	status = append(status, v.messages.RecentMessages(2)...)
	v.renderer.Draw(screen, status)
}

// Layout implements ebiten.Game's Layout
func (v *LayoutViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GetScreenDimensions()
}
