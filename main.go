package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"dungeon-layout/components"
	"dungeon-layout/config"
	"dungeon-layout/generation"
	"dungeon-layout/render"
	"dungeon-layout/server"
	"dungeon-layout/tui"
)

func main() {
	configPath := flag.String("config", "", "JSON generation profile")
	profileDir := flag.String("profiles", "", "Directory of JSON generation profiles")
	profileName := flag.String("profile", "", "Profile to use from -profiles")
	seed := flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	rooms := flag.Int("rooms", 0, "Override the target room count")
	size := flag.Int("size", 0, "Override the grid size")
	layerName := flag.String("layer", "merged", "Layer to draw: merged, rooms or corridors")
	useNoise := flag.Bool("noise", false, "Draw randomness from squirrel noise instead of math/rand")
	asJSON := flag.Bool("json", false, "Print the layout summary as JSON instead of the grid")
	view := flag.Bool("view", false, "Open the layout viewer window")
	browse := flag.Bool("browse", false, "Browse layouts in the terminal")
	serve := flag.String("serve", "", "Serve layouts over websockets on this address, e.g. :8080")
	verbose := flag.Bool("v", false, "Log generation phases to stderr")
	flag.Parse()

	cfg, err := config.SelectProfile(*configPath, *profileDir, *profileName)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *rooms > 0 {
		cfg.RoomCount = *rooms
	}
	if *size > 0 {
		cfg.GridSize = *size
	}
	if *useNoise {
		cfg.Noise = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	layer, err := parseLayer(*layerName)
	if err != nil {
		log.Fatal(err)
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	switch {
	case *serve != "":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := server.NewServer(cfg, log.Default()).ListenAndServe(ctx, *serve); err != nil {
			log.Fatal(err)
		}

	case *view:
		viewer, err := NewLayoutViewer(cfg, layer)
		if err != nil {
			log.Fatal(err)
		}
		ebiten.SetWindowSize(config.GetScreenDimensions())
		ebiten.SetWindowTitle("Dungeon Layout Viewer")
		if err := ebiten.RunGame(viewer); err != nil {
			log.Fatal(err)
		}

	case *browse:
		if err := runBrowser(cfg); err != nil {
			log.Fatal(err)
		}

	default:
		if err := dump(os.Stdout, cfg, layer, *asJSON, logger); err != nil {
			log.Fatal(err)
		}
	}
}

func parseLayer(name string) (components.Layer, error) {
	for _, l := range []components.Layer{components.LayerMerged, components.LayerRooms, components.LayerCorridors} {
		if l.String() == name {
			return l, nil
		}
	}
	return components.LayerMerged, errors.Errorf("unknown layer %q", name)
}

// dump writes one layout as ASCII art followed by a summary line
func dump(w io.Writer, cfg config.Generation, layer components.Layer, asJSON bool, logger *log.Logger) error {
	layout, err := generation.NewGenerator(cfg, generation.WithLogger(logger)).Run()
	if err != nil {
		return err
	}
	s := layout.Summary()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Seed int64 `json:"seed"`
			generation.Summary
		}{layout.Seed, s})
	}

	if _, err := io.WriteString(w, render.NewCanvas(layout, layer).String()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "seed %d: %d rooms, %d corridors, %d edges, %.2f connections per room, path of %d rooms\n",
		layout.Seed, s.Rooms, s.Corridors, s.Edges, s.AverageConnections, s.PathRooms)
	return err
}

func runBrowser(cfg config.Generation) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// Log lines would scribble over the screen
	return tui.NewBrowser(screen, cfg, nil).Run()
}
