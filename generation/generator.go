package generation

import (
	"io"
	"log"
	"math/rand"
	"time"

	"dungeon-layout/components"
	"dungeon-layout/config"
	"dungeon-layout/events"

	"github.com/pkg/errors"
)

// Generator builds room-and-corridor layouts.
//
// A run goes through the seed, growing, improving and connecting phases in
// that order and is a pure function of the configuration and the random
// stream, so a fixed seed reproduces the same layout. A Generator is not safe
// for concurrent use; create one per goroutine.
type Generator struct {
	cfg    config.Generation
	rng    *rand.Rand
	seed   int64
	logger *log.Logger
	events *events.EventManager

	// Per run state
	roomGrid     *components.OccupancyGrid
	corridorGrid *components.OccupancyGrid
	reserved     *components.OccupancyGrid // Full bounding boxes of placed rooms
	graph        *ConnectivityGraph
	corridors    []*components.Corridor
	stencils     *StencilTable
	work         Worklist
	bandLeft     int
	bandRight    int
}

// Option configures a Generator
type Option func(*Generator)

// WithRand replaces the random stream
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithSource builds the random stream on top of src, for example a NoiseSource
func WithSource(src rand.Source) Option {
	return func(g *Generator) {
		g.rng = rand.New(src)
	}
}

// WithLogger sets the logger for phase and summary lines
func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithEvents sets the manager that receives progress events
func WithEvents(em *events.EventManager) Option {
	return func(g *Generator) {
		g.events = em
	}
}

// NewGenerator creates a generator for cfg. A zero cfg.Seed picks a time
// based seed.
func NewGenerator(cfg config.Generation, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg,
		logger: log.New(io.Discard, "", 0),
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.SetSeed(seed)

	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetSeed allows setting a specific seed for reproducible layouts. Profiles
// with Noise set draw from a NoiseSource.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
	if g.cfg.Noise {
		g.rng = rand.New(NewNoiseSource(seed))
		return
	}
	g.rng = rand.New(rand.NewSource(seed))
}

// Seed returns the seed of the current random stream
func (g *Generator) Seed() int64 {
	return g.seed
}

// Config returns the configuration used by Run
func (g *Generator) Config() config.Generation {
	return g.cfg
}

// Run generates a layout. Only an invalid configuration fails; a room count
// that cannot be reached just yields fewer rooms.
func (g *Generator) Run() (*Layout, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := g.reset(); err != nil {
		return nil, err
	}

	g.enter(events.PhaseSeed)
	g.placeSeedRoom()

	g.enter(events.PhaseGrowing)
	g.drain()

	g.enter(events.PhaseImproving)
	g.improve()

	g.enter(events.PhaseConnecting)
	g.connectExtra()

	layout, err := g.buildLayout()
	if err != nil {
		return nil, err
	}

	g.enter(events.PhaseDone)
	g.logSummary(layout)
	return layout, nil
}

// reset allocates fresh grids and graph for a run
func (g *Generator) reset() error {
	var err error
	n := g.cfg.GridSize

	if g.roomGrid, err = components.NewOccupancyGrid(n); err != nil {
		return errors.Wrap(err, "rooms layer")
	}
	if g.corridorGrid, err = components.NewOccupancyGrid(n); err != nil {
		return errors.Wrap(err, "corridors layer")
	}
	if g.reserved, err = components.NewOccupancyGrid(n); err != nil {
		return errors.Wrap(err, "reserved layer")
	}
	if g.stencils, err = NewStencilTable(g.cfg.Stencils); err != nil {
		return errors.Wrap(err, "stencils")
	}

	g.graph = NewConnectivityGraph()
	g.corridors = nil
	g.work = NewWorklist(g.cfg.RandomPickChance)
	g.bandLeft, g.bandRight = g.cfg.ShapeBand()
	return nil
}

// enter announces a phase change
func (g *Generator) enter(phase events.Phase) {
	g.logger.Printf("Generation phase %s (%d rooms)", phase, g.graph.Count())
	g.events.Emit(events.PhaseChanged{Phase: phase, Rooms: g.graph.Count()})
}

// logSummary prints run statistics
func (g *Generator) logSummary(layout *Layout) {
	left, right := g.bandLeft, g.bandRight
	ratio := float64(g.cfg.GridSize) / float64(max(right-left, 1))

	g.logger.Printf("Space ratio: 1 : %.2f", ratio)
	g.logger.Printf("Placed %d of %d rooms, %d corridors", g.graph.Count(), g.cfg.RoomCount, len(g.corridors))
	g.logger.Printf("Average connection count per room: %.2f", g.graph.AverageConnections())
	if len(layout.Path) > 0 {
		g.logger.Printf("Start room %d, end room %d, path of %d rooms", layout.Start, layout.End, len(layout.Path))
	}
}
