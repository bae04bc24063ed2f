package config

import (
	"dungeon-layout/components"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned when a generation profile cannot produce a layout
var ErrInvalidConfig = errors.New("invalid generation config")

// Start room policies
const (
	StartCenter = "center" // The seed room
	StartHull   = "hull"   // A random room on the convex hull
	StartRandom = "random" // Any room
)

// Range is an integer interval. Random draws treat it as half-open [Min, Max),
// and Min == Max always yields Min.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// StencilDefinition describes a mask-shaped room type
type StencilDefinition struct {
	Name      string   `json:"name"`
	Mask      []string `json:"mask"`      // Rows of '#' (solid) and '.' (empty)
	Frequency float64  `json:"frequency"` // Chance of picking this stencil for a new room (0.0-1.0)
}

// Generation holds every parameter of a layout run
type Generation struct {
	Name string `json:"name"` // Profile name, used by the profile manager

	// Dungeon parameters
	GridSize         int     `json:"grid_size"`         // Side length of the square grid
	RoomCount        int     `json:"room_count"`        // Target number of rooms
	CompressFactor   float64 `json:"compress_factor"`   // Placement attempts and improvement passes (0.0-1.0)
	ConnectionDegree float64 `json:"connection_degree"` // Crossing and extra edge probability (0.0-1.0)
	Shape            float64 `json:"shape"`             // Narrows the usable horizontal band (0.0-1.0)

	// Room parameters
	RoomWidth    Range `json:"room_width"`
	RoomHeight   Range `json:"room_height"`
	RoomDistance Range `json:"room_distance"` // Extra gap between a room and its parent

	// Corridor parameters
	PathWidth          int     `json:"path_width"`
	PathLength         Range   `json:"path_length"`          // Inclusive bounds for extra connection corridors
	DisableCrossing    bool    `json:"disable_crossing"`     // Reject every corridor that touches another corridor
	CrossingLinkFactor float64 `json:"crossing_link_factor"` // Crossed corridors link rooms within factor * RoomDistance.Max

	// Growth worklist
	RandomPickChance float64 `json:"random_pick_chance"` // Chance of growing a random queued room instead of the oldest

	Stencils []StencilDefinition `json:"stencils"`

	// Derived queries
	StartPolicy      string `json:"start_policy"`
	EndDistance      Range  `json:"end_distance"` // Inclusive graph distance bounds for the end room
	EndOnHull        bool   `json:"end_on_hull"`
	EventCount       int    `json:"event_count"`
	EventMinDistance int    `json:"event_min_distance"`

	Seed  int64 `json:"seed"`  // 0 picks a time based seed
	Noise bool  `json:"noise"` // Draw randomness from squirrel noise instead of math/rand
}

// DefaultGeneration returns the stock profile
func DefaultGeneration() Generation {
	return Generation{
		Name:               "default",
		GridSize:           100,
		RoomCount:          50,
		CompressFactor:     0.1,
		ConnectionDegree:   0.3,
		Shape:              0,
		RoomWidth:          Range{Min: 5, Max: 10},
		RoomHeight:         Range{Min: 5, Max: 10},
		RoomDistance:       Range{Min: 0, Max: 10},
		PathWidth:          2,
		PathLength:         Range{Min: 1, Max: 20},
		CrossingLinkFactor: 2,
		RandomPickChance:   0.3,
		StartPolicy:        StartCenter,
		EndDistance:        Range{Min: 5, Max: 50},
		EndOnHull:          true,
		EventCount:         3,
		EventMinDistance:   3,
	}
}

// ShapeBand returns the half-open column interval [left, right) rooms may use.
// The band never gets narrower than two minimum room widths.
func (g *Generation) ShapeBand() (left, right int) {
	n := float64(g.GridSize)
	size := n - g.Shape*n
	size = max(size, 2*float64(g.RoomWidth.Min))
	return int(n/2 - size/2), int(n/2 + size/2)
}

// CrossingLinkDistance returns the center distance under which rooms joined by
// crossing corridors are linked directly
func (g *Generation) CrossingLinkDistance() float64 {
	return g.CrossingLinkFactor * float64(g.RoomDistance.Max)
}

// Validate checks that the profile can drive a generation run
func (g *Generation) Validate() error {
	if g.GridSize <= 0 {
		return invalid("grid_size", "must be positive, got %d", g.GridSize)
	}
	if g.RoomCount < 1 {
		return invalid("room_count", "must be at least 1, got %d", g.RoomCount)
	}
	if g.PathWidth < 1 {
		return invalid("path_width", "must be at least 1, got %d", g.PathWidth)
	}

	for _, r := range []struct {
		field string
		rng   Range
	}{
		{"room_width", g.RoomWidth},
		{"room_height", g.RoomHeight},
	} {
		if r.rng.Min < g.PathWidth {
			return invalid(r.field, "min %d is narrower than path width %d", r.rng.Min, g.PathWidth)
		}
		if r.rng.Min > r.rng.Max {
			return invalid(r.field, "min %d exceeds max %d", r.rng.Min, r.rng.Max)
		}
		if r.rng.Max > g.GridSize-2 {
			return invalid(r.field, "max %d does not fit grid of %d", r.rng.Max, g.GridSize)
		}
	}

	if g.RoomDistance.Min < 0 || g.RoomDistance.Min > g.RoomDistance.Max {
		return invalid("room_distance", "bad range %d..%d", g.RoomDistance.Min, g.RoomDistance.Max)
	}
	if g.PathLength.Min < 0 || g.PathLength.Min > g.PathLength.Max {
		return invalid("path_length", "bad range %d..%d", g.PathLength.Min, g.PathLength.Max)
	}
	if g.EndDistance.Min < 0 || g.EndDistance.Min > g.EndDistance.Max {
		return invalid("end_distance", "bad range %d..%d", g.EndDistance.Min, g.EndDistance.Max)
	}

	for _, p := range []struct {
		field string
		value float64
	}{
		{"compress_factor", g.CompressFactor},
		{"connection_degree", g.ConnectionDegree},
		{"shape", g.Shape},
		{"random_pick_chance", g.RandomPickChance},
	} {
		if p.value < 0 || p.value > 1 {
			return invalid(p.field, "must be within [0,1], got %v", p.value)
		}
	}
	if g.CrossingLinkFactor < 0 {
		return invalid("crossing_link_factor", "must not be negative, got %v", g.CrossingLinkFactor)
	}

	switch g.StartPolicy {
	case "", StartCenter, StartHull, StartRandom:
	default:
		return invalid("start_policy", "unknown policy %q", g.StartPolicy)
	}
	if g.EventCount < 0 || g.EventMinDistance < 0 {
		return invalid("event_count", "event count and distance must not be negative")
	}

	for i, s := range g.Stencils {
		m, err := components.ParseMask(s.Mask)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "stencils[%d] %q: %v", i, s.Name, err)
		}
		if m.Width < g.PathWidth || m.Height < g.PathWidth {
			return invalid("stencils", "%q is narrower than path width %d", s.Name, g.PathWidth)
		}
		if m.Width > g.GridSize-2 || m.Height > g.GridSize-2 {
			return invalid("stencils", "%q does not fit grid of %d", s.Name, g.GridSize)
		}
		if s.Frequency < 0 || s.Frequency > 1 {
			return invalid("stencils", "%q frequency must be within [0,1], got %v", s.Name, s.Frequency)
		}
	}

	return nil
}

func invalid(field, format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfig, field+": "+format, args...)
}
