package server

import (
	"encoding/json"
	"strings"

	"dungeon-layout/components"
	"dungeon-layout/config"
	"dungeon-layout/generation"

	"github.com/pkg/errors"
)

// Message types
const (
	MessageHello    = "hello"
	MessageGenerate = "generate"
	MessageProgress = "progress"
	MessageLayout   = "layout"
	MessageError    = "error"
)

// Envelope wraps every server to client message
type Envelope struct {
	Sequence uint64 `json:"sequence"`
	Type     string `json:"type"`
	Payload  any    `json:"payload,omitempty"`
}

// IntentEnvelope is a client request. Config holds generation overrides
// applied on top of the server defaults.
type IntentEnvelope struct {
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config,omitempty"`
}

// Progress reports a phase change of a running generation
type Progress struct {
	Phase string `json:"phase"`
	Rooms int    `json:"rooms"`
}

// ErrorMessage reports a rejected request
type ErrorMessage struct {
	Message string `json:"message"`
}

// RoomSnapshot is the wire form of a room
type RoomSnapshot struct {
	ID          components.RoomID   `json:"id"`
	X           int                 `json:"x"`
	Y           int                 `json:"y"`
	Width       int                 `json:"width"`
	Height      int                 `json:"height"`
	Stencil     bool                `json:"stencil,omitempty"`
	Connections []components.RoomID `json:"connections"`
}

// CorridorSnapshot is the wire form of a corridor
type CorridorSnapshot struct {
	ID        int                 `json:"id"`
	X         int                 `json:"x"`
	Y         int                 `json:"y"`
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	Endpoints []components.RoomID `json:"endpoints"`
}

// LayoutSnapshot is the wire form of a generated layout. Rows hold the merged
// occupancy, one string per row with '#' for occupied and '.' for empty cells.
type LayoutSnapshot struct {
	Seed      int64               `json:"seed"`
	Size      int                 `json:"size"`
	Rooms     []RoomSnapshot      `json:"rooms"`
	Corridors []CorridorSnapshot  `json:"corridors"`
	Hull      []components.RoomID `json:"hull"`
	Start     components.RoomID   `json:"start"`
	End       components.RoomID   `json:"end"`
	Path      []components.RoomID `json:"path"`
	Events    []components.RoomID `json:"events"`
	Rows      []string            `json:"rows"`
	Summary   generation.Summary  `json:"summary"`
}

// NewLayoutSnapshot converts a layout for the wire
func NewLayoutSnapshot(l *generation.Layout) LayoutSnapshot {
	snap := LayoutSnapshot{
		Seed:    l.Seed,
		Size:    l.Size(),
		Hull:    l.Hull,
		Start:   l.Start,
		End:     l.End,
		Path:    l.Path,
		Events:  l.Events,
		Summary: l.Summary(),
	}

	for _, r := range l.Rooms() {
		b := r.Bounds()
		snap.Rooms = append(snap.Rooms, RoomSnapshot{
			ID:          r.ID,
			X:           b.Position.X,
			Y:           b.Position.Y,
			Width:       b.Size.X,
			Height:      b.Size.Y,
			Stencil:     r.IsStencil(),
			Connections: append([]components.RoomID(nil), r.Connections...),
		})
	}

	for _, c := range l.Corridors {
		snap.Corridors = append(snap.Corridors, CorridorSnapshot{
			ID:        c.ID,
			X:         c.Position.X,
			Y:         c.Position.Y,
			Width:     c.Size.X,
			Height:    c.Size.Y,
			Endpoints: append([]components.RoomID(nil), c.Endpoints...),
		})
	}

	size := l.Size()
	snap.Rows = make([]string, size)
	var sb strings.Builder
	for y := 0; y < size; y++ {
		sb.Reset()
		for x := 0; x < size; x++ {
			if l.Occupancy(components.LayerMerged, x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		snap.Rows[y] = sb.String()
	}

	return snap
}

// DecodeGenerateRequest applies raw overrides to defaults and validates the
// result. Grids larger than maxGridSize are refused.
func DecodeGenerateRequest(defaults config.Generation, raw json.RawMessage, maxGridSize int) (config.Generation, error) {
	cfg := defaults
	cfg.Stencils = append([]config.StencilDefinition(nil), defaults.Stencils...)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return cfg, errors.Wrap(err, "decoding config")
		}
	}
	return cfg, checkGeneration(cfg, maxGridSize)
}

// checkGeneration validates cfg and enforces the server grid limit
func checkGeneration(cfg config.Generation, maxGridSize int) error {
	if maxGridSize > 0 && cfg.GridSize > maxGridSize {
		return errors.Wrapf(config.ErrInvalidConfig, "grid_size: %d exceeds server limit %d", cfg.GridSize, maxGridSize)
	}
	return cfg.Validate()
}
