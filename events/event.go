package events

import (
	"dungeon-layout/components"
)

// EventType identifies different types of events
type EventType string

const (
	EventPhaseChanged     EventType = "phase_changed"
	EventRoomPlaced       EventType = "room_placed"
	EventCorridorPlaced   EventType = "corridor_placed"
	EventCorridorsCrossed EventType = "corridors_crossed"
)

// Event interface that all events must implement
type Event interface {
	Type() EventType
}

// Phase is a stage of a generation run. Phases only move forward.
type Phase int

const (
	PhaseSeed Phase = iota
	PhaseGrowing
	PhaseImproving
	PhaseConnecting
	PhaseDone
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseSeed:
		return "seed"
	case PhaseGrowing:
		return "growing"
	case PhaseImproving:
		return "improving"
	case PhaseConnecting:
		return "connecting"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// PhaseChanged is emitted when the generator enters a new phase
type PhaseChanged struct {
	Phase Phase
	Rooms int // Rooms placed so far
}

func (e PhaseChanged) Type() EventType { return EventPhaseChanged }

// RoomPlaced is emitted after a room is committed to the grids and the graph
type RoomPlaced struct {
	Room   components.RoomID
	Parent components.RoomID // NoRoom for the seed room
	Bounds components.Rect
}

func (e RoomPlaced) Type() EventType { return EventRoomPlaced }

// CorridorPlaced is emitted after a corridor is written to the corridor layer
type CorridorPlaced struct {
	Corridor  int
	Bounds    components.Rect
	Endpoints []components.RoomID
}

func (e CorridorPlaced) Type() EventType { return EventCorridorPlaced }

// CorridorsCrossed is emitted when a new corridor lands on an existing one
// and their endpoint sets are merged
type CorridorsCrossed struct {
	Corridor int
	Crossed  int
}

func (e CorridorsCrossed) Type() EventType { return EventCorridorsCrossed }
