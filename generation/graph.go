package generation

import (
	"math"

	"dungeon-layout/components"

	"github.com/zyedidia/generic/mapset"
)

// Labeling is the result of one distance evaluation. Slices are indexed by
// room id, parallel to the graph's room arena.
type Labeling struct {
	Origin      components.RoomID
	Distance    []float64           // +Inf for unreachable rooms
	Parent      []components.RoomID // NoRoom for the origin and unreachable rooms
	MaxDistance int
}

// ConnectivityGraph owns the placed rooms in discovery order. Room ids are
// arena indices, so the seed room is always id 0.
//
// Query state (distance labels and hull flags) is kept beside the rooms, not
// on them. The graph is not safe for concurrent use and two evaluations must
// not interleave.
type ConnectivityGraph struct {
	rooms  []*components.Room
	labels *Labeling
	hull   []bool
}

// NewConnectivityGraph creates an empty graph
func NewConnectivityGraph() *ConnectivityGraph {
	return &ConnectivityGraph{}
}

// AddRoom registers a room and assigns its id
func (g *ConnectivityGraph) AddRoom(room *components.Room) components.RoomID {
	room.ID = components.RoomID(len(g.rooms))
	g.rooms = append(g.rooms, room)
	g.hull = append(g.hull, false)
	return room.ID
}

// Count returns the number of rooms
func (g *ConnectivityGraph) Count() int {
	return len(g.rooms)
}

// Room returns a room by id
func (g *ConnectivityGraph) Room(id components.RoomID) *components.Room {
	return g.rooms[id]
}

// Rooms returns the rooms in discovery order. The slice must not be modified.
func (g *ConnectivityGraph) Rooms() []*components.Room {
	return g.rooms
}

// Neighbors returns the ids directly connected to a room
func (g *ConnectivityGraph) Neighbors(id components.RoomID) []components.RoomID {
	return g.rooms[id].Connections
}

// Connected reports whether two rooms share an edge
func (g *ConnectivityGraph) Connected(a, b components.RoomID) bool {
	return g.rooms[a].ConnectedTo(b)
}

// Connect links two rooms in both directions
func (g *ConnectivityGraph) Connect(a, b components.RoomID) {
	g.rooms[a].AddConnection(g.rooms[b])
}

// Disconnect removes the link between two rooms
func (g *ConnectivityGraph) Disconnect(a, b components.RoomID) {
	g.rooms[a].RemoveConnection(g.rooms[b])
}

// EdgeCount returns the number of undirected edges
func (g *ConnectivityGraph) EdgeCount() int {
	n := 0
	for _, r := range g.rooms {
		n += len(r.Connections)
	}
	return n / 2
}

// AverageConnections returns the mean connection count per room
func (g *ConnectivityGraph) AverageConnections() float64 {
	if len(g.rooms) == 0 {
		return 0
	}
	return float64(2*g.EdgeCount()) / float64(len(g.rooms))
}

// ResetEvaluation drops the cached labeling and starts a blank one where
// every room is unreachable
func (g *ConnectivityGraph) ResetEvaluation() {
	n := len(g.rooms)
	l := &Labeling{
		Origin:   components.NoRoom,
		Distance: make([]float64, n),
		Parent:   make([]components.RoomID, n),
	}
	for i := range l.Distance {
		l.Distance[i] = math.Inf(1)
		l.Parent[i] = components.NoRoom
	}
	g.labels = l
}

// Labels returns the current labeling, or nil if nothing was evaluated
func (g *ConnectivityGraph) Labels() *Labeling {
	return g.labels
}

// evaluatedFrom reports whether the cached labeling belongs to origin and
// still covers every room
func (g *ConnectivityGraph) evaluatedFrom(origin components.RoomID) bool {
	return g.labels != nil && g.labels.Origin == origin && len(g.labels.Distance) == len(g.rooms)
}

// Distance returns the labeled distance of a room, +Inf when unlabeled
func (g *ConnectivityGraph) Distance(id components.RoomID) float64 {
	if g.labels == nil || int(id) >= len(g.labels.Distance) {
		return math.Inf(1)
	}
	return g.labels.Distance[id]
}

// IsHull reports whether the last hull computation marked the room
func (g *ConnectivityGraph) IsHull(id components.RoomID) bool {
	return g.hull[id]
}

// clearHull resets every hull flag
func (g *ConnectivityGraph) clearHull() {
	for i := range g.hull {
		g.hull[i] = false
	}
}

// Reachable returns every room reachable from origin, origin included
func (g *ConnectivityGraph) Reachable(origin components.RoomID) mapset.Set[components.RoomID] {
	seen := mapset.New[components.RoomID]()
	seen.Put(origin)

	stack := []components.RoomID{origin}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range g.rooms[id].Connections {
			if !seen.Has(n) {
				seen.Put(n)
				stack = append(stack, n)
			}
		}
	}
	return seen
}

// Components returns the number of connected components
func (g *ConnectivityGraph) Components() int {
	visited := mapset.New[components.RoomID]()
	count := 0
	for _, r := range g.rooms {
		if visited.Has(r.ID) {
			continue
		}
		count++
		g.Reachable(r.ID).Each(func(id components.RoomID) {
			visited.Put(id)
		})
	}
	return count
}
