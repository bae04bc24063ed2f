package generation

import (
	"dungeon-layout/components"
	"dungeon-layout/config"

	"github.com/pkg/errors"
)

// Layout is the finished result of a generation run: the occupancy layers,
// the connectivity graph with its corridors, and the derived queries.
type Layout struct {
	Config config.Generation
	Seed   int64

	RoomGrid     *components.OccupancyGrid // Solid room cells
	CorridorGrid *components.OccupancyGrid
	MergedGrid   *components.OccupancyGrid

	Graph     *ConnectivityGraph
	Corridors []*components.Corridor

	Hull   []components.RoomID // Convex hull of room centers, in walk order
	Start  components.RoomID
	End    components.RoomID
	Path   []components.RoomID // Shortest path from Start to End
	Events []components.RoomID // Rooms sampled at a minimum distance from Start
}

// Summary holds headline numbers of a layout
type Summary struct {
	Rooms              int     `json:"rooms"`
	Corridors          int     `json:"corridors"`
	Edges              int     `json:"edges"`
	Components         int     `json:"components"`
	AverageConnections float64 `json:"average_connections"`
	HullRooms          int     `json:"hull_rooms"`
	PathRooms          int     `json:"path_rooms"`
	OccupiedCells      int     `json:"occupied_cells"`
}

// buildLayout snapshots the run state and derives the start, end, path,
// hull and event queries
func (g *Generator) buildLayout() (*Layout, error) {
	merged, err := components.Merge(g.roomGrid, g.corridorGrid)
	if err != nil {
		return nil, errors.Wrap(err, "merging layers")
	}

	l := &Layout{
		Config:       g.cfg,
		Seed:         g.seed,
		RoomGrid:     g.roomGrid,
		CorridorGrid: g.corridorGrid,
		MergedGrid:   merged,
		Graph:        g.graph,
		Corridors:    g.corridors,
	}

	graph := g.graph
	l.Hull = ConvexHull(graph, HullStart(graph))

	switch g.cfg.StartPolicy {
	case config.StartHull:
		l.Start = l.Hull[g.rng.Intn(len(l.Hull))]
	case config.StartRandom:
		l.Start = components.RoomID(g.rng.Intn(graph.Count()))
	default:
		l.Start = 0
	}

	l.End = PickEndRoom(graph, l.Start, g.cfg.EndDistance.Min, g.cfg.EndDistance.Max, g.cfg.EndOnHull, g.rng)
	l.Path = ShortestPathBetween(graph, l.Start, l.End)
	l.Events = SampleAtDistance(graph, l.Start, g.cfg.EventCount, g.cfg.EventMinDistance, g.rng)

	return l, nil
}

// Size returns the grid side length
func (l *Layout) Size() int {
	return l.RoomGrid.Size
}

// Grid returns the occupancy layer
func (l *Layout) Grid(layer components.Layer) *components.OccupancyGrid {
	switch layer {
	case components.LayerRooms:
		return l.RoomGrid
	case components.LayerCorridors:
		return l.CorridorGrid
	default:
		return l.MergedGrid
	}
}

// Occupancy reports whether (x, y) is occupied on a layer. Coordinates
// outside the grid are empty.
func (l *Layout) Occupancy(layer components.Layer, x, y int) bool {
	grid := l.Grid(layer)
	if !grid.InBounds(x, y) {
		return false
	}
	return grid.Get(x, y)
}

// Rooms returns the placed rooms in discovery order
func (l *Layout) Rooms() []*components.Room {
	return l.Graph.Rooms()
}

// RoomAt returns the room whose solid cells include p, or NoRoom
func (l *Layout) RoomAt(p components.Point) components.RoomID {
	for _, r := range l.Graph.Rooms() {
		if r.IsSolidAt(p) {
			return r.ID
		}
	}
	return components.NoRoom
}

// CorridorAt returns the first corridor covering p, or nil
func (l *Layout) CorridorAt(p components.Point) *components.Corridor {
	for _, c := range l.Corridors {
		if c.Contains(p) {
			return c
		}
	}
	return nil
}

// IsEvent reports whether a room was sampled as an event room
func (l *Layout) IsEvent(id components.RoomID) bool {
	for _, e := range l.Events {
		if e == id {
			return true
		}
	}
	return false
}

// OnPath reports whether a room lies on the start to end path
func (l *Layout) OnPath(id components.RoomID) bool {
	for _, p := range l.Path {
		if p == id {
			return true
		}
	}
	return false
}

// Summary computes the headline numbers
func (l *Layout) Summary() Summary {
	return Summary{
		Rooms:              l.Graph.Count(),
		Corridors:          len(l.Corridors),
		Edges:              l.Graph.EdgeCount(),
		Components:         l.Graph.Components(),
		AverageConnections: l.Graph.AverageConnections(),
		HullRooms:          len(l.Hull),
		PathRooms:          len(l.Path),
		OccupiedCells:      l.MergedGrid.Count(),
	}
}
