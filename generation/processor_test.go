package generation

import (
	"math"
	"math/rand"
	"testing"

	"dungeon-layout/components"
)

// addRoom places a 2x2 room with its top-left corner at (x, y)
func addRoom(g *ConnectivityGraph, x, y int) *components.Room {
	r := components.NewRoom(components.Point{X: 2, Y: 2})
	r.SetPosition(components.Point{X: x, Y: y})
	g.AddRoom(r)
	return r
}

// ringGraph builds 0-1-2-3-4-0 plus the isolated room 5
func ringGraph() *ConnectivityGraph {
	g := NewConnectivityGraph()
	for i := 0; i < 6; i++ {
		addRoom(g, i*10, 0)
	}
	g.Connect(0, 1)
	g.Connect(1, 2)
	g.Connect(2, 3)
	g.Connect(3, 4)
	g.Connect(4, 0)
	return g
}

// chainGraph builds n rooms in a row connected 0-1-...-(n-1)
func chainGraph(n int) *ConnectivityGraph {
	g := NewConnectivityGraph()
	for i := 0; i < n; i++ {
		addRoom(g, i*5, 0)
		if i > 0 {
			g.Connect(components.RoomID(i-1), components.RoomID(i))
		}
	}
	return g
}

func TestEvaluateDistances(t *testing.T) {
	g := ringGraph()
	Evaluate(g, 0)

	want := []float64{0, 1, 2, 2, 1, math.Inf(1)}
	for id, d := range want {
		if got := g.Distance(components.RoomID(id)); got != d {
			t.Errorf("Distance(%d) = %v, want %v", id, got, d)
		}
	}

	l := g.Labels()
	if l.MaxDistance != 2 {
		t.Errorf("MaxDistance = %d, want 2", l.MaxDistance)
	}
	if l.Parent[0] != components.NoRoom || l.Parent[5] != components.NoRoom {
		t.Error("Expected origin and unreachable rooms to have no parent")
	}

	// Every labeled parent is one step closer
	for id, p := range l.Parent {
		if p == components.NoRoom {
			continue
		}
		if l.Distance[id] != l.Distance[p]+1 {
			t.Errorf("Room %d at %v has parent %d at %v", id, l.Distance[id], p, l.Distance[p])
		}
		if !g.Connected(components.RoomID(id), p) {
			t.Errorf("Room %d is not connected to its parent %d", id, p)
		}
	}
}

func TestEvaluateIsMemoizedPerOrigin(t *testing.T) {
	g := ringGraph()

	Evaluate(g, 0)
	first := g.Labels()
	Evaluate(g, 0)
	if g.Labels() != first {
		t.Error("Expected repeated evaluation from the same origin to be skipped")
	}

	Evaluate(g, 2)
	if g.Labels() == first || g.Labels().Origin != 2 {
		t.Error("Expected a fresh labeling for a new origin")
	}

	// Adding a room makes the labeling stale
	second := g.Labels()
	addRoom(g, 100, 100)
	Evaluate(g, 2)
	if g.Labels() == second {
		t.Error("Expected re-evaluation after the graph grew")
	}
	if !math.IsInf(g.Distance(6), 1) {
		t.Error("Expected new isolated room to be unreachable")
	}
}

func TestPathTo(t *testing.T) {
	g := ringGraph()
	Evaluate(g, 0)

	path := PathTo(g, 3)
	if len(path) == 0 {
		t.Fatal("Expected a path to room 3")
	}
	if path[0] != 0 || path[len(path)-1] != 3 {
		t.Errorf("Path %v must run from 0 to 3", path)
	}
	if len(path)-1 != int(g.Distance(3)) {
		t.Errorf("Path %v has %d steps, distance is %v", path, len(path)-1, g.Distance(3))
	}
	for i := 1; i < len(path); i++ {
		if !g.Connected(path[i-1], path[i]) {
			t.Errorf("Path step %d -> %d is not an edge", path[i-1], path[i])
		}
	}

	if PathTo(g, 5) != nil {
		t.Error("Expected nil path to an unreachable room")
	}
	if got := PathTo(g, 0); len(got) != 1 || got[0] != 0 {
		t.Errorf("Path to origin = %v, want [0]", got)
	}
}

func TestPathToWithoutEvaluation(t *testing.T) {
	g := ringGraph()
	if PathTo(g, 3) != nil {
		t.Error("Expected nil path before any evaluation")
	}
}

func TestShortestPathBetween(t *testing.T) {
	g := chainGraph(5)

	path := ShortestPathBetween(g, 4, 1)
	want := []components.RoomID{4, 3, 2, 1}
	if len(path) != len(want) {
		t.Fatalf("Path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("Path = %v, want %v", path, want)
			break
		}
	}
}

func TestFindEdgeRooms(t *testing.T) {
	g := NewConnectivityGraph()
	addRoom(g, 10, 10) // 0
	addRoom(g, 10, 2)  // 1 north
	addRoom(g, 20, 2)  // 2 ties north, found later
	addRoom(g, 30, 12) // 3 east
	addRoom(g, 12, 25) // 4 south
	addRoom(g, 3, 14)  // 5 west

	edges := FindEdgeRooms(g)
	want := EdgeRooms{North: 1, East: 3, South: 4, West: 5}
	if edges != want {
		t.Errorf("FindEdgeRooms = %+v, want %+v", edges, want)
	}

	empty := FindEdgeRooms(NewConnectivityGraph())
	if empty.North != components.NoRoom || empty.West != components.NoRoom {
		t.Errorf("Expected NoRoom for an empty graph, got %+v", empty)
	}
}

// hullOrientation returns the sign of the first non-zero turn of the hull
func hullOrientation(g *ConnectivityGraph, hull []components.RoomID) int {
	n := len(hull)
	for i := 0; i < n; i++ {
		a := g.Room(hull[i]).Center()
		b := g.Room(hull[(i+1)%n]).Center()
		c := g.Room(hull[(i+2)%n]).Center()
		if turn := cross(a, b, c); turn != 0 {
			if turn > 0 {
				return 1
			}
			return -1
		}
	}
	return 0
}

// checkConvexHull verifies that the hull turns one way and encloses every center
func checkConvexHull(t *testing.T, g *ConnectivityGraph, hull []components.RoomID) {
	t.Helper()
	if len(hull) < 3 {
		return
	}

	sign := hullOrientation(g, hull)
	if sign == 0 {
		t.Fatalf("Hull %v is degenerate", hull)
	}

	n := len(hull)
	for i := 0; i < n; i++ {
		a := g.Room(hull[i]).Center()
		b := g.Room(hull[(i+1)%n]).Center()
		c := g.Room(hull[(i+2)%n]).Center()
		if cross(a, b, c)*sign < 0 {
			t.Errorf("Hull turns the other way at %v", b)
		}
		for _, r := range g.Rooms() {
			if cross(a, b, r.Center())*sign < 0 {
				t.Errorf("Room %d center %v lies outside hull edge %v -> %v", r.ID, r.Center(), a, b)
			}
		}
	}
}

func TestConvexHull(t *testing.T) {
	g := NewConnectivityGraph()
	addRoom(g, 0, 0)   // 0 corner
	addRoom(g, 20, 0)  // 1 corner
	addRoom(g, 20, 20) // 2 corner
	addRoom(g, 0, 20)  // 3 corner
	addRoom(g, 10, 10) // 4 inside
	addRoom(g, 5, 12)  // 5 inside
	addRoom(g, 10, 0)  // 6 on the top edge

	start := HullStart(g)
	if start != 0 {
		t.Fatalf("HullStart = %d, want 0", start)
	}

	hull := ConvexHull(g, start)
	if len(hull) != 4 {
		t.Fatalf("Hull = %v, want the four corners", hull)
	}
	if hull[0] != start {
		t.Errorf("Hull must begin at its start room, got %v", hull)
	}
	for _, id := range []components.RoomID{0, 1, 2, 3} {
		if !g.IsHull(id) {
			t.Errorf("Expected corner %d flagged as hull", id)
		}
	}
	for _, id := range []components.RoomID{4, 5, 6} {
		if g.IsHull(id) {
			t.Errorf("Expected room %d not flagged as hull", id)
		}
	}

	checkConvexHull(t, g, hull)
}

func TestConvexHullSmallGraphs(t *testing.T) {
	one := NewConnectivityGraph()
	addRoom(one, 4, 4)
	if hull := ConvexHull(one, HullStart(one)); len(hull) != 1 || hull[0] != 0 {
		t.Errorf("Single room hull = %v, want [0]", hull)
	}

	line := chainGraph(4)
	hull := ConvexHull(line, HullStart(line))
	if len(hull) != 2 || hull[0] != 0 || hull[1] != 3 {
		t.Errorf("Collinear hull = %v, want the two end rooms", hull)
	}

	if hull := ConvexHull(NewConnectivityGraph(), components.NoRoom); hull != nil {
		t.Errorf("Empty hull = %v, want nil", hull)
	}
}

func TestSynthesizeEdgesWithZeroProbability(t *testing.T) {
	g := NewConnectivityGraph()
	for i := 0; i < 5; i++ {
		addRoom(g, i*3, 0)
	}
	rng := rand.New(rand.NewSource(1))

	if pairs := SynthesizeEdges(g, 100, 0, rng); len(pairs) != 0 {
		t.Errorf("Expected no candidates at probability 0, got %v", pairs)
	}
}

func TestSynthesizeEdges(t *testing.T) {
	g := NewConnectivityGraph()
	addRoom(g, 0, 0)   // 0
	addRoom(g, 5, 0)   // 1
	addRoom(g, 40, 40) // 2, far from everything
	addRoom(g, 5, 5)   // 3
	g.Connect(0, 1)

	pairs := SynthesizeEdges(g, 5, 1, rand.New(rand.NewSource(1)))

	// 0 and 1 skip each other as first connections
	want := []RoomPair{{0, 3}, {1, 3}, {3, 0}, {3, 1}}
	if len(pairs) != len(want) {
		t.Fatalf("Pairs = %v, want %v", pairs, want)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("Pairs = %v, want %v", pairs, want)
			break
		}
	}

	if g.EdgeCount() != 1 {
		t.Error("SynthesizeEdges must not modify the graph")
	}
}

func TestSynthesizeEdgesSkipsWellConnectedRooms(t *testing.T) {
	g := NewConnectivityGraph()
	hub := addRoom(g, 10, 10)
	for i := 0; i < 3; i++ {
		r := addRoom(g, 10+3*i, 14)
		hub.AddConnection(r)
	}

	// At p = 0.2 the limit is floor(1.6) = 1, so the hub proposes nothing
	pairs := SynthesizeEdges(g, 100, 0.2, rand.New(rand.NewSource(3)))
	for _, p := range pairs {
		if p.A == hub.ID {
			t.Errorf("Hub with 3 connections proposed %v", p)
		}
	}
}

func TestSampleAtDistanceLowersThreshold(t *testing.T) {
	// Distances from 0 are 0,1,2,3, so only rooms 2 and 3 are at distance >= 2
	g := chainGraph(4)
	rng := rand.New(rand.NewSource(11))

	sample := SampleAtDistance(g, 0, 3, 2, rng)
	if len(sample) != 3 {
		t.Fatalf("Expected 3 rooms, got %v", sample)
	}

	seen := map[components.RoomID]bool{}
	for _, id := range sample {
		if seen[id] {
			t.Errorf("Duplicate room %d in %v", id, sample)
		}
		seen[id] = true
		if g.Distance(id) < 1 {
			t.Errorf("Room %d at distance %v should not qualify before threshold 1", id, g.Distance(id))
		}
	}
}

func TestSampleAtDistanceSkipsUnreachableRooms(t *testing.T) {
	g := chainGraph(4)
	addRoom(g, 90, 90) // isolated room 4

	sample := SampleAtDistance(g, 0, 4, 3, rand.New(rand.NewSource(5)))
	if len(sample) != 4 {
		t.Fatalf("Expected 4 rooms, got %v", sample)
	}
	for _, id := range sample {
		if id == 4 {
			t.Error("Unreachable room must never be sampled")
		}
	}
}

func TestSampleAtDistanceReturnsAllWhenCountCoversGraph(t *testing.T) {
	g := chainGraph(3)
	sample := SampleAtDistance(g, 0, 5, 1, rand.New(rand.NewSource(5)))
	if len(sample) != 3 {
		t.Errorf("Expected every room, got %v", sample)
	}
	if got := SampleAtDistance(g, 0, 0, 1, rand.New(rand.NewSource(5))); len(got) != 0 {
		t.Errorf("Expected empty sample for count 0, got %v", got)
	}
}

func TestPickEndRoom(t *testing.T) {
	g := chainGraph(6)
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 20; i++ {
		end := PickEndRoom(g, 0, 3, 4, false, rng)
		if d := g.Distance(end); d < 3 || d > 4 {
			t.Fatalf("End room %d at distance %v outside [3,4]", end, d)
		}
	}

	// Minimum above the largest distance is capped to it
	if end := PickEndRoom(g, 0, 50, 60, false, rng); end != 5 {
		t.Errorf("Expected farthest room 5, got %d", end)
	}
}

func TestPickEndRoomFallsBackToFarthestHullRoom(t *testing.T) {
	g := chainGraph(4)
	ConvexHull(g, HullStart(g)) // marks rooms 0 and 3

	end := PickEndRoom(g, 0, 1, 2, true, rand.New(rand.NewSource(9)))
	if end != 3 {
		t.Errorf("Expected fallback to hull room 3, got %d", end)
	}
}

func TestComponents(t *testing.T) {
	g := ringGraph()
	if got := g.Components(); got != 2 {
		t.Errorf("Components = %d, want 2", got)
	}
	if got := g.Reachable(0).Size(); got != 5 {
		t.Errorf("Reachable from 0 = %d rooms, want 5", got)
	}

	g.Connect(5, 2)
	if got := g.Components(); got != 1 {
		t.Errorf("Components = %d after linking, want 1", got)
	}

	g.Disconnect(5, 2)
	if g.Connected(2, 5) || g.Components() != 2 {
		t.Error("Disconnect did not split the graph again")
	}
}
