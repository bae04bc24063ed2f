package generation

import (
	"math"
	"math/rand"

	"dungeon-layout/components"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// RoomPair is a candidate extra connection
type RoomPair struct {
	A, B components.RoomID
}

// EdgeRooms holds the extremal rooms by center coordinate
type EdgeRooms struct {
	North components.RoomID // Smallest center y
	East  components.RoomID // Largest center x
	South components.RoomID // Largest center y
	West  components.RoomID // Smallest center x
}

// Evaluate labels every room with its unit-weight distance from origin and
// the neighbor it was reached through. Repeating the call for the origin of
// the current labeling does nothing.
func Evaluate(g *ConnectivityGraph, origin components.RoomID) {
	if g.evaluatedFrom(origin) {
		return
	}

	g.ResetEvaluation()
	l := g.labels
	l.Distance[origin] = 0

	work := queue.New[components.RoomID]()
	work.Enqueue(origin)

	for !work.Empty() {
		current := work.Dequeue()
		next := l.Distance[current] + 1

		for _, n := range g.rooms[current].Connections {
			// Only strictly shorter routes are taken, which keeps cycles finite
			if l.Distance[n] <= next {
				continue
			}
			l.Distance[n] = next
			l.Parent[n] = current
			if int(next) > l.MaxDistance {
				l.MaxDistance = int(next)
			}
			work.Enqueue(n)
		}
	}

	l.Origin = origin
}

// PathTo walks parent links from node back to the evaluated origin and
// returns the rooms from origin to node.
//
// Evaluate must have been called for the wanted origin first; PathTo never
// re-evaluates. It returns nil when there is no labeling or node is
// unreachable from the labeled origin.
func PathTo(g *ConnectivityGraph, node components.RoomID) []components.RoomID {
	l := g.labels
	if l == nil || int(node) >= len(l.Distance) || math.IsInf(l.Distance[node], 1) {
		return nil
	}

	path := make([]components.RoomID, 0, int(l.Distance[node])+1)
	for id := node; id != components.NoRoom; id = l.Parent[id] {
		path = append(path, id)
	}

	// Reverse so the origin comes first
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ShortestPathBetween evaluates from a and returns the rooms from a to b
func ShortestPathBetween(g *ConnectivityGraph, a, b components.RoomID) []components.RoomID {
	Evaluate(g, a)
	return PathTo(g, b)
}

// FindEdgeRooms returns the northmost, eastmost, southmost and westmost rooms.
// The first room found wins ties. An empty graph yields NoRoom everywhere.
func FindEdgeRooms(g *ConnectivityGraph) EdgeRooms {
	if g.Count() == 0 {
		return EdgeRooms{components.NoRoom, components.NoRoom, components.NoRoom, components.NoRoom}
	}

	first := g.rooms[0]
	north, east, south, west := first, first, first, first
	for _, r := range g.rooms {
		c := r.Center()
		if c.Y < north.Center().Y {
			north = r
		}
		if c.Y > south.Center().Y {
			south = r
		}
		if c.X < west.Center().X {
			west = r
		}
		if c.X > east.Center().X {
			east = r
		}
	}

	return EdgeRooms{North: north.ID, East: east.ID, South: south.ID, West: west.ID}
}

// HullStart returns the room whose center has the smallest x, using the
// smallest y to break ties. That room is always a hull vertex.
func HullStart(g *ConnectivityGraph) components.RoomID {
	if g.Count() == 0 {
		return components.NoRoom
	}

	best := g.rooms[0]
	for _, r := range g.rooms[1:] {
		c, b := r.Center(), best.Center()
		if c.X < b.X || (c.X == b.X && c.Y < b.Y) {
			best = r
		}
	}
	return best.ID
}

// cross returns the z component of (a-o) x (b-o)
func cross(o, a, b components.Point) int {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// distSq returns the squared distance between two points
func distSq(a, b components.Point) int {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

// ConvexHull gift-wraps the room centers starting at start, which must be a
// hull vertex (see HullStart). Visited rooms get their hull flag set and are
// returned in walk order. Of several collinear candidates the farthest one is
// taken, so rooms lying on a hull edge between two vertices are not part of
// the result.
func ConvexHull(g *ConnectivityGraph, start components.RoomID) []components.RoomID {
	g.clearHull()
	if g.Count() == 0 || start == components.NoRoom {
		return nil
	}

	var hull []components.RoomID
	current := start
	for {
		hull = append(hull, current)
		g.hull[current] = true

		p := g.rooms[current].Center()
		next := current
		for _, r := range g.rooms {
			c := r.Center()
			if c == p {
				continue
			}
			if next == current {
				next = r.ID
				continue
			}

			q := g.rooms[next].Center()
			turn := cross(p, q, c)
			if turn < 0 || (turn == 0 && distSq(p, c) > distSq(p, q)) {
				next = r.ID
			}
		}

		current = next
		if current == start || len(hull) > g.Count() {
			break
		}
		// Every other room shares the center of the current one
		if next == hull[len(hull)-1] {
			break
		}
	}

	return hull
}

// nodesClose reports whether the gap between two rooms, measured as center
// distance minus half the summed bounding diagonals, is under radius
func nodesClose(radius float64, a, b *components.Room) bool {
	centerDistance := a.Center().Distance(b.Center())
	space := (a.EffectiveSize().Magnitude() + b.EffectiveSize().Magnitude()) / 2
	return centerDistance-space < radius
}

// SynthesizeEdges proposes extra connections. Rooms with at most
// floor(1+3p) connections are paired with every nearby room other than their
// first connection, and each pair is kept with probability p. The graph is
// not modified.
func SynthesizeEdges(g *ConnectivityGraph, radius float64, p float64, rng *rand.Rand) []RoomPair {
	var pairs []RoomPair
	limit := int(math.Floor(1 + 3*p))

	for _, leaf := range g.rooms {
		if len(leaf.Connections) > limit {
			continue
		}

		for _, node := range g.rooms {
			if node == leaf {
				continue
			}
			if len(leaf.Connections) > 0 && leaf.Connections[0] == node.ID {
				continue
			}
			if !nodesClose(radius, leaf, node) {
				continue
			}
			if rng.Float64() >= p {
				continue
			}

			pairs = append(pairs, RoomPair{A: leaf.ID, B: node.ID})
		}
	}

	return pairs
}

// SampleAtDistance draws count distinct reachable rooms whose distance from
// origin is at least minDistance. The threshold is capped at the largest
// observed distance and lowered one step at a time until enough rooms
// qualify. Fewer rooms are returned only when fewer are reachable; when count
// covers the whole graph every room is returned.
func SampleAtDistance(g *ConnectivityGraph, origin components.RoomID, count, minDistance int, rng *rand.Rand) []components.RoomID {
	if count <= 0 {
		return nil
	}
	if count >= g.Count() {
		all := make([]components.RoomID, g.Count())
		for i := range all {
			all[i] = components.RoomID(i)
		}
		return all
	}

	Evaluate(g, origin)
	l := g.labels
	threshold := min(minDistance, l.MaxDistance)

	// Collect candidates in discovery order so draws are reproducible
	chosen := mapset.New[components.RoomID]()
	var candidates []components.RoomID
	for len(candidates) < count && threshold >= 0 {
		for _, r := range g.rooms {
			d := l.Distance[r.ID]
			if math.IsInf(d, 1) || d < float64(threshold) || chosen.Has(r.ID) {
				continue
			}
			chosen.Put(r.ID)
			candidates = append(candidates, r.ID)
		}
		threshold--
	}

	count = min(count, len(candidates))

	// Partial Fisher-Yates: the first count slots end up a uniform sample
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:count]
}

// PickEndRoom evaluates from origin and picks a random room whose distance
// lies in [min(minDistance, largest distance), maxDistance]. With onHull only
// hull rooms qualify, so ConvexHull must have run. When nothing qualifies the
// farthest reachable room is returned, preferring hull rooms if onHull is set.
func PickEndRoom(g *ConnectivityGraph, origin components.RoomID, minDistance, maxDistance int, onHull bool, rng *rand.Rand) components.RoomID {
	Evaluate(g, origin)
	l := g.labels
	low := float64(min(minDistance, l.MaxDistance))

	var candidates []components.RoomID
	for _, r := range g.rooms {
		if onHull && !g.hull[r.ID] {
			continue
		}
		if d := l.Distance[r.ID]; d >= low && d <= float64(maxDistance) {
			candidates = append(candidates, r.ID)
		}
	}

	if len(candidates) == 0 {
		if end := farthest(g, onHull); end != components.NoRoom {
			return end
		}
		return farthest(g, false)
	}
	return candidates[rng.Intn(len(candidates))]
}

// farthest returns the reachable room with the largest distance label
func farthest(g *ConnectivityGraph, onHull bool) components.RoomID {
	best := components.NoRoom
	bestDistance := -1.0
	for _, r := range g.rooms {
		if onHull && !g.hull[r.ID] {
			continue
		}
		if d := g.labels.Distance[r.ID]; !math.IsInf(d, 1) && d > bestDistance {
			best, bestDistance = r.ID, d
		}
	}
	return best
}
