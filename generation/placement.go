package generation

import (
	"dungeon-layout/components"
	"dungeon-layout/events"

	"github.com/zyedidia/generic/mapset"
)

// randRange returns a random int in [lo, hi), or lo when the range is empty
func (g *Generator) randRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo)
}

// targetReached reports whether the room count has been met
func (g *Generator) targetReached() bool {
	return g.graph.Count() >= g.cfg.RoomCount
}

// newRoom creates an unplaced room, either a stencil from the table or a
// rectangle with random dimensions
func (g *Generator) newRoom() *components.Room {
	if room := g.stencils.Pick(g.rng); room != nil {
		return room
	}

	width := g.randRange(g.cfg.RoomWidth.Min, g.cfg.RoomWidth.Max)
	height := g.randRange(g.cfg.RoomHeight.Min, g.cfg.RoomHeight.Max)
	return components.NewRoom(components.Point{X: width, Y: height})
}

// placeSeedRoom puts a rectangular room in the middle of the grid
func (g *Generator) placeSeedRoom() {
	n := g.cfg.GridSize

	// Keep the seed room inside the shape band
	width := g.randRange(g.cfg.RoomWidth.Min, min(g.cfg.RoomWidth.Max, g.bandRight-n/2))
	height := g.randRange(g.cfg.RoomHeight.Min, g.cfg.RoomHeight.Max)

	room := components.NewRoom(components.Point{X: width, Y: height})
	room.SetPosition(components.Point{X: n/2 - width/2, Y: n/2 - height/2})
	g.commitRoom(room, nil)
}

// drain grows queued rooms until the queue empties or the target is met
func (g *Generator) drain() {
	for g.work.Len() > 0 {
		if g.targetReached() {
			g.work.Reset()
			return
		}
		g.growFrom(g.work.Pop(g.rng))
	}
}

// improve revisits every placed room, including rooms added during the pass,
// and grows it again
func (g *Generator) improve() {
	passes := g.cfg.CompressFactor * 10
	for pass := 0; float64(pass) < passes; pass++ {
		for i := 0; i < g.graph.Count(); i++ {
			if g.targetReached() {
				return
			}
			g.work.Push(g.graph.Room(components.RoomID(i)))
			g.drain()
		}
	}
}

// growFrom tries to attach one child room per direction
func (g *Generator) growFrom(parent *components.Room) {
	attempts := 1 + g.cfg.CompressFactor*20
	for dir := 0; dir < 4; dir++ {
		if g.targetReached() {
			return
		}
		for attempt := 0; float64(attempt) < attempts; attempt++ {
			if g.tryGrow(parent, dir) {
				break
			}
		}
	}
}

// tryGrow makes one attempt at placing a child of parent. Direction 0 and 1
// are +x and -x, 2 and 3 are +y and -y.
func (g *Generator) tryGrow(parent *components.Room, dir int) bool {
	axis := components.Axis((dir >> 1) & 1)
	positive := dir&1 == 0
	pw := g.cfg.PathWidth

	child := g.newRoom()
	parentSize, childSize := parent.EffectiveSize(), child.EffectiveSize()
	gap := g.randRange(g.cfg.RoomDistance.Min, g.cfg.RoomDistance.Max)

	// Along the axis the child sits gap cells past the parent's face
	along := axis.Along(parent.Position) + axis.Along(parentSize) + gap
	if !positive {
		along = axis.Along(parent.Position) - gap - axis.Along(childSize)
	}

	// Across the axis the faces keep at least a path width in common
	side := g.randRange(-axis.Across(childSize)+pw, axis.Across(parentSize)-pw)
	across := axis.Across(parent.Position) + side

	child.SetPosition(axis.Compose(along, across))
	if !g.roomFits(child, parent) {
		return false
	}

	var corridor *components.Corridor
	if gap > 0 || parent.IsStencil() || child.IsStencil() {
		low, high := parent, child
		if !positive {
			low, high = child, parent
		}

		c, ok := g.buildCorridor(axis, low, high)
		if !ok {
			return false
		}
		corridor = c
	}

	g.commitRoom(child, parent)
	if corridor != nil {
		g.commitCorridor(corridor, parent, child)
	}
	return true
}

// roomFits checks band and border limits, then requires the room's bounding
// box plus a one cell margin to be free of rooms and corridors. Margin cells
// inside the parent's bounding box are ignored so a child may touch its
// parent when the gap is zero.
func (g *Generator) roomFits(room, parent *components.Room) bool {
	n := g.cfg.GridSize
	b := room.Bounds()

	if b.Position.X < g.bandLeft+1 || b.Position.X+b.Size.X > g.bandRight {
		return false
	}
	if b.Position.Y < 1 || b.Position.Y+b.Size.Y > n-1 {
		return false
	}

	margin := b.Inflate(1)
	for x := margin.Position.X; x < margin.Position.X+margin.Size.X; x++ {
		for y := margin.Position.Y; y < margin.Position.Y+margin.Size.Y; y++ {
			if x < g.bandLeft || x >= g.bandRight || y < 0 || y >= n {
				continue
			}

			p := components.Point{X: x, Y: y}
			if parent != nil && !b.Contains(p) && parent.Bounds().Contains(p) {
				continue
			}
			if g.reserved.Get(x, y) || g.corridorGrid.Get(x, y) {
				return false
			}
		}
	}
	return true
}

// buildCorridor lays a corridor between the far face of low and the near
// face of high along axis, on a random lane shared by both rooms. Stencil
// ends are extended into the mask until the lane meets a solid cell.
//
// It returns ok=false when no valid corridor exists, and a nil corridor with
// ok=true when the rooms already touch.
func (g *Generator) buildCorridor(axis components.Axis, low, high *components.Room) (*components.Corridor, bool) {
	pw := g.cfg.PathWidth
	lowB, highB := low.Bounds(), high.Bounds()

	// Lanes both faces can hold
	laneMin := max(axis.Across(lowB.Position), axis.Across(highB.Position))
	laneMax := min(
		axis.Across(lowB.Position)+axis.Across(lowB.Size),
		axis.Across(highB.Position)+axis.Across(highB.Size),
	) - pw
	if laneMax < laneMin {
		return nil, false
	}
	lane := g.randRange(laneMin, laneMax+1)

	start := axis.Along(lowB.Position) + axis.Along(lowB.Size)
	end := axis.Along(highB.Position)
	if end < start || !g.corridorFits(axis, start, end, lane) {
		return nil, false
	}

	// Carve into stencil rooms
	lowDepth, highDepth := 0, 0
	if low.IsStencil() {
		if lowDepth = carveDepth(axis, low, lane, pw, false); lowDepth < 0 {
			return nil, false
		}
	}
	if high.IsStencil() {
		if highDepth = carveDepth(axis, high, lane, pw, true); highDepth < 0 {
			return nil, false
		}
	}

	from, to := start-lowDepth, end+highDepth
	if to == from {
		return nil, true
	}

	// The carved ends lie inside room bounding boxes, so only corridors count
	if !g.carveFits(axis, from, start, lane) || !g.carveFits(axis, end, to, lane) {
		return nil, false
	}

	c := components.NewCorridor(axis, from, to-from, lane, pw)
	c.Anchor = axis.Compose(start, lane)
	return c, true
}

// carveDepth counts the rows of a stencil room, walked from the face the
// corridor arrives at, that hold no solid cell on the lane. It returns -1
// when the lane never meets the mask.
func carveDepth(axis components.Axis, room *components.Room, lane, width int, fromNearFace bool) int {
	b := room.Bounds()
	first := axis.Along(b.Position)
	length := axis.Along(b.Size)

	for depth := 0; depth < length; depth++ {
		along := first + length - 1 - depth
		if fromNearFace {
			along = first + depth
		}
		for a := lane; a < lane+width; a++ {
			if room.IsSolidAt(axis.Compose(along, a)) {
				return depth
			}
		}
	}
	return -1
}

// corridorFits walks the corridor footprint plus one cell on each side
// across the axis. Touching a room fails; touching a corridor fails unless
// crossing is allowed for that cell.
func (g *Generator) corridorFits(axis components.Axis, start, end, lane int) bool {
	n := g.cfg.GridSize
	pw := g.cfg.PathWidth

	for along := start; along < end; along++ {
		for j := -1; j <= pw; j++ {
			p := axis.Compose(along, lane+j)
			if p.X < g.bandLeft || p.X >= g.bandRight || p.Y < 0 || p.Y >= n {
				continue
			}
			if g.reserved.Get(p.X, p.Y) {
				return false
			}
			if g.corridorGrid.Get(p.X, p.Y) && !g.crossingAllowed() {
				return false
			}
		}
	}
	return true
}

// carveFits walks the part of a corridor carved into a stencil room, plus one
// cell on each side across the axis. Touching a corridor fails unless crossing
// is allowed for that cell.
func (g *Generator) carveFits(axis components.Axis, start, end, lane int) bool {
	n := g.cfg.GridSize
	pw := g.cfg.PathWidth

	for along := start; along < end; along++ {
		for j := -1; j <= pw; j++ {
			p := axis.Compose(along, lane+j)
			if p.X < 0 || p.X >= n || p.Y < 0 || p.Y >= n {
				continue
			}
			if g.corridorGrid.Get(p.X, p.Y) && !g.crossingAllowed() {
				return false
			}
		}
	}
	return true
}

// crossingAllowed rolls whether a corridor may touch an existing one
func (g *Generator) crossingAllowed() bool {
	if g.cfg.DisableCrossing {
		return false
	}
	return g.rng.Float64() < g.cfg.ConnectionDegree
}

// commitRoom registers a room, writes it to the grids, links it to its parent
// and queues it for growth
func (g *Generator) commitRoom(room, parent *components.Room) {
	g.graph.AddRoom(room)

	b := room.Bounds()
	for x := b.Position.X; x < b.Position.X+b.Size.X; x++ {
		for y := b.Position.Y; y < b.Position.Y+b.Size.Y; y++ {
			g.reserved.Set(x, y, true)
			if room.IsSolid(x-b.Position.X, y-b.Position.Y) {
				g.roomGrid.Set(x, y, true)
			}
		}
	}

	parentID := components.NoRoom
	if parent != nil {
		parent.AddConnection(room)
		parentID = parent.ID
	}
	g.work.Push(room)

	g.events.Emit(events.RoomPlaced{Room: room.ID, Parent: parentID, Bounds: b})
}

// commitCorridor records a corridor between rooms and writes it to the
// corridors layer, merging with any corridor it lands on
func (g *Generator) commitCorridor(c *components.Corridor, rooms ...*components.Room) {
	c.ID = len(g.corridors)
	for _, r := range rooms {
		c.AddEndpoints(r.ID)
	}

	crossed := mapset.New[int]()
	c.Cells(func(p components.Point) {
		if g.corridorGrid.Get(p.X, p.Y) {
			if other := g.corridorAt(p); other != nil && !crossed.Has(other.ID) {
				crossed.Put(other.ID)
				g.mergeCrossing(c, other)
			}
		}
		g.corridorGrid.Set(p.X, p.Y, true)
	})

	g.corridors = append(g.corridors, c)
	g.events.Emit(events.CorridorPlaced{
		Corridor:  c.ID,
		Bounds:    c.Bounds(),
		Endpoints: append([]components.RoomID(nil), c.Endpoints...),
	})
}

// corridorAt returns the first placed corridor covering p
func (g *Generator) corridorAt(p components.Point) *components.Corridor {
	for _, c := range g.corridors {
		if c.Contains(p) {
			return c
		}
	}
	return nil
}

// mergeCrossing links nearby endpoint rooms of two crossing corridors and
// unions their endpoint sets
func (g *Generator) mergeCrossing(c, other *components.Corridor) {
	limit := g.cfg.CrossingLinkDistance()
	for _, a := range other.Endpoints {
		for _, b := range c.Endpoints {
			ra, rb := g.graph.Room(a), g.graph.Room(b)
			if ra.Center().Distance(rb.Center()) > limit {
				continue
			}
			ra.AddConnection(rb)
		}
	}

	otherEnds := append([]components.RoomID(nil), other.Endpoints...)
	other.AddEndpoints(c.Endpoints...)
	c.AddEndpoints(otherEnds...)

	g.events.Emit(events.CorridorsCrossed{Corridor: c.ID, Crossed: other.ID})
}

// connectExtra proposes extra edges and keeps those a corridor can serve
func (g *Generator) connectExtra() {
	pairs := SynthesizeEdges(g.graph, float64(g.cfg.RoomDistance.Max), g.cfg.ConnectionDegree, g.rng)

	added := 0
	for _, pair := range pairs {
		if g.tryConnect(g.graph.Room(pair.A), g.graph.Room(pair.B)) {
			added++
		}
	}
	g.logger.Printf("Added %d of %d proposed connections", added, len(pairs))
}

// tryConnect links two rooms with a straight corridor. The edge is added
// tentatively and rolled back when no corridor of allowed length fits.
func (g *Generator) tryConnect(a, b *components.Room) bool {
	if a.ConnectedTo(b.ID) {
		return false
	}

	a.AddConnection(b)
	c := g.connectingCorridor(a, b)
	if c == nil {
		a.RemoveConnection(b)
		return false
	}

	g.commitCorridor(c, a, b)
	return true
}

// connectingCorridor builds a corridor along y when the rooms overlap by a
// path width in x, otherwise along x when they overlap in y
func (g *Generator) connectingCorridor(a, b *components.Room) *components.Corridor {
	pw := g.cfg.PathWidth

	for _, axis := range []components.Axis{components.AxisY, components.AxisX} {
		ab, bb := a.Bounds(), b.Bounds()
		overlap := min(axis.Across(ab.Position)+axis.Across(ab.Size), axis.Across(bb.Position)+axis.Across(bb.Size)) -
			max(axis.Across(ab.Position), axis.Across(bb.Position))
		if overlap < pw {
			continue
		}

		low, high := a, b
		if axis.Along(bb.Position) < axis.Along(ab.Position) {
			low, high = b, a
		}

		c, ok := g.buildCorridor(axis, low, high)
		if !ok || c == nil {
			return nil
		}
		if c.Length() < g.cfg.PathLength.Min || c.Length() > g.cfg.PathLength.Max {
			return nil
		}
		return c
	}
	return nil
}
