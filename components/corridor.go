package components

// Corridor is a fixed-width rectangular passage joining two or more rooms.
// Its along-axis extent is the corridor length; the across extent is the
// path width.
type Corridor struct {
	ID        int
	Axis      Axis
	Position  Point // Top-left corner
	Size      Point
	Anchor    Point    // Connection point before the footprint was normalized and carved
	Endpoints []RoomID // Rooms reachable through this corridor, grows on crossings
}

// NewCorridor creates a corridor covering [start, start+length) along axis
// and [laneStart, laneStart+width) across it
func NewCorridor(axis Axis, start, length, laneStart, width int) *Corridor {
	return &Corridor{
		ID:       -1,
		Axis:     axis,
		Position: axis.Compose(start, laneStart),
		Size:     axis.Compose(length, width),
	}
}

// Length returns the along-axis extent
func (c *Corridor) Length() int {
	return c.Axis.Along(c.Size)
}

// Width returns the across-axis extent
func (c *Corridor) Width() int {
	return c.Axis.Across(c.Size)
}

// Bounds returns the corridor footprint
func (c *Corridor) Bounds() Rect {
	return Rect{Position: c.Position, Size: c.Size}
}

// Contains reports whether p lies on the corridor footprint
func (c *Corridor) Contains(p Point) bool {
	return c.Bounds().Contains(p)
}

// Cells calls fn for every cell of the footprint
func (c *Corridor) Cells(fn func(p Point)) {
	for x := c.Position.X; x < c.Position.X+c.Size.X; x++ {
		for y := c.Position.Y; y < c.Position.Y+c.Size.Y; y++ {
			fn(Point{x, y})
		}
	}
}

// HasEndpoint reports whether id is one of the corridor's rooms
func (c *Corridor) HasEndpoint(id RoomID) bool {
	for _, e := range c.Endpoints {
		if e == id {
			return true
		}
	}
	return false
}

// AddEndpoints appends rooms that are not yet endpoints
func (c *Corridor) AddEndpoints(ids ...RoomID) {
	for _, id := range ids {
		if !c.HasEndpoint(id) {
			c.Endpoints = append(c.Endpoints, id)
		}
	}
}
