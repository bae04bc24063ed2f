package components

// RoomID indexes a room inside its connectivity graph
type RoomID int

// NoRoom marks an unset room reference
const NoRoom RoomID = -1

// Room is a placed rectangular or stencil-masked region.
//
// Connections hold the ids of directly connected rooms in the order the
// links were made. They are non-owning references into the graph's room
// arena, so a room must be registered (have an ID) before it is connected.
type Room struct {
	ID          RoomID
	Size        Point // Unrotated size
	Position    Point // Top-left corner
	Shape       Shape
	Connections []RoomID

	positioned bool
}

// NewRoom creates an unplaced rectangular room of the given size
func NewRoom(size Point) *Room {
	return &Room{
		ID:    NoRoom,
		Size:  size,
		Shape: RectangleShape(),
	}
}

// NewStencilRoom creates an unplaced room whose solid cells follow mask
// turned by rotation. The room size is the mask size.
func NewStencilRoom(mask *Mask, rotation Rotation) *Room {
	return &Room{
		ID:    NoRoom,
		Size:  Point{mask.Width, mask.Height},
		Shape: StencilShape(mask, rotation),
	}
}

// SetPosition places the room. A room is positioned exactly once; a second
// call is a programming error and panics.
func (r *Room) SetPosition(topLeft Point) {
	if r.positioned {
		panic("room position already set")
	}
	r.Position = topLeft
	r.positioned = true
}

// Positioned reports whether SetPosition has been called
func (r *Room) Positioned() bool {
	return r.positioned
}

// IsStencil reports whether the room uses a mask shape
func (r *Room) IsStencil() bool {
	return r.Shape.Kind == ShapeStencil
}

// EffectiveSize returns the size after rotation
func (r *Room) EffectiveSize() Point {
	if r.IsStencil() && r.Shape.Rotation.SwapsAxes() {
		return r.Size.Swap()
	}
	return r.Size
}

// Bounds returns the bounding box of the room
func (r *Room) Bounds() Rect {
	return Rect{Position: r.Position, Size: r.EffectiveSize()}
}

// TopRight returns the top-right cell of the bounding box
func (r *Room) TopRight() Point {
	return r.Position.Add(Point{r.EffectiveSize().X - 1, 0})
}

// BottomRight returns the bottom-right cell of the bounding box
func (r *Room) BottomRight() Point {
	return r.Position.Add(r.EffectiveSize()).Sub(Point{1, 1})
}

// BottomLeft returns the bottom-left cell of the bounding box
func (r *Room) BottomLeft() Point {
	return r.Position.Add(Point{0, r.EffectiveSize().Y - 1})
}

// Center returns the integer center of the bounding box
func (r *Room) Center() Point {
	return r.Position.Add(r.EffectiveSize().Div(2))
}

// IsSolid tests a cell in local coordinates of the bounding box
func (r *Room) IsSolid(localX, localY int) bool {
	size := r.EffectiveSize()
	if localX < 0 || localX >= size.X || localY < 0 || localY >= size.Y {
		return false
	}
	return r.Shape.IsSolid(localX, localY)
}

// IsSolidAt tests a cell in grid coordinates
func (r *Room) IsSolidAt(p Point) bool {
	return r.IsSolid(p.X-r.Position.X, p.Y-r.Position.Y)
}

// ConnectedTo reports whether id is in the connection list
func (r *Room) ConnectedTo(id RoomID) bool {
	for _, c := range r.Connections {
		if c == id {
			return true
		}
	}
	return false
}

// AddConnection links r and other in both directions. Linking a room to
// itself or to an already connected room does nothing. Both rooms must be
// registered; connecting an unregistered room is a programming error and
// panics.
func (r *Room) AddConnection(other *Room) {
	if r.ID == NoRoom || other.ID == NoRoom {
		panic("connecting an unregistered room")
	}
	if other == r || r.ConnectedTo(other.ID) {
		return
	}
	r.Connections = append(r.Connections, other.ID)
	if !other.ConnectedTo(r.ID) {
		other.Connections = append(other.Connections, r.ID)
	}
}

// RemoveConnection unlinks r and other in both directions
func (r *Room) RemoveConnection(other *Room) {
	r.Connections = removeID(r.Connections, other.ID)
	other.Connections = removeID(other.Connections, r.ID)
}

func removeID(ids []RoomID, id RoomID) []RoomID {
	for i, c := range ids {
		if c == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
