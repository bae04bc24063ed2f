package components

// Camera is a window of ViewW by ViewH cells onto a square grid. X and Y are
// the grid cell shown in the top left corner.
type Camera struct {
	X, Y         int
	ViewW, ViewH int
}

// NewCamera creates a camera at the grid origin
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewW: viewW, ViewH: viewH}
}

// Move shifts the camera by a cell delta
func (c *Camera) Move(dx, dy int) {
	c.X += dx
	c.Y += dy
}

// CenterOn places p in the middle of the view
func (c *Camera) CenterOn(p Point) {
	c.X = p.X - c.ViewW/2
	c.Y = p.Y - c.ViewH/2
}

// Clamp keeps the view on a grid of the given size. Grids smaller than the
// view pin the camera to the origin.
func (c *Camera) Clamp(gridSize int) {
	c.X = min(max(c.X, 0), max(gridSize-c.ViewW, 0))
	c.Y = min(max(c.Y, 0), max(gridSize-c.ViewH, 0))
}

// WorldToScreen converts grid coordinates to view coordinates
func (c *Camera) WorldToScreen(worldX, worldY int) (screenX, screenY int) {
	return worldX - c.X, worldY - c.Y
}

// ScreenToWorld converts view coordinates to grid coordinates
func (c *Camera) ScreenToWorld(screenX, screenY int) (worldX, worldY int) {
	return screenX + c.X, screenY + c.Y
}

// IsVisible checks if a grid cell is inside the view
func (c *Camera) IsVisible(worldX, worldY int) bool {
	return worldX >= c.X &&
		worldX < c.X+c.ViewW &&
		worldY >= c.Y &&
		worldY < c.Y+c.ViewH
}
