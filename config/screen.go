package config

// Viewer window layout
const (
	// Pixels per grid cell
	CellSize = 6

	// Window dimensions in cells
	ScreenWidth  = 160
	ScreenHeight = 128

	// Rows at the bottom reserved for the status text
	StatusHeight = 10

	// Grid area in cells
	ViewWidth  = ScreenWidth
	ViewHeight = ScreenHeight - StatusHeight

	// Window dimensions in pixels (derived from cell dimensions)
	WindowWidth  = ScreenWidth * CellSize
	WindowHeight = ScreenHeight * CellSize
)

// GetScreenDimensions returns the screen dimensions in pixels
func GetScreenDimensions() (width, height int) {
	return WindowWidth, WindowHeight
}
