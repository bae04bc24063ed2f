package components

import "testing"

func TestCameraClamp(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int
		grid         int
		wantX, wantY int
	}{
		{"inside", 10, 5, 100, 10, 5},
		{"negative", -4, -9, 100, 0, 0},
		{"past the edge", 90, 95, 100, 60, 70},
		{"grid smaller than view", 3, 3, 20, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(40, 30)
			c.X, c.Y = tt.x, tt.y
			c.Clamp(tt.grid)
			if c.X != tt.wantX || c.Y != tt.wantY {
				t.Errorf("Clamp gave (%d,%d), want (%d,%d)", c.X, c.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCameraConversions(t *testing.T) {
	c := NewCamera(20, 10)
	c.CenterOn(Point{X: 50, Y: 40})
	if c.X != 40 || c.Y != 35 {
		t.Fatalf("CenterOn gave (%d,%d)", c.X, c.Y)
	}

	sx, sy := c.WorldToScreen(45, 36)
	if sx != 5 || sy != 1 {
		t.Errorf("WorldToScreen = (%d,%d), want (5,1)", sx, sy)
	}
	wx, wy := c.ScreenToWorld(sx, sy)
	if wx != 45 || wy != 36 {
		t.Errorf("ScreenToWorld = (%d,%d), want (45,36)", wx, wy)
	}

	if !c.IsVisible(40, 35) || !c.IsVisible(59, 44) {
		t.Error("Corners of the view must be visible")
	}
	if c.IsVisible(60, 40) || c.IsVisible(45, 34) {
		t.Error("Cells past the view must not be visible")
	}

	c.Move(-5, 2)
	if c.X != 35 || c.Y != 37 {
		t.Errorf("Move gave (%d,%d)", c.X, c.Y)
	}
}
