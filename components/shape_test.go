package components

import (
	"testing"

	"github.com/pkg/errors"
)

// L shaped mask, 3 wide and 2 tall:
//
//	#..
//	###
var lMask = []string{
	"#..",
	"###",
}

func TestParseMask(t *testing.T) {
	m, err := ParseMask(lMask)
	if err != nil {
		t.Fatalf("ParseMask failed: %v", err)
	}
	if m.Width != 3 || m.Height != 2 {
		t.Errorf("Expected 3x2 mask, got %dx%d", m.Width, m.Height)
	}
	if m.SolidCount() != 4 {
		t.Errorf("Expected 4 solid cells, got %d", m.SolidCount())
	}
	if !m.At(0, 0) || m.At(1, 0) || !m.At(2, 1) {
		t.Error("Mask cells parsed incorrectly")
	}
}

func TestParseMaskErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"ragged", []string{"##", "#"}},
		{"bad rune", []string{"#?"}},
		{"no solid", []string{"..", ".."}},
	}
	for _, tt := range tests {
		if _, err := ParseMask(tt.rows); !errors.Is(err, ErrInvalidMask) {
			t.Errorf("%s: expected ErrInvalidMask, got %v", tt.name, err)
		}
	}
}

func TestStencilRotationSwapsEffectiveSize(t *testing.T) {
	m, _ := ParseMask(lMask)

	tests := []struct {
		rotation Rotation
		want     Point
	}{
		{Rotate0, Point{3, 2}},
		{Rotate90, Point{2, 3}},
		{Rotate180, Point{3, 2}},
		{Rotate270, Point{2, 3}},
	}
	for _, tt := range tests {
		r := NewStencilRoom(m, tt.rotation)
		if got := r.EffectiveSize(); got != tt.want {
			t.Errorf("rotation %d: EffectiveSize = %v, want %v", tt.rotation, got, tt.want)
		}
		if !r.IsStencil() {
			t.Error("Expected stencil room")
		}
	}
}

func TestStencilIsSolidFollowsRotation(t *testing.T) {
	m, _ := ParseMask(lMask)

	// Expected solid layouts for each clockwise rotation, rows top to bottom
	tests := []struct {
		rotation Rotation
		rows     []string
	}{
		{Rotate0, []string{
			"#..",
			"###",
		}},
		{Rotate90, []string{
			"##",
			"#.",
			"#.",
		}},
		{Rotate180, []string{
			"###",
			"..#",
		}},
		{Rotate270, []string{
			".#",
			".#",
			"##",
		}},
	}

	for _, tt := range tests {
		r := NewStencilRoom(m, tt.rotation)
		size := r.EffectiveSize()
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				want := tt.rows[y][x] == '#'
				if got := r.IsSolid(x, y); got != want {
					t.Errorf("rotation %d: IsSolid(%d,%d) = %v, want %v", tt.rotation, x, y, got, want)
				}
			}
		}
	}
}

func TestRotationPreservesSolidCount(t *testing.T) {
	m, _ := ParseMask([]string{
		"##.#",
		".#..",
		"####",
	})

	for _, rot := range Rotations {
		r := NewStencilRoom(m, rot)
		size := r.EffectiveSize()
		count := 0
		for x := 0; x < size.X; x++ {
			for y := 0; y < size.Y; y++ {
				if r.IsSolid(x, y) {
					count++
				}
			}
		}
		if count != m.SolidCount() {
			t.Errorf("rotation %d: %d solid cells, want %d", rot, count, m.SolidCount())
		}
	}
}
