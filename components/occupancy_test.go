package components

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestNewOccupancyGridRejectsZeroSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		grid, err := NewOccupancyGrid(size)
		if err == nil {
			t.Errorf("Expected error for size %d", size)
		}
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Expected ErrInvalidSize for size %d, got %v", size, err)
		}
		if grid != nil {
			t.Errorf("Expected nil grid for size %d", size)
		}
	}
}

func TestOccupancyGridStartsEmpty(t *testing.T) {
	grid, err := NewOccupancyGrid(13)
	if err != nil {
		t.Fatalf("NewOccupancyGrid failed: %v", err)
	}

	for col := 0; col < grid.Size; col++ {
		for row := 0; row < grid.Size; row++ {
			if grid.Get(col, row) {
				t.Fatalf("Expected cell (%d,%d) to be empty", col, row)
			}
		}
	}
	if grid.Count() != 0 {
		t.Errorf("Expected count 0, got %d", grid.Count())
	}
}

func TestOccupancyGridSetThenGet(t *testing.T) {
	grid, _ := NewOccupancyGrid(17)

	// Walk every cell so word boundaries are crossed
	for col := 0; col < grid.Size; col++ {
		for row := 0; row < grid.Size; row++ {
			value := (col*31+row*7)%3 == 0
			grid.Set(col, row, value)
			if got := grid.Get(col, row); got != value {
				t.Fatalf("Set(%d,%d,%v) then Get returned %v", col, row, value, got)
			}
		}
	}

	// Clearing a set cell
	grid.Set(4, 5, true)
	grid.Set(4, 5, false)
	if grid.Get(4, 5) {
		t.Error("Expected cell (4,5) to be cleared")
	}
}

func TestOccupancyGridSetDoesNotTouchNeighbours(t *testing.T) {
	grid, _ := NewOccupancyGrid(9)
	grid.Set(3, 3, true)

	if grid.Count() != 1 {
		t.Errorf("Expected exactly one set cell, got %d", grid.Count())
	}
	if grid.Get(3, 2) || grid.Get(2, 3) || grid.Get(3, 4) || grid.Get(4, 3) {
		t.Error("Expected neighbours of (3,3) to stay empty")
	}
}

func TestMergeIsCellwiseOr(t *testing.T) {
	a, _ := NewOccupancyGrid(10)
	b, _ := NewOccupancyGrid(10)

	a.FillRect(Rect{Position: Point{1, 1}, Size: Point{3, 3}}, true)
	b.FillRect(Rect{Position: Point{2, 2}, Size: Point{4, 2}}, true)

	merged, err := Merge(a, b)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	for col := 0; col < 10; col++ {
		for row := 0; row < 10; row++ {
			want := a.Get(col, row) || b.Get(col, row)
			if merged.Get(col, row) != want {
				t.Errorf("Merged cell (%d,%d) = %v, want %v", col, row, merged.Get(col, row), want)
			}
		}
	}

	// Inputs are left untouched
	if a.Count() != 9 || b.Count() != 8 {
		t.Errorf("Expected inputs unchanged, got counts %d and %d", a.Count(), b.Count())
	}
}

func TestMergeRejectsMismatchedSizes(t *testing.T) {
	a, _ := NewOccupancyGrid(8)
	b, _ := NewOccupancyGrid(9)

	if _, err := Merge(a, b); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Expected ErrSizeMismatch, got %v", err)
	}
}

func TestInBounds(t *testing.T) {
	grid, _ := NewOccupancyGrid(5)

	tests := []struct {
		col, row int
		want     bool
	}{
		{0, 0, true},
		{4, 4, true},
		{5, 0, false},
		{0, 5, false},
		{-1, 2, false},
		{2, -1, false},
	}
	for _, tt := range tests {
		if got := grid.InBounds(tt.col, tt.row); got != tt.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestOccupancyGridString(t *testing.T) {
	grid, _ := NewOccupancyGrid(2)
	grid.Set(0, 1, true)

	want := "0 1 \n0 0 \n"
	if got := grid.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if strings.Count(grid.String(), "\n") != 2 {
		t.Error("Expected one line per column")
	}
}
