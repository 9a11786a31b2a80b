package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/pipeflow/internal/geom"
)

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("Set(0,0) did not light a dot")
	}

	// out of range must be ignored, not panic
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(1000, 0)
	c.Set(0, 1000)

	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("Clear left lit dots")
			}
		}
	}
}

func TestCanvas_String(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("expected 3 runes per line, got %d", len([]rune(line)))
		}
	}
}

func TestCanvas_Scatter(t *testing.T) {
	bounds := geom.Box{Min: geom.Vec3{}, Max: geom.Vec3{X: 1, Y: 1, Z: 1}}
	c := NewCanvas(10, 5)

	positions := []geom.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0.5, Y: 0.5, Z: 0.5},
		{X: 0.999, Y: 0.999, Z: 0.999},
	}
	c.Scatter(positions, bounds, PlaneXY)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("scatter lit no cells")
	}

	// corner (0,0) maps to bottom-left
	if c.Grid[4][0] == 0x2800 {
		t.Error("origin particle not plotted at bottom-left")
	}
}
