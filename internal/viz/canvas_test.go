package viz

import (
	"strings"
	"testing"
)

func TestNewCanvasEmpty(t *testing.T) {
	c := NewCanvas(10, 5)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("expected empty braille char, got %q", r)
			}
		}
	}
}

func TestSetAndClear(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2800|0x1 {
		t.Errorf("grid[0][0] = %x", c.Grid[0][0])
	}

	c.Set(1, 3)
	if c.Grid[0][0]&0x80 == 0 {
		t.Errorf("bottom-right dot of first cell not set: %x", c.Grid[0][0])
	}

	// Out of bounds must be a no-op.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("clear left %x", c.Grid[0][0])
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)

	if c.Grid[0][0] == 0x2800 {
		t.Error("start cell empty")
	}
	if c.Grid[9][9] == 0x2800 {
		t.Error("end cell empty")
	}
}

func TestDrawRect(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawRect(0, 0, 19, 39)

	corners := [][2]int{{0, 0}, {0, 9}, {9, 0}, {9, 9}}
	for _, corner := range corners {
		if c.Grid[corner[0]][corner[1]] == 0x2800 {
			t.Errorf("corner cell (%d,%d) empty", corner[0], corner[1])
		}
	}
	// Interior stays empty.
	if c.Grid[5][5] != 0x2800 {
		t.Errorf("interior cell set: %x", c.Grid[5][5])
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillCircle(10, 20, 4)

	if c.Grid[5][5] == 0x2800 {
		t.Error("center cell empty")
	}

	// Tiny radius still marks the center dot.
	c.Clear()
	c.FillCircle(2, 2, 0)
	if c.Grid[0][1] == 0x2800 {
		t.Error("zero-radius circle set nothing")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("line width = %d", len([]rune(line)))
		}
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 1, 2, 3}, 4)
	if len([]rune(out)) != 4 {
		t.Errorf("width = %d", len([]rune(out)))
	}

	runes := []rune(out)
	if runes[0] != '▁' {
		t.Errorf("lowest value rendered as %q", runes[0])
	}
	if runes[3] != '█' {
		t.Errorf("highest value rendered as %q", runes[3])
	}

	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("empty input = %q", got)
	}

	// Constant series must not divide by zero.
	Sparkline([]float64{2, 2, 2}, 3)
}
