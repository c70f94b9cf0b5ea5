package draw

import (
	"bytes"
	"strings"
	"testing"
)

// newTestCanvas maps a 10x10 logical area onto 10x5 cells (10x10 pixels).
func newTestCanvas() *Canvas {
	return NewScaledCanvas(10, 5, 10, 10)
}

func render(c *Canvas) string {
	var buf bytes.Buffer
	c.Render(&buf)
	return buf.String()
}

func TestRenderHalfBlocks(t *testing.T) {
	tests := []struct {
		name   string
		pixels []Point
		want   string
	}{
		{"top", []Point{{2, 0}}, "\033[1;3H▀"},
		{"bottom", []Point{{2, 1}}, "\033[1;3H▄"},
		{"both", []Point{{2, 0}, {2, 1}}, "\033[1;3H█"},
		{"lower row", []Point{{0, 9}}, "\033[5;1H▄"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas()
			c.ForceRedraw()
			for _, p := range tt.pixels {
				c.SetFloat(p.X, p.Y)
			}
			if got := render(c); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderOnlyChanges(t *testing.T) {
	c := newTestCanvas()

	first := render(c)
	if strings.Count(first, "H") != 50 {
		t.Errorf("first frame should paint every cell, got %d", strings.Count(first, "H"))
	}

	if got := render(c); got != "" {
		t.Errorf("unchanged frame wrote %q", got)
	}

	c.SetFloat(4, 4)
	if got := render(c); got != "\033[3;5H▀" {
		t.Errorf("Render() = %q", got)
	}

	c.Clear()
	if got := render(c); got != "\033[3;5H " {
		t.Errorf("cleared pixel should be erased, got %q", got)
	}
}

func TestMarkTextDirty(t *testing.T) {
	c := newTestCanvas()
	c.ForceRedraw()
	render(c)

	c.MarkTextDirty(2, 1, 3)
	got := render(c)
	if strings.Count(got, " ") != 3 {
		t.Errorf("dirty cells should be repainted, got %q", got)
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := newTestCanvas()
	c.ForceRedraw()
	c.SetOffset(4, 2)
	c.SetFloat(0, 0)

	if got := render(c); got != "\033[3;5H▀" {
		t.Errorf("Render() = %q", got)
	}
}

func TestFillRect(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(2, 2, 3, 2)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x >= 2 && x < 5 && y >= 2 && y < 4
			if got := c.pixels[y*10+x]; got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillRectTinyStaysVisible(t *testing.T) {
	c := NewScaledCanvas(10, 5, 800, 600)
	c.FillRect(400, 300, 4, 10)

	n := 0
	for _, p := range c.pixels {
		if p {
			n++
		}
	}
	if n == 0 {
		t.Error("a bullet smaller than a pixel should still cover one")
	}
}

func TestFillRectClipped(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(-5, -5, 100, 100)

	for i, p := range c.pixels {
		if !p {
			t.Fatalf("pixel %d not set", i)
		}
	}
}

func TestDrawPolygonFilled(t *testing.T) {
	c := newTestCanvas()
	c.DrawPolygon([]Point{{1, 1}, {8, 1}, {8, 8}, {1, 8}}, true)

	if !c.pixels[5*10+5] {
		t.Error("polygon interior should be filled")
	}
	if c.pixels[0] {
		t.Error("pixel outside the polygon was set")
	}
}

func TestRegularPolygon(t *testing.T) {
	pts := RegularPolygon(make([]Point, 4), 5, 5, 2, 0)

	want := []Point{{7, 5}, {5, 7}, {3, 5}, {5, 3}}
	for i, p := range pts {
		if d := (p.X-want[i].X)*(p.X-want[i].X) + (p.Y-want[i].Y)*(p.Y-want[i].Y); d > 1e-18 {
			t.Errorf("vertex %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestRenderBorder(t *testing.T) {
	c := newTestCanvas()

	var buf bytes.Buffer
	c.RenderBorder(&buf)
	if buf.Len() != 0 {
		t.Error("no border expected without spare room")
	}

	c.SetOffset(1, 1)
	c.RenderBorder(&buf)
	out := buf.String()
	for _, s := range []string{"┌", "┐", "└", "┘", "│"} {
		if !strings.Contains(out, s) {
			t.Errorf("border missing %q", s)
		}
	}
}
