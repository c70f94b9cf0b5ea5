package draw

import (
	"io"
	"math"
	"slices"
	"strings"
)

// Canvas is a monochrome pixel buffer rendered with half-block characters,
// giving two pixels per terminal cell vertically.
// Drawing uses logical coordinates which are scaled to the terminal size.
// Render only emits cells that changed since the previous frame.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int    // termHeight * 2
	pixels         []bool // [y*termWidth + x]
	drawn          []rune // Last rune written per cell, 0 when unknown

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// 0-based offset of the canvas inside the terminal, for centering.
	offsetCol int
	offsetRow int

	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
	cellBuf         []byte
}

// NewScaledCanvas creates a canvas of termWidth x termHeight cells that maps
// the logical area logicalWidth x logicalHeight onto it.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize changes the terminal dimensions while keeping the logical size.
// A size change invalidates everything on screen.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
		c.drawn = make([]rune, termHeight*termWidth)
	}

	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row where the canvas starts.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the canvas width in cells.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in cells.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear resets all pixels. The screen is untouched until the next Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render assume a blank screen.
// Call it after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.drawn {
		c.drawn[i] = BlockEmpty
	}
}

// MarkTextDirty records that text overwrote n cells starting at the 1-based
// canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.drawn[r*c.termWidth+x] = 0
		}
	}
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// SetFloat sets the pixel at logical coordinates (x, y).
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(c.toPixel(x, y))
}

// FillRect fills the logical rectangle. Anything with a non-empty area covers
// at least one pixel, so thin bullets stay visible on small terminals.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := max(int(math.Ceil((x+w)*c.scaleX)), x0+1)
	y1 := max(int(math.Ceil((y+h)*c.scaleY)), y0+1)

	x0, x1 = max(x0, 0), min(x1, c.termWidth)
	y0, y1 = max(y0, 0), min(y1, c.subPixelHeight)
	for py := y0; py < y1; py++ {
		row := c.pixels[py*c.termWidth:]
		for px := x0; px < x1; px++ {
			row[px] = true
		}
	}
}

// DrawLine draws a line between logical points using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws the outline of a polygon, filling it when filled is true.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	n := len(points)
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon is a scanline fill in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		minY = min(minY, scaled[i].Y)
		maxY = max(maxY, scaled[i].Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)
	n := len(scaled)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range scaled {
			p1, p2 := scaled[i], scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		slices.Sort(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// BorrowPoints returns a reusable slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func (c *Canvas) cell(row, col int) rune {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	default:
		return BlockEmpty
	}
}

// Render writes every cell that differs from what is on screen.
func (c *Canvas) Render(w io.Writer) {
	buf := c.cellBuf[:0]
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			ch := c.cell(row, col)
			i := row*c.termWidth + col
			if c.drawn[i] == ch {
				continue
			}
			c.drawn[i] = ch
			buf = appendCursor(buf, col+1+c.offsetCol, row+1+c.offsetRow)
			buf = append(buf, string(ch)...)
		}
	}
	c.cellBuf = buf
	w.Write(buf)
}

func appendCursor(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = appendInt(buf, row)
	buf = append(buf, ';')
	buf = appendInt(buf, col)
	return append(buf, 'H')
}

func appendInt(buf []byte, v int) []byte {
	if v >= 10 {
		buf = appendInt(buf, v/10)
	}
	return append(buf, byte('0'+v%10))
}

// RenderBorder frames the canvas when the terminal is larger than the render area.
// Horizontal bars need a spare row above and below, vertical bars a spare column.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasSides := c.offsetCol >= 1
	hasBars := c.offsetRow >= 1
	if !hasSides && !hasBars {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var b []byte
	if hasBars {
		for _, r := range [2]int{top, bottom} {
			if hasSides {
				b = appendCursor(b, left, r)
				corner := "┌"
				end := "┐"
				if r == bottom {
					corner, end = "└", "┘"
				}
				b = append(b, corner+line+end...)
			} else {
				b = appendCursor(b, c.offsetCol+1, r)
				b = append(b, line...)
			}
		}
	}
	if hasSides {
		for r := c.offsetRow + 1; r <= c.offsetRow+c.termHeight; r++ {
			b = appendCursor(b, left, r)
			b = append(b, "│"...)
			b = appendCursor(b, right, r)
			b = append(b, "│"...)
		}
	}
	w.Write(b)
}
