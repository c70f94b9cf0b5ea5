// Package draw renders to ANSI terminals: a half-block pixel canvas plus
// buffered text output for HUD overlays.
package draw

import (
	"io"
	"math"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// Text colors for overlays.
const (
	ColorReset       = "\033[0m"
	ColorBold        = "\033[1m"
	ColorRed         = "\033[31m"
	ColorYellow      = "\033[33m"
	ColorBrightCyan  = "\033[96m"
	ColorBrightGreen = "\033[92m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, "\033[?25h")
}

// RegularPolygon fills dst with the vertices of a regular polygon centered on
// (cx, cy), rotated by rotation degrees. len(dst) is the vertex count.
func RegularPolygon(dst []Point, cx, cy, radius, rotation float64) []Point {
	n := len(dst)
	rad := rotation * math.Pi / 180
	for i := range dst {
		a := rad + 2*math.Pi*float64(i)/float64(n)
		dst[i] = Point{X: cx + math.Cos(a)*radius, Y: cy + math.Sin(a)*radius}
	}
	return dst
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
