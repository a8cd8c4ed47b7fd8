package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a grid of Braille cells. Each cell holds 2x4 dots, so a canvas of
// Width x Height cells addresses (Width*2) x (Height*4) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, rune(pixelMap[y%4][x%2]), true
}

// Set lights the dot at (x, y).
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

// Unset clears the dot at (x, y).
func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

// Toggle flips the dot at (x, y). Overlays use it to stay visible on both
// bright and dark regions.
func (c *Canvas) Toggle(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] ^= bit
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Threshold lights every dot whose value in the row-major luma buffer
// (w x h, one value per dot) exceeds level.
func (c *Canvas) Threshold(luma []float64, w, h int, level float64) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if i := y*w + x; i < len(luma) && luma[i] > level {
				c.Set(x, y)
			}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// ToggleRing flips every dash-th dot along a circle of radius r dots. Each
// dot is flipped at most once.
func (c *Canvas) ToggleRing(cx, cy, r float64, dash int) {
	if !(r > 0.5) {
		return
	}
	n := int(2*math.Pi*r) + 1
	if dash < 1 {
		dash = 1
	}
	seen := make(map[[2]int]bool, n/dash+1)
	for i := 0; i < n; i += dash {
		a := 2 * math.Pi * float64(i) / float64(n)
		pt := [2]int{int(math.Round(cx + r*math.Cos(a))), int(math.Round(cy + r*math.Sin(a)))}
		if !seen[pt] {
			seen[pt] = true
			c.Toggle(pt[0], pt[1])
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
