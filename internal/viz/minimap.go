package viz

import (
	"math"
	"strings"

	"github.com/san-kum/cullbench/internal/bench"
)

// Braille cell dots, indexed [row][col]:
//
//	1 4
//	2 5
//	3 6
//	7 8
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Minimap plots world points into a braille grid of Cols x Rows cells. Each
// cell holds 2x4 dots, so the plot resolution is (2*Cols) x (4*Rows).
type Minimap struct {
	Cols, Rows int
	bounds     bench.AABB
	grid       [][]rune
}

func NewMinimap(cols, rows int, bounds bench.AABB) *Minimap {
	m := &Minimap{Cols: cols, Rows: rows, bounds: bounds, grid: make([][]rune, rows)}
	for i := range m.grid {
		m.grid[i] = make([]rune, cols)
	}
	m.Clear()
	return m
}

func (m *Minimap) Clear() {
	for _, row := range m.grid {
		for j := range row {
			row[j] = brailleBlank
		}
	}
}

// Plot marks the dot covering p. Points outside the bounds are ignored.
func (m *Minimap) Plot(p bench.Vec2) {
	if m.bounds.Empty() || !m.bounds.Contains(p) {
		return
	}
	w, h := m.Cols*2, m.Rows*4
	x := int((p.X - m.bounds.Min.X) / m.bounds.Width() * float64(w))
	y := int((p.Y - m.bounds.Min.Y) / m.bounds.Height() * float64(h))
	m.set(min(x, w-1), min(y, h-1))
}

// Frame outlines the sub-box b, typically the camera's view. Edges outside
// the map are not drawn.
func (m *Minimap) Frame(b bench.AABB) {
	if m.bounds.Empty() || b.Empty() || !b.Overlaps(m.bounds) {
		return
	}
	w, h := m.Cols*2, m.Rows*4
	dot := func(v, lo, extent float64, n int) (int, bool) {
		f := math.Floor((v - lo) / extent * float64(n))
		return int(math.Max(0, math.Min(f, float64(n-1)))), f >= 0 && f <= float64(n)
	}

	x0, left := dot(b.Min.X, m.bounds.Min.X, m.bounds.Width(), w)
	x1, right := dot(b.Max.X, m.bounds.Min.X, m.bounds.Width(), w)
	y0, top := dot(b.Min.Y, m.bounds.Min.Y, m.bounds.Height(), h)
	y1, bottom := dot(b.Max.Y, m.bounds.Min.Y, m.bounds.Height(), h)

	for x := x0; x <= x1; x++ {
		if top {
			m.set(x, y0)
		}
		if bottom {
			m.set(x, y1)
		}
	}
	for y := y0; y <= y1; y++ {
		if left {
			m.set(x0, y)
		}
		if right {
			m.set(x1, y)
		}
	}
}

func (m *Minimap) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= m.Cols || row >= m.Rows {
		return
	}
	m.grid[row][col] |= brailleDots[y%4][x%2]
}

func (m *Minimap) String() string {
	var b strings.Builder
	for i, row := range m.grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}
