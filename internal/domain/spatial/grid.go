package spatial

import (
	"math"

	"github.com/younwookim/lanesiege/internal/domain/entity"
)

// Entry is a point with radius bucketed into the grid
type Entry struct {
	ID     entity.EntityID
	X, Y   float64
	Radius float64
}

// Grid is a uniform bucket grid for broad-phase proximity queries.
// Buckets are indexed by truncated cell coordinates; positions outside the
// field are clamped into the edge buckets.
type Grid struct {
	cols     int
	rows     int
	cellSize float64
	cells    [][]Entry

	maxRadius float64
	count     int
}

// NewGrid creates a grid covering width x height pixels
func NewGrid(width, height, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 64
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	return &Grid{
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		cells:    make([][]Entry, cols*rows),
	}
}

// Clear resets all buckets (keeps allocated capacity)
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.maxRadius = 0
	g.count = 0
}

// Len returns the number of inserted entries
func (g *Grid) Len() int {
	return g.count
}

func (g *Grid) cellCoord(x, y float64) (int, int) {
	cx := int(x / g.cellSize)
	cy := int(y / g.cellSize)
	return g.clampCol(cx), g.clampRow(cy)
}

func (g *Grid) clampCol(cx int) int {
	if cx < 0 {
		return 0
	}
	if cx >= g.cols {
		return g.cols - 1
	}
	return cx
}

func (g *Grid) clampRow(cy int) int {
	if cy < 0 {
		return 0
	}
	if cy >= g.rows {
		return g.rows - 1
	}
	return cy
}

// Insert buckets an entry by its center
func (g *Grid) Insert(e Entry) {
	cx, cy := g.cellCoord(e.X, e.Y)
	idx := cy*g.cols + cx
	g.cells[idx] = append(g.cells[idx], e)
	if e.Radius > g.maxRadius {
		g.maxRadius = e.Radius
	}
	g.count++
}

// Retrieve appends candidate entries near (x, y) to buf and returns it.
// The neighbourhood is at least the query cell and its 8 neighbours, widened
// so that any inserted circle overlapping the query circle is returned.
// Callers re-check exact overlap.
func (g *Grid) Retrieve(x, y, radius float64, buf []Entry) []Entry {
	if g.count == 0 {
		return buf
	}
	span := int(math.Ceil((radius + g.maxRadius) / g.cellSize))
	if span < 1 {
		span = 1
	}
	cx, cy := g.cellCoord(x, y)
	minCX := g.clampCol(cx - span)
	maxCX := g.clampCol(cx + span)
	minCY := g.clampRow(cy - span)
	maxCY := g.clampRow(cy + span)
	for row := minCY; row <= maxCY; row++ {
		for col := minCX; col <= maxCX; col++ {
			buf = append(buf, g.cells[row*g.cols+col]...)
		}
	}
	return buf
}
