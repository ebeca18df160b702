// Package pathfinding implements a bounded A* search over an implicit grid
// whose cells are materialized on demand from an obstacle source.
package pathfinding

import (
	"fmt"
	"math"

	gpmath "github.com/Faultbox/gridpath/pkg/math"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// MaxCellCoord bounds both cell coordinates. Searches never leave
// [-MaxCellCoord, MaxCellCoord], which keeps every cell's packed key unique.
const MaxCellCoord = 1 << 30

// key packs the cell into the sparse map key.
func (c Cell) key() uint64 {
	return uint64(uint32(int32(c.X)))<<32 | uint64(uint32(int32(c.Y)))
}

func (c Cell) inRange() bool {
	return c.X >= -MaxCellCoord && c.X <= MaxCellCoord && c.Y >= -MaxCellCoord && c.Y <= MaxCellCoord
}

// Grid maps world coordinates to cells. Cells need not be square. A cell's
// world position is its center: cell (0, 0) is centered on the grid offset.
type Grid struct {
	CellWidth  float64
	CellHeight float64
	OffsetX    float64
	OffsetY    float64
}

// Validate reports a non-positive or non-finite cell size.
func (g Grid) Validate() error {
	if !(g.CellWidth > 0) || !(g.CellHeight > 0) || math.IsInf(g.CellWidth, 0) || math.IsInf(g.CellHeight, 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidCellSize, g.CellWidth, g.CellHeight)
	}
	return nil
}

// Contains reports whether a world position maps to a cell within
// MaxCellCoord. NaN positions are outside.
func (g Grid) Contains(p gpmath.Vec2) bool {
	x := math.Abs((p.X - g.OffsetX) / g.CellWidth)
	y := math.Abs((p.Y - g.OffsetY) / g.CellHeight)
	return x < MaxCellCoord && y < MaxCellCoord
}

// CellAt returns the cell containing a world position, rounding each axis
// to the nearest cell independently.
func (g Grid) CellAt(p gpmath.Vec2) Cell {
	return Cell{
		X: gpmath.RoundHalfUp((p.X - g.OffsetX) / g.CellWidth),
		Y: gpmath.RoundHalfUp((p.Y - g.OffsetY) / g.CellHeight),
	}
}

// CellCenter returns the world position of a cell.
func (g Grid) CellCenter(c Cell) gpmath.Vec2 {
	return gpmath.Vec2{
		X: float64(c.X)*g.CellWidth + g.OffsetX,
		Y: float64(c.Y)*g.CellHeight + g.OffsetY,
	}
}

// SameCell reports whether two world positions fall in the same cell.
func (g Grid) SameCell(a, b gpmath.Vec2) bool {
	return g.CellAt(a) == g.CellAt(b)
}

func euclideanDistance(a, b Cell) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func manhattanDistance(a, b Cell) float64 {
	return math.Abs(float64(a.X-b.X)) + math.Abs(float64(a.Y-b.Y))
}

type neighbor struct {
	dx, dy int
	factor float64
}

var (
	cardinalNeighbors = []neighbor{
		{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1},
	}
	allNeighbors = []neighbor{
		{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1},
		{1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {-1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2},
	}
)
