package pathfinding

import (
	"math"
	"testing"

	"github.com/Faultbox/gridpath/internal/obstacle"
	gpmath "github.com/Faultbox/gridpath/pkg/math"
)

const testCell = 20.0

// sliceSource is a linear obstacle.Source. Like the registry it only
// returns obstacles whose bounds come within radius of the query point.
type sliceSource struct {
	obstacles []*obstacle.Obstacle
	queries   int
}

func (s *sliceSource) QueryNear(x, y, radius float64, dst []*obstacle.Obstacle) []*obstacle.Obstacle {
	s.queries++
	for _, o := range s.obstacles {
		dx := math.Max(0, math.Max(o.Bounds.Min.X-x, x-o.Bounds.Max.X))
		dy := math.Max(0, math.Max(o.Bounds.Min.Y-y, y-o.Bounds.Max.Y))
		if math.Hypot(dx, dy) <= radius {
			dst = append(dst, o)
		}
	}
	return dst
}

func (s *sliceSource) add(bounds gpmath.AABB, impassable bool, cost float64) *obstacle.Obstacle {
	o := &obstacle.Obstacle{ID: obstacle.ID(len(s.obstacles) + 1), Bounds: bounds, Impassable: impassable, Cost: cost}
	s.obstacles = append(s.obstacles, o)
	return o
}

// cellBox returns the box of cells [x0..x1] x [y0..y1] on the 20x20 test
// grid, aligned on cell centers.
func cellBox(x0, y0, x1, y1 int) gpmath.AABB {
	return gpmath.AABB{
		Min: gpmath.Vec2{X: float64(x0)*testCell - testCell/2, Y: float64(y0)*testCell - testCell/2},
		Max: gpmath.Vec2{X: float64(x1)*testCell + testCell/2, Y: float64(y1)*testCell + testCell/2},
	}
}

func testOptions(diagonals bool) Options {
	opts := DefaultOptions()
	opts.AllowDiagonals = diagonals
	opts.Grid = Grid{CellWidth: testCell, CellHeight: testCell}
	return opts
}

func pathLength(path []gpmath.Vec2) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i].Distance(path[i-1])
	}
	return total
}

func pathCells(g Grid, path []gpmath.Vec2) []Cell {
	cells := make([]Cell, len(path))
	for i, p := range path {
		cells[i] = g.CellAt(p)
	}
	return cells
}

func containsCell(cells []Cell, c Cell) bool {
	for _, got := range cells {
		if got == c {
			return true
		}
	}
	return false
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func mustFind(t *testing.T, s *SearchContext, start, dest gpmath.Vec2, opts Options) []gpmath.Vec2 {
	t.Helper()
	path, ok := s.ComputePathTo(start, dest, opts, nil)
	if !ok {
		t.Fatalf("expected a path from %v to %v, stats %+v", start, dest, s.Stats())
	}
	return path
}
