package pathfinding

import (
	"fmt"
	"math"

	"github.com/Faultbox/gridpath/internal/obstacle"
	gpmath "github.com/Faultbox/gridpath/pkg/math"
)

// CollisionMethod selects how an obstacle is tested against a cell.
type CollisionMethod uint8

const (
	// CollisionLegacy converts each obstacle, grown by the object's
	// footprint, into an exclusive range of cells.
	CollisionLegacy CollisionMethod = iota
	// CollisionAABB centers the object's footprint on the cell and tests it
	// against obstacle boxes. Touching edges do not collide.
	CollisionAABB
)

// ParseCollisionMethod maps a configuration value to a CollisionMethod.
// The empty string selects the legacy method.
func ParseCollisionMethod(s string) (CollisionMethod, error) {
	switch s {
	case "", "legacy":
		return CollisionLegacy, nil
	case "aabb":
		return CollisionAABB, nil
	}
	return CollisionLegacy, fmt.Errorf("pathfinding: unknown collision method %q", s)
}

func (m CollisionMethod) String() string {
	if m == CollisionAABB {
		return "aabb"
	}
	return "legacy"
}

// Border is the moving object's footprint around its position. Searching
// for the object's position against obstacles grown by these margins is
// equivalent to searching for the whole footprint.
type Border struct {
	Left, Top, Right, Bottom float64
}

// reach is the farthest a footprint corner extends from the object's
// position.
func (b Border) reach() float64 {
	return math.Hypot(math.Max(b.Left, b.Right), math.Max(b.Top, b.Bottom))
}

// nodeEvaluator computes the traversal cost of a cell from the obstacles
// around it.
type nodeEvaluator struct {
	source obstacle.Source
	grid   Grid
	border Border
	method CollisionMethod
	nearby []*obstacle.Obstacle
}

// evaluate returns impassableCost if any covering obstacle is impassable,
// the sum of the covering obstacles' costs otherwise, or 1 if nothing
// covers the cell.
func (e *nodeEvaluator) evaluate(c Cell) float64 {
	center := e.grid.CellCenter(c)
	stamp := gpmath.AABB{
		Min: gpmath.Vec2{X: center.X - e.border.Left, Y: center.Y - e.border.Top},
		Max: gpmath.Vec2{X: center.X + e.border.Right, Y: center.Y + e.border.Bottom},
	}

	e.nearby = e.nearby[:0]
	switch e.method {
	case CollisionAABB:
		if q, ok := e.source.(obstacle.AABBQuerier); ok {
			e.nearby = q.QueryAABB(stamp, e.nearby)
		} else {
			e.nearby = e.source.QueryNear(center.X, center.Y, e.border.reach(), e.nearby)
		}
	default:
		// The cell range of a grown obstacle rounds outward by under a cell
		// on each axis.
		radius := 2*math.Max(e.grid.CellWidth, e.grid.CellHeight) + e.border.reach()
		e.nearby = e.source.QueryNear(center.X, center.Y, radius, e.nearby)
	}

	cost := 0.0
	covered := false
	for _, o := range e.nearby {
		if !e.covers(o, c, stamp) {
			continue
		}
		covered = true
		if o.Impassable {
			return impassableCost
		}
		// Obstacles superimpose.
		cost += o.Cost
	}
	if !covered {
		return 1
	}
	return cost
}

func (e *nodeEvaluator) covers(o *obstacle.Obstacle, c Cell, stamp gpmath.AABB) bool {
	if e.method == CollisionAABB {
		return stamp.Overlaps(o.Bounds)
	}

	g := e.grid
	minX := o.Bounds.Min.X - g.OffsetX
	minY := o.Bounds.Min.Y - g.OffsetY
	maxX := o.Bounds.Max.X - g.OffsetX
	maxY := o.Bounds.Max.Y - g.OffsetY

	left := int(math.Floor((minX - e.border.Right) / g.CellWidth))
	top := int(math.Floor((minY - e.border.Bottom) / g.CellHeight))
	right := int(math.Ceil((maxX + e.border.Left) / g.CellWidth))
	bottom := int(math.Ceil((maxY + e.border.Top) / g.CellHeight))

	return left < c.X && c.X < right && top < c.Y && c.Y < bottom
}
