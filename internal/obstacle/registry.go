package obstacle

import (
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/Faultbox/gridpath/internal/logger"
	gpmath "github.com/Faultbox/gridpath/pkg/math"
)

// Registry indexes the obstacles of one world. Obstacles are static box
// shapes in a chipmunk space; only the space's bounding-box tree is used,
// the space is never stepped.
//
// A Registry is not safe for concurrent use. It must not be mutated while a
// search is running, which holds trivially in a single-threaded frame loop.
type Registry struct {
	space     *cp.Space
	shapes    map[ID]*cp.Shape
	obstacles map[ID]*Obstacle
	nextID    ID
	log       *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		space:     cp.NewSpace(),
		shapes:    make(map[ID]*cp.Shape),
		obstacles: make(map[ID]*Obstacle),
		log:       logger.Named("obstacle"),
	}
}

// Add registers a new obstacle covering bounds.
func (r *Registry) Add(bounds gpmath.AABB, impassable bool, cost float64) *Obstacle {
	r.nextID++
	o := &Obstacle{ID: r.nextID, Bounds: bounds, Impassable: impassable}
	o.SetCost(cost)

	r.obstacles[o.ID] = o
	r.insertShape(o)

	r.log.Debug("obstacle added",
		zap.Uint32("id", uint32(o.ID)),
		zap.Float64("x", bounds.Min.X), zap.Float64("y", bounds.Min.Y),
		zap.Float64("width", bounds.Width()), zap.Float64("height", bounds.Height()),
		zap.Bool("impassable", impassable))
	return o
}

// Update re-indexes an obstacle after its Bounds changed.
// It reports false if the obstacle is not registered here.
func (r *Registry) Update(o *Obstacle) bool {
	shape, ok := r.shapes[o.ID]
	if !ok || r.obstacles[o.ID] != o {
		return false
	}
	r.space.RemoveShape(shape)
	r.insertShape(o)
	return true
}

// Remove unregisters an obstacle.
func (r *Registry) Remove(id ID) bool {
	shape, ok := r.shapes[id]
	if !ok {
		return false
	}
	r.space.RemoveShape(shape)
	delete(r.shapes, id)
	delete(r.obstacles, id)
	return true
}

// Get returns the obstacle with the given id.
func (r *Registry) Get(id ID) (*Obstacle, bool) {
	o, ok := r.obstacles[id]
	return o, ok
}

// Len returns the number of registered obstacles.
func (r *Registry) Len() int {
	return len(r.obstacles)
}

// QueryNear appends every obstacle whose bounds come within radius of (x, y).
// Results are ordered by ID.
func (r *Registry) QueryNear(x, y, radius float64, dst []*Obstacle) []*Obstacle {
	start := len(dst)
	bb := cp.BB{L: x - radius, B: y - radius, R: x + radius, T: y + radius}
	r.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		o := shape.UserData.(*Obstacle)
		if distanceToBox(o.Bounds, x, y) <= radius {
			dst = append(dst, o)
		}
	}, nil)
	sortByID(dst[start:])
	return dst
}

// QueryAABB appends every obstacle whose bounds intersect box, edges
// included. Results are ordered by ID.
func (r *Registry) QueryAABB(box gpmath.AABB, dst []*Obstacle) []*Obstacle {
	start := len(dst)
	bb := cp.BB{L: box.Min.X, B: box.Min.Y, R: box.Max.X, T: box.Max.Y}
	r.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		dst = append(dst, shape.UserData.(*Obstacle))
	}, nil)
	sortByID(dst[start:])
	return dst
}

// Close drops every obstacle. The registry is empty but usable afterwards.
func (r *Registry) Close() {
	for id := range r.shapes {
		r.Remove(id)
	}
}

func (r *Registry) insertShape(o *Obstacle) {
	bb := cp.BB{L: o.Bounds.Min.X, B: o.Bounds.Min.Y, R: o.Bounds.Max.X, T: o.Bounds.Max.Y}
	shape := cp.NewBox2(r.space.StaticBody, bb, 0)
	shape.UserData = o
	r.space.AddShape(shape)
	r.shapes[o.ID] = shape
}

func distanceToBox(b gpmath.AABB, x, y float64) float64 {
	dx := math.Max(math.Max(b.Min.X-x, 0), x-b.Max.X)
	dy := math.Max(math.Max(b.Min.Y-y, 0), y-b.Max.Y)
	return math.Hypot(dx, dy)
}

func sortByID(obstacles []*Obstacle) {
	slices.SortFunc(obstacles, func(a, b *Obstacle) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
