// Package world runs a scene: its objects, their behaviors and the
// obstacle registry they share.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gridpath/internal/config"
	"github.com/Faultbox/gridpath/internal/game/entity"
	"github.com/Faultbox/gridpath/internal/logger"
	"github.com/Faultbox/gridpath/internal/obstacle"
)

// World owns the objects of a scene and the obstacle registry. The
// registry lives exactly as long as the world. Everything runs on the
// caller's goroutine.
type World struct {
	obstacles *obstacle.Registry
	objects   *entity.Manager
	frame     uint64
	closed    bool

	log *zap.Logger
}

// New creates an empty world.
func New() *World {
	return &World{
		obstacles: obstacle.NewRegistry(),
		objects:   entity.NewManager(),
		log:       logger.Named("world"),
	}
}

// Obstacles returns the world's obstacle registry.
func (w *World) Obstacles() *obstacle.Registry {
	return w.obstacles
}

// Objects returns the world's objects.
func (w *World) Objects() *entity.Manager {
	return w.objects
}

// Frame returns the number of completed steps.
func (w *World) Frame() uint64 {
	return w.frame
}

// Spawn creates an object.
func (w *World) Spawn(name string, x, y, width, height float64) *entity.Object {
	o := w.objects.Spawn(name, x, y)
	o.SetSize(width, height, width/2, height/2)
	return o
}

// Despawn detaches every behavior of an object and removes it.
func (w *World) Despawn(id uint32) bool {
	o := w.objects.Get(id)
	if o == nil {
		return false
	}
	o.DetachAll()
	w.objects.Remove(id)
	return true
}

// AddObstacle makes an object an obstacle of this world.
func (w *World) AddObstacle(o *entity.Object, impassable bool, cost float64) (*ObstacleBehavior, error) {
	b := NewObstacleBehavior(w.obstacles, impassable, cost)
	if err := o.Attach(b); err != nil {
		return nil, err
	}
	return b, nil
}

// AddPathfinding attaches a pathfinding controller searching this world's
// obstacles.
func (w *World) AddPathfinding(o *entity.Object, cfg config.PathfindingConfig) (*PathfindingController, error) {
	c, err := NewPathfindingController(w.obstacles, cfg)
	if err != nil {
		return nil, fmt.Errorf("object %d: %w", o.ID, err)
	}
	if err := o.Attach(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Pathfinding returns the pathfinding controller attached to an object, or nil.
func Pathfinding(o *entity.Object) *PathfindingController {
	c, _ := o.Behavior(PathfindingBehaviorName).(*PathfindingController)
	return c
}

// Step runs one frame: every object, in ID order, steps its behaviors once.
func (w *World) Step(dt float64) {
	if w.closed {
		return
	}
	w.objects.Update(dt)
	w.frame++
}

// Close detaches everything and releases the obstacle registry.
func (w *World) Close() {
	if w.closed {
		return
	}
	w.closed = true
	for _, o := range w.objects.All() {
		o.DetachAll()
	}
	w.objects.Clear()
	w.obstacles.Close()
	w.log.Debug("world closed", zap.Uint64("frames", w.frame))
}
