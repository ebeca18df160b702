package world

import (
	"github.com/Faultbox/gridpath/internal/game/entity"
	"github.com/Faultbox/gridpath/internal/obstacle"
)

// ObstacleBehaviorName is the name an ObstacleBehavior is attached under.
const ObstacleBehaviorName = "obstacle"

// ObstacleBehavior registers its owner's box in a registry while attached
// and keeps it indexed as the owner moves or resizes.
type ObstacleBehavior struct {
	registry   *obstacle.Registry
	impassable bool
	cost       float64
	obstacle   *obstacle.Obstacle
}

// NewObstacleBehavior creates an obstacle behavior. cost is ignored while
// impassable is set.
func NewObstacleBehavior(registry *obstacle.Registry, impassable bool, cost float64) *ObstacleBehavior {
	return &ObstacleBehavior{
		registry:   registry,
		impassable: impassable,
		cost:       max(cost, 0),
	}
}

// Name implements entity.Behavior.
func (b *ObstacleBehavior) Name() string { return ObstacleBehaviorName }

// OnAttach implements entity.Behavior.
func (b *ObstacleBehavior) OnAttach(owner *entity.Object) {
	b.obstacle = b.registry.Add(owner.AABB(), b.impassable, b.cost)
}

// OnSimulationStep implements entity.Behavior.
func (b *ObstacleBehavior) OnSimulationStep(owner *entity.Object, _ float64) {
	b.Sync(owner)
}

// OnDetach implements entity.Behavior.
func (b *ObstacleBehavior) OnDetach(*entity.Object) {
	if b.obstacle != nil {
		b.registry.Remove(b.obstacle.ID)
		b.obstacle = nil
	}
}

// Sync re-indexes the obstacle if the owner's box changed since the last
// sync. Steps sync automatically; call it after moving an obstacle when a
// search must see the move within the same frame.
func (b *ObstacleBehavior) Sync(owner *entity.Object) {
	if b.obstacle == nil {
		return
	}
	if box := owner.AABB(); box != b.obstacle.Bounds {
		b.obstacle.Bounds = box
		b.registry.Update(b.obstacle)
	}
}

// Obstacle returns the registered obstacle, or nil while detached.
func (b *ObstacleBehavior) Obstacle() *obstacle.Obstacle {
	return b.obstacle
}

// Cost returns the traversal cost.
func (b *ObstacleBehavior) Cost() float64 { return b.cost }

// SetCost sets the traversal cost, clamped to zero.
func (b *ObstacleBehavior) SetCost(cost float64) {
	b.cost = max(cost, 0)
	if b.obstacle != nil {
		b.obstacle.SetCost(cost)
	}
}

// Impassable reports whether the obstacle blocks cells entirely.
func (b *ObstacleBehavior) Impassable() bool { return b.impassable }

// SetImpassable sets whether the obstacle blocks cells entirely.
func (b *ObstacleBehavior) SetImpassable(impassable bool) {
	b.impassable = impassable
	if b.obstacle != nil {
		b.obstacle.Impassable = impassable
	}
}
