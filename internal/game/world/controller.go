package world

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/gridpath/internal/config"
	"github.com/Faultbox/gridpath/internal/game/entity"
	"github.com/Faultbox/gridpath/internal/logger"
	"github.com/Faultbox/gridpath/internal/obstacle"
	"github.com/Faultbox/gridpath/internal/pathfinding"
	gpmath "github.com/Faultbox/gridpath/pkg/math"
)

// PathfindingBehaviorName is the name a PathfindingController is attached under.
const PathfindingBehaviorName = "pathfinding"

// State is the motion state of a PathfindingController.
type State uint8

const (
	// StateIdle means there is no path to follow.
	StateIdle State = iota
	// StateFollowing means the owner is moving along a path.
	StateFollowing
	// StateReached means the owner arrived at the last waypoint.
	StateReached
)

func (s State) String() string {
	switch s {
	case StateFollowing:
		return "following"
	case StateReached:
		return "reached"
	default:
		return "idle"
	}
}

// PathfindingController moves its owner along paths computed on the grid.
// Searches run synchronously inside MoveTo; Step advances the owner along
// the current segment once per frame.
//
// Each controller owns its search context and path. It must not be shared
// between objects.
type PathfindingController struct {
	owner     *entity.Object
	search    *pathfinding.SearchContext
	settings  config.PathfindingConfig
	collision pathfinding.CollisionMethod

	path           []gpmath.Vec2
	pathFound      bool
	reachedEnd     bool
	currentSegment int
	segmentLength  float64
	timeOnSegment  float64
	speed          float64

	log *zap.Logger
}

// NewPathfindingController creates a controller reading obstacles from source.
func NewPathfindingController(source obstacle.Source, cfg config.PathfindingConfig) (*PathfindingController, error) {
	c := &PathfindingController{
		search: pathfinding.NewSearchContext(source),
		log:    logger.Named("world"),
	}
	if err := c.UpdateSettings(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateSettings replaces every setting at once. Invalid settings are
// rejected and the previous ones kept. The current path and speed are kept.
func (c *PathfindingController) UpdateSettings(cfg config.PathfindingConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("pathfinding settings: %w", err)
	}
	method, err := pathfinding.ParseCollisionMethod(cfg.CollisionMethod)
	if err != nil {
		return err
	}
	c.settings = cfg
	c.collision = method
	return nil
}

// Settings returns the current settings.
func (c *PathfindingController) Settings() config.PathfindingConfig {
	return c.settings
}

// SetObstacles replaces the obstacle source used by later searches.
func (c *PathfindingController) SetObstacles(source obstacle.Source) {
	c.search.SetObstacles(source)
}

// Name implements entity.Behavior.
func (c *PathfindingController) Name() string { return PathfindingBehaviorName }

// OnAttach implements entity.Behavior.
func (c *PathfindingController) OnAttach(owner *entity.Object) {
	c.owner = owner
}

// OnSimulationStep implements entity.Behavior.
func (c *PathfindingController) OnSimulationStep(_ *entity.Object, dt float64) {
	c.Step(dt)
}

// OnDetach implements entity.Behavior.
func (c *PathfindingController) OnDetach(*entity.Object) {
	c.owner = nil
	c.discardPath()
}

// MoveTo computes a path from the owner's position to (x, y) and starts
// following it. It reports whether a path was found. On failure the
// previous path is discarded and the owner does not move.
func (c *PathfindingController) MoveTo(x, y float64) bool {
	if c.owner == nil {
		c.log.Error("MoveTo on a detached pathfinding controller")
		c.discardPath()
		return false
	}

	opts := c.searchOptions()
	if err := opts.Validate(); err != nil {
		c.log.Error("pathfinding misconfigured", zap.Uint32("object", c.owner.ID), zap.Error(err))
		c.discardPath()
		return false
	}

	position := c.owner.Position()
	target := gpmath.Vec2{X: x, Y: y}
	if !opts.Grid.Contains(position) || !opts.Grid.Contains(target) {
		c.log.Error("MoveTo outside the grid range", zap.Uint32("object", c.owner.ID),
			zap.Float64("x", x), zap.Float64("y", y))
		c.discardPath()
		return false
	}
	if opts.Grid.SameCell(position, target) {
		c.path = append(c.path[:0], position, target)
		c.enterSegment(0)
		c.pathFound = true
		return true
	}

	path, ok := c.search.ComputePathTo(position, target, opts, c.path)
	if !ok {
		c.discardPath()
		return false
	}
	c.path = path
	c.enterSegment(0)
	c.pathFound = true

	c.log.Debug("path found",
		zap.Uint32("object", c.owner.ID),
		zap.Int("waypoints", len(c.path)),
		zap.Int("iterations", c.search.Stats().Iterations))
	return true
}

// Step advances the owner along the path by dt seconds.
func (c *PathfindingController) Step(dt float64) {
	if c.owner == nil || len(c.path) == 0 || c.reachedEnd {
		return
	}

	c.speed += c.settings.Acceleration * dt
	if c.speed > c.settings.MaxSpeed {
		c.speed = c.settings.MaxSpeed
	}

	c.timeOnSegment += c.speed * dt
	for !c.reachedEnd && c.timeOnSegment >= c.segmentLength {
		c.enterSegment(c.currentSegment + 1)
	}

	position := c.path[len(c.path)-1]
	pathAngle := c.owner.Angle
	if !c.reachedEnd {
		from, to := c.path[c.currentSegment], c.path[c.currentSegment+1]
		position = from.Lerp(to, c.timeOnSegment/c.segmentLength)
		pathAngle = to.Sub(from).Heading() + c.settings.AngleOffset
	}
	c.owner.SetPosition(position.X, position.Y)

	// A non-positive angular speed set through SetAngularMaxSpeed leaves the
	// angle alone rather than snapping it.
	if c.settings.RotateObject && c.settings.AngularMaxSpeed > 0 {
		c.owner.RotateTowardAngle(pathAngle, c.settings.AngularMaxSpeed, dt)
	}
}

// enterSegment makes segment the current one. Entering the last waypoint
// marks the destination reached and stops the owner.
func (c *PathfindingController) enterSegment(segment int) {
	if len(c.path) == 0 {
		return
	}
	c.currentSegment = segment
	c.timeOnSegment = 0
	if segment < len(c.path)-1 {
		c.segmentLength = c.path[segment].Distance(c.path[segment+1])
		c.reachedEnd = false
		return
	}
	c.currentSegment = len(c.path) - 1
	c.reachedEnd = true
	c.speed = 0
}

func (c *PathfindingController) discardPath() {
	c.path = c.path[:0]
	c.pathFound = false
	c.reachedEnd = false
	c.currentSegment = 0
	c.segmentLength = 0
	c.timeOnSegment = 0
}

func (c *PathfindingController) grid() pathfinding.Grid {
	return pathfinding.Grid{
		CellWidth:  c.settings.CellWidth,
		CellHeight: c.settings.CellHeight,
		OffsetX:    c.settings.GridOffsetX,
		OffsetY:    c.settings.GridOffsetY,
	}
}

func (c *PathfindingController) searchOptions() pathfinding.Options {
	return pathfinding.Options{
		AllowDiagonals:      c.settings.AllowDiagonals,
		MaxComplexityFactor: c.settings.MaxComplexityFactor,
		Grid:                c.grid(),
		Border:              c.footprint(),
		CollisionMethod:     c.collision,
	}
}

// footprint returns the owner's box around its position, grown by the
// extra border.
func (c *PathfindingController) footprint() pathfinding.Border {
	box := c.owner.AABB()
	extra := c.settings.ExtraBorder
	return pathfinding.Border{
		Left:   c.owner.X - box.Min.X + extra,
		Top:    c.owner.Y - box.Min.Y + extra,
		Right:  box.Max.X - c.owner.X + extra,
		Bottom: box.Max.Y - c.owner.Y + extra,
	}
}

// PathFound reports whether the last MoveTo succeeded.
func (c *PathfindingController) PathFound() bool { return c.pathFound }

// DestinationReached reports whether the owner arrived at the end of the path.
func (c *PathfindingController) DestinationReached() bool { return c.reachedEnd }

// State returns the motion state.
func (c *PathfindingController) State() State {
	switch {
	case len(c.path) == 0:
		return StateIdle
	case c.reachedEnd:
		return StateReached
	default:
		return StateFollowing
	}
}

// SearchStats returns the effort spent by the last search.
func (c *PathfindingController) SearchStats() pathfinding.Stats {
	return c.search.Stats()
}

// Path returns a copy of the current waypoints.
func (c *PathfindingController) Path() []gpmath.Vec2 {
	return slices.Clone(c.path)
}

// NodeCount returns the number of waypoints.
func (c *PathfindingController) NodeCount() int { return len(c.path) }

// NodeX returns the X of waypoint i, or 0 when out of range.
func (c *PathfindingController) NodeX(i int) float64 {
	if i < 0 || i >= len(c.path) {
		return 0
	}
	return c.path[i].X
}

// NodeY returns the Y of waypoint i, or 0 when out of range.
func (c *PathfindingController) NodeY(i int) float64 {
	if i < 0 || i >= len(c.path) {
		return 0
	}
	return c.path[i].Y
}

// NextNodeIndex returns the index of the waypoint the owner is heading to,
// the last one once reached, or -1 without a path.
func (c *PathfindingController) NextNodeIndex() int {
	if c.currentSegment+1 < len(c.path) {
		return c.currentSegment + 1
	}
	return len(c.path) - 1
}

// NextNodeX returns the X of the waypoint the owner is heading to.
func (c *PathfindingController) NextNodeX() float64 { return c.NodeX(c.NextNodeIndex()) }

// NextNodeY returns the Y of the waypoint the owner is heading to.
func (c *PathfindingController) NextNodeY() float64 { return c.NodeY(c.NextNodeIndex()) }

// LastNodeX returns the X of the waypoint the owner last passed, or 0 when
// the path has fewer than two waypoints.
func (c *PathfindingController) LastNodeX() float64 {
	if len(c.path) < 2 {
		return 0
	}
	return c.path[min(c.currentSegment, len(c.path)-1)].X
}

// LastNodeY returns the Y of the waypoint the owner last passed, or 0 when
// the path has fewer than two waypoints.
func (c *PathfindingController) LastNodeY() float64 {
	if len(c.path) < 2 {
		return 0
	}
	return c.path[min(c.currentSegment, len(c.path)-1)].Y
}

// DestinationX returns the X of the last waypoint, or 0 without a path.
func (c *PathfindingController) DestinationX() float64 { return c.NodeX(len(c.path) - 1) }

// DestinationY returns the Y of the last waypoint, or 0 without a path.
func (c *PathfindingController) DestinationY() float64 { return c.NodeY(len(c.path) - 1) }
