package pathfinding

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/gridpath/internal/logger"
	"github.com/Faultbox/gridpath/internal/obstacle"
	gpmath "github.com/Faultbox/gridpath/pkg/math"
)

// DefaultMaxComplexityFactor is the default search bound multiplier.
const DefaultMaxComplexityFactor = 50

// Misconfiguration errors. A search with any of these returns false without
// touching the context.
var (
	ErrNoObstacleSource  = errors.New("pathfinding: no obstacle source")
	ErrInvalidCellSize   = errors.New("pathfinding: cell size must be positive")
	ErrInvalidComplexity = errors.New("pathfinding: complexity factor must be positive")
	ErrOutOfRange        = errors.New("pathfinding: position outside the grid range")
)

// Options configures one search.
type Options struct {
	// AllowDiagonals enables the 4 diagonal neighbors and selects the
	// Euclidean heuristic. Without it the heuristic is Manhattan.
	AllowDiagonals bool
	// MaxComplexityFactor bounds the search at heuristic(start) * factor
	// iterations and node materializations.
	MaxComplexityFactor float64
	Grid                Grid
	Border              Border
	CollisionMethod     CollisionMethod
}

// DefaultOptions returns diagonal search on a 20x20 grid.
func DefaultOptions() Options {
	return Options{
		AllowDiagonals:      true,
		MaxComplexityFactor: DefaultMaxComplexityFactor,
		Grid:                Grid{CellWidth: 20, CellHeight: 20},
	}
}

// Validate reports settings that make a search meaningless.
func (o Options) Validate() error {
	if err := o.Grid.Validate(); err != nil {
		return err
	}
	if !(o.MaxComplexityFactor > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidComplexity, o.MaxComplexityFactor)
	}
	return nil
}

// Stats describes the effort spent by the last search.
type Stats struct {
	Iterations    int
	Materialized  int
	Recycled      int
	MaxIterations float64
	// Exhausted is set when the search stopped on its bound rather than on
	// an empty open list.
	Exhausted bool
}

// SearchContext holds the reusable state of one object's searches: the
// node pool, the sparse cell map and the open list. It is not safe for
// concurrent use and must not be shared between objects.
type SearchContext struct {
	source obstacle.Source

	opts        Options
	distance    func(a, b Cell) float64
	start       Cell
	destination Cell
	nodeLimit   float64

	arena     nodeArena
	cells     map[uint64]nodeID
	open      openList
	evaluator nodeEvaluator
	finalNode nodeID
	stats     Stats

	log *zap.Logger
}

// NewSearchContext creates a context reading obstacles from source.
func NewSearchContext(source obstacle.Source) *SearchContext {
	s := &SearchContext{
		source:    source,
		cells:     make(map[uint64]nodeID),
		finalNode: noNode,
		log:       logger.Named("pathfinding"),
	}
	s.open.arena = &s.arena
	return s
}

// SetObstacles replaces the obstacle source.
func (s *SearchContext) SetObstacles(source obstacle.Source) {
	s.source = source
}

// Stats returns the effort spent by the last search.
func (s *SearchContext) Stats() Stats {
	return s.stats
}

// ComputePathTo searches a path from start to destination and, on success,
// writes its waypoints into dst (reusing its storage) and returns it.
// Waypoint 0 is start itself, the others are cell centers.
//
// The search is bounded: it gives up once it has popped, or materialized,
// more than heuristic(start) * MaxComplexityFactor nodes. Failure means
// "no route" or "too expensive to find"; dst is returned unchanged.
func (s *SearchContext) ComputePathTo(start, destination gpmath.Vec2, opts Options, dst []gpmath.Vec2) ([]gpmath.Vec2, bool) {
	if s.source == nil {
		s.log.Error("path search without an obstacle source", zap.Error(ErrNoObstacleSource))
		return dst, false
	}
	if err := opts.Validate(); err != nil {
		s.log.Error("path search misconfigured", zap.Error(err))
		return dst, false
	}
	if !opts.Grid.Contains(start) || !opts.Grid.Contains(destination) {
		s.log.Error("path search misconfigured", zap.Error(ErrOutOfRange),
			zap.Float64("start_x", start.X), zap.Float64("start_y", start.Y),
			zap.Float64("dest_x", destination.X), zap.Float64("dest_y", destination.Y))
		return dst, false
	}

	s.configure(opts)
	s.start = opts.Grid.CellAt(start)
	s.destination = opts.Grid.CellAt(destination)
	s.reset()

	startEstimate := s.distance(s.start, s.destination)
	maxIterations := startEstimate * opts.MaxComplexityFactor
	s.nodeLimit = math.Max(maxIterations, 1)
	s.stats.MaxIterations = maxIterations

	startID, _ := s.node(s.start)
	startNode := s.arena.at(startID)
	if startNode.Cost < 0 {
		// The object already overlaps an impassable obstacle; let it walk out.
		startNode.Cost = 1
	}
	startNode.SmallestCost = 0
	startNode.EstimateCost = startEstimate
	heap.Push(&s.open, startID)

	for s.open.Len() > 0 {
		if float64(s.stats.Iterations) > maxIterations {
			return s.fail(dst, true)
		}
		s.stats.Iterations++

		id := heap.Pop(&s.open).(nodeID)
		n := s.arena.at(id)
		n.Open = false

		if n.Cell == s.destination {
			s.finalNode = id
			s.stats.Recycled = s.arena.recycled
			return s.reconstruct(start, dst), true
		}

		if !s.expand(id) {
			return s.fail(dst, true)
		}
	}

	return s.fail(dst, false)
}

func (s *SearchContext) configure(opts Options) {
	s.opts = opts
	if opts.AllowDiagonals {
		s.distance = euclideanDistance
	} else {
		s.distance = manhattanDistance
	}
	s.evaluator.source = s.source
	s.evaluator.grid = opts.Grid
	s.evaluator.border = opts.Border
	s.evaluator.method = opts.CollisionMethod
}

// reset returns every node to the pool. Nothing but configuration and the
// pool survives between searches.
func (s *SearchContext) reset() {
	s.arena.reset()
	clear(s.cells)
	s.open.clear()
	s.finalNode = noNode
	s.stats = Stats{}
}

func (s *SearchContext) fail(dst []gpmath.Vec2, exhausted bool) ([]gpmath.Vec2, bool) {
	s.stats.Exhausted = exhausted
	s.stats.Recycled = s.arena.recycled
	s.log.Debug("no path found",
		zap.Int("start_x", s.start.X), zap.Int("start_y", s.start.Y),
		zap.Int("dest_x", s.destination.X), zap.Int("dest_y", s.destination.Y),
		zap.Int("iterations", s.stats.Iterations),
		zap.Int("materialized", s.stats.Materialized),
		zap.Float64("bound", s.stats.MaxIterations),
		zap.Bool("exhausted", exhausted))
	return dst, false
}

// expand relaxes the neighbors of a closed node. It returns false when the
// node budget ran out.
func (s *SearchContext) expand(id nodeID) bool {
	deltas := cardinalNeighbors
	if s.opts.AllowDiagonals {
		deltas = allNeighbors
	}
	cell := s.arena.at(id).Cell
	for _, d := range deltas {
		next := Cell{X: cell.X + d.dx, Y: cell.Y + d.dy}
		if !next.inRange() {
			continue
		}
		if !s.relax(id, next, d.factor) {
			return false
		}
	}
	return true
}

func (s *SearchContext) relax(currentID nodeID, c Cell, factor float64) bool {
	neighborID, ok := s.node(c)
	if !ok {
		return false
	}
	current, neighbor := s.arena.at(currentID), s.arena.at(neighborID)
	if !neighbor.Open || neighbor.Cost < 0 {
		return true
	}

	candidate := current.SmallestCost + (current.Cost+neighbor.Cost)/2*factor
	if neighbor.SmallestCost != -1 && neighbor.SmallestCost <= candidate {
		return true
	}

	neighbor.SmallestCost = candidate
	neighbor.Parent = currentID
	neighbor.EstimateCost = candidate + s.distance(c, s.destination)
	if neighbor.heapIndex >= 0 {
		heap.Fix(&s.open, neighbor.heapIndex)
	} else {
		heap.Push(&s.open, neighborID)
	}
	return true
}

// node returns the node of a cell, materializing it on first use. It fails
// once the search has materialized as many nodes as its bound allows.
func (s *SearchContext) node(c Cell) (nodeID, bool) {
	key := c.key()
	if id, ok := s.cells[key]; ok {
		return id, true
	}
	if float64(s.arena.len()) >= s.nodeLimit {
		return noNode, false
	}

	id := s.arena.alloc(c)
	s.arena.at(id).Cost = s.evaluator.evaluate(c)
	s.cells[key] = id
	s.stats.Materialized++
	return id, true
}

func (s *SearchContext) reconstruct(start gpmath.Vec2, dst []gpmath.Vec2) []gpmath.Vec2 {
	dst = dst[:0]
	for id := s.finalNode; id != noNode; id = s.arena.at(id).Parent {
		dst = append(dst, s.opts.Grid.CellCenter(s.arena.at(id).Cell))
	}
	slices.Reverse(dst)
	// Start from the exact position, not the rounded cell, to avoid a snap.
	dst[0] = start
	return dst
}
