package scenario

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gridpath/internal/config"
	"github.com/Faultbox/gridpath/internal/game"
	"github.com/Faultbox/gridpath/internal/game/entity"
	"github.com/Faultbox/gridpath/internal/game/world"
	"github.com/Faultbox/gridpath/internal/logger"
	gpmath "github.com/Faultbox/gridpath/pkg/math"
)

// Report is the outcome of one run.
type Report struct {
	Scenario string `yaml:"scenario"`
	Frames   uint64 `yaml:"frames"`
	// Completed is set when every agent went through all its targets
	// before the frame limit.
	Completed bool          `yaml:"completed"`
	Agents    []AgentReport `yaml:"agents"`
}

// AgentReport describes where an agent ended up.
type AgentReport struct {
	Name     string         `yaml:"name"`
	Final    Point          `yaml:"final"`
	Facing   string         `yaml:"facing"`
	State    string         `yaml:"state"`
	Distance float64        `yaml:"distance"`
	Targets  []TargetReport `yaml:"targets"`
}

// TargetReport describes one MoveTo request.
type TargetReport struct {
	Target         Point  `yaml:"target"`
	Found          bool   `yaml:"found"`
	Reached        bool   `yaml:"reached"`
	Waypoints      int    `yaml:"waypoints"`
	RequestedFrame uint64 `yaml:"requested_frame"`
	ArrivedFrame   uint64 `yaml:"arrived_frame,omitempty"`
}

// Runner runs scenarios against a configuration.
type Runner struct {
	cfg *config.Config
	log *zap.Logger
}

// NewRunner creates a runner. Scenario settings override cfg.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		cfg: cfg,
		log: logger.Named("scenario"),
	}
}

// Run simulates a scenario until every agent is done with its targets or
// the frame limit is reached. Unreachable targets are reported and skipped.
func (r *Runner) Run(ctx context.Context, s *Scenario) (*Report, error) {
	loop := game.Config{FPS: r.cfg.Simulation.FPS, MaxFrames: r.cfg.Simulation.MaxFrames}
	if s.FPS > 0 {
		loop.FPS = s.FPS
	}
	if s.MaxFrames > 0 {
		loop.MaxFrames = s.MaxFrames
	}

	g, err := game.New(loop)
	if err != nil {
		return nil, err
	}
	defer g.Close()
	w := g.World()

	for i, spec := range s.Obstacles {
		if err := spawnObstacle(w, spec); err != nil {
			return nil, fmt.Errorf("obstacle %d (%s): %w", i, spec.Name, err)
		}
	}

	agents := make([]*agentRun, len(s.Agents))
	for i, spec := range s.Agents {
		settings, err := s.AgentSettings(r.cfg.Pathfinding, i)
		if err != nil {
			return nil, err
		}
		o := w.Spawn(spec.Name, spec.X, spec.Y, spec.Width, spec.Height)
		c, err := w.AddPathfinding(o, settings)
		if err != nil {
			return nil, err
		}
		agents[i] = &agentRun{
			object:     o,
			controller: c,
			targets:    spec.Targets,
			last:       o.Position(),
			report:     AgentReport{Name: spec.Name},
			log:        r.log,
		}
		agents[i].requestNext(0)
	}

	r.log.Info("running scenario",
		zap.String("scenario", s.Name),
		zap.Int("obstacles", len(s.Obstacles)),
		zap.Int("agents", len(agents)),
		zap.Int("fps", loop.FPS))

	completed := allDone(agents)
	if !completed {
		err = g.Run(ctx, func(frame uint64) bool {
			for _, a := range agents {
				a.update(frame)
			}
			completed = allDone(agents)
			return !completed
		})
		if err != nil {
			return nil, err
		}
	}

	report := &Report{
		Scenario:  s.Name,
		Frames:    w.Frame(),
		Completed: completed,
		Agents:    make([]AgentReport, len(agents)),
	}
	for i, a := range agents {
		report.Agents[i] = a.finish()
	}

	r.log.Info("scenario finished",
		zap.String("scenario", s.Name),
		zap.Uint64("frames", report.Frames),
		zap.Bool("completed", completed))
	return report, nil
}

func spawnObstacle(w *world.World, spec ObstacleSpec) error {
	o := w.Spawn(spec.Name, spec.X+spec.Width/2, spec.Y+spec.Height/2, spec.Width, spec.Height)
	if spec.Velocity != (Point{}) {
		// Attached first so the obstacle re-indexes after moving.
		if err := o.Attach(&mover{velocity: gpmath.Vec2{X: spec.Velocity.X, Y: spec.Velocity.Y}}); err != nil {
			return err
		}
	}
	_, err := w.AddObstacle(o, spec.Impassable, spec.Cost)
	return err
}

func allDone(agents []*agentRun) bool {
	for _, a := range agents {
		if !a.done {
			return false
		}
	}
	return true
}

type agentRun struct {
	object     *entity.Object
	controller *world.PathfindingController
	targets    []Point
	current    int
	done       bool
	last       gpmath.Vec2
	report     AgentReport

	log *zap.Logger
}

// requestNext moves toward the current target, skipping unreachable ones.
func (a *agentRun) requestNext(frame uint64) {
	for a.current < len(a.targets) {
		target := a.targets[a.current]
		found := a.controller.MoveTo(target.X, target.Y)
		a.report.Targets = append(a.report.Targets, TargetReport{
			Target:         target,
			Found:          found,
			Waypoints:      a.controller.NodeCount(),
			RequestedFrame: frame,
		})
		if found {
			return
		}
		a.log.Debug("target unreachable",
			zap.String("agent", a.report.Name),
			zap.Float64("x", target.X), zap.Float64("y", target.Y))
		a.current++
	}
	a.done = true
}

func (a *agentRun) update(frame uint64) {
	position := a.object.Position()
	a.report.Distance += position.Distance(a.last)
	a.last = position

	if a.done || !a.controller.DestinationReached() {
		return
	}
	t := &a.report.Targets[len(a.report.Targets)-1]
	t.Reached = true
	t.ArrivedFrame = frame
	a.current++
	a.requestNext(frame)
}

func (a *agentRun) finish() AgentReport {
	a.report.Final = Point{X: a.object.X, Y: a.object.Y}
	a.report.Facing = a.object.Facing()
	a.report.State = a.controller.State().String()
	return a.report
}

// mover translates its owner at a constant velocity.
type mover struct {
	velocity gpmath.Vec2
}

func (m *mover) Name() string { return "mover" }

func (m *mover) OnAttach(*entity.Object) {}

func (m *mover) OnSimulationStep(owner *entity.Object, dt float64) {
	p := owner.Position().Add(m.velocity.Scale(dt))
	owner.SetPosition(p.X, p.Y)
}

func (m *mover) OnDetach(*entity.Object) {}
