// Package game implements the fixed-step simulation loop.
package game

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gridpath/internal/game/world"
	"github.com/Faultbox/gridpath/internal/logger"
)

// ErrInvalidFPS is returned for a non-positive frame rate.
var ErrInvalidFPS = errors.New("game: fps must be positive")

// Config holds loop settings.
type Config struct {
	FPS int
	// MaxFrames stops the loop after this many frames. 0 means no limit.
	MaxFrames int
}

// UpdateFunc runs after every world step. Returning false stops the loop.
type UpdateFunc func(frame uint64) bool

// Game steps a world at a fixed rate. Time is simulated: frames run back
// to back without waiting on a clock.
type Game struct {
	config  Config
	running bool
	world   *world.World

	log *zap.Logger
}

// New creates a game with an empty world.
func New(cfg Config) (*Game, error) {
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFPS, cfg.FPS)
	}
	if cfg.MaxFrames < 0 {
		cfg.MaxFrames = 0
	}

	g := &Game{
		config: cfg,
		world:  world.New(),
		log:    logger.Named("game"),
	}
	g.log.Debug("game initialized", zap.Int("fps", cfg.FPS), zap.Int("max_frames", cfg.MaxFrames))
	return g, nil
}

// World returns the simulated world.
func (g *Game) World() *world.World {
	return g.world
}

// Run steps the world until update returns false, the frame limit is hit,
// Stop is called or ctx is done. It returns ctx's error in the latter case.
func (g *Game) Run(ctx context.Context, update UpdateFunc) error {
	g.running = true
	defer func() { g.running = false }()

	dt := 1 / float64(g.config.FPS)
	g.log.Debug("starting simulation loop", zap.Float64("dt", dt))

	for g.running {
		if err := ctx.Err(); err != nil {
			return err
		}

		g.world.Step(dt)
		frame := g.world.Frame()

		if update != nil && !update(frame) {
			break
		}
		if g.config.MaxFrames > 0 && frame >= uint64(g.config.MaxFrames) {
			g.log.Debug("frame limit reached", zap.Uint64("frame", frame))
			break
		}
		if frame%uint64(g.config.FPS) == 0 {
			g.log.Debug("simulated second", zap.Uint64("frame", frame),
				zap.Int("objects", g.world.Objects().Count()),
				zap.Int("obstacles", g.world.Obstacles().Len()))
		}
	}

	return nil
}

// Stop ends the loop after the current frame. It is meant to be called
// from the update function.
func (g *Game) Stop() {
	g.running = false
}

// Close releases the world.
func (g *Game) Close() {
	g.log.Debug("closing game", zap.Uint64("frames", g.world.Frame()))
	g.world.Close()
}
