// Package config handles pathfinding and simulation configuration.
package config

import (
	"errors"
	"fmt"
)

// Collision methods used to decide whether an obstacle covers a cell.
const (
	CollisionLegacy = "legacy"
	CollisionAABB   = "aabb"
)

// Config holds all settings.
type Config struct {
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// PathfindingConfig holds the per-object pathfinding behavior settings.
// Scenario agents start from these values and may override any field.
type PathfindingConfig struct {
	AllowDiagonals  bool    `yaml:"allow_diagonals"`
	Acceleration    float64 `yaml:"acceleration"`      // world units/s²
	MaxSpeed        float64 `yaml:"max_speed"`         // world units/s
	AngularMaxSpeed float64 `yaml:"angular_max_speed"` // degrees/s, must be positive when rotating
	RotateObject    bool    `yaml:"rotate_object"`
	AngleOffset     float64 `yaml:"angle_offset"` // degrees
	CellWidth       float64 `yaml:"cell_width"`
	CellHeight      float64 `yaml:"cell_height"`
	GridOffsetX     float64 `yaml:"grid_offset_x"`
	GridOffsetY     float64 `yaml:"grid_offset_y"`
	ExtraBorder     float64 `yaml:"extra_border"`

	// MaxComplexityFactor bounds the search: iterations and node
	// materializations are capped at heuristic(start) * factor.
	MaxComplexityFactor float64 `yaml:"max_complexity_factor"`
	CollisionMethod     string  `yaml:"collision_method"`
}

// SimulationConfig holds the offline simulation settings used by pathsim.
type SimulationConfig struct {
	FPS       int    `yaml:"fps"`
	MaxFrames int    `yaml:"max_frames"`
	Scenario  string `yaml:"scenario"`
	Watch     bool   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Pathfinding: DefaultPathfinding(),
		Simulation: SimulationConfig{
			FPS:       60,
			MaxFrames: 60 * 60,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// DefaultPathfinding returns the default behavior settings.
func DefaultPathfinding() PathfindingConfig {
	return PathfindingConfig{
		AllowDiagonals:      true,
		Acceleration:        400,
		MaxSpeed:            200,
		AngularMaxSpeed:     180,
		RotateObject:        true,
		AngleOffset:         0,
		CellWidth:           20,
		CellHeight:          20,
		ExtraBorder:         0,
		MaxComplexityFactor: 50,
		CollisionMethod:     CollisionLegacy,
	}
}

// Validate checks values that would make a search or a simulation meaningless.
func (c *Config) Validate() error {
	if err := c.Pathfinding.Validate(); err != nil {
		return fmt.Errorf("pathfinding: %w", err)
	}
	if c.Simulation.FPS <= 0 {
		return fmt.Errorf("simulation: fps must be positive, got %d", c.Simulation.FPS)
	}
	if c.Simulation.MaxFrames < 0 {
		return fmt.Errorf("simulation: max_frames must not be negative, got %d", c.Simulation.MaxFrames)
	}
	return nil
}

// Validate checks the pathfinding settings.
func (p PathfindingConfig) Validate() error {
	var errs []error
	if p.CellWidth <= 0 || p.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be positive, got %vx%v", p.CellWidth, p.CellHeight))
	}
	if p.MaxComplexityFactor <= 0 {
		errs = append(errs, fmt.Errorf("max_complexity_factor must be positive, got %v", p.MaxComplexityFactor))
	}
	if p.MaxSpeed < 0 || p.Acceleration < 0 || p.AngularMaxSpeed < 0 {
		errs = append(errs, errors.New("speeds and acceleration must not be negative"))
	}
	if p.RotateObject && p.AngularMaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("angular_max_speed must be positive when rotate_object is set, got %v", p.AngularMaxSpeed))
	}
	switch p.CollisionMethod {
	case CollisionLegacy, CollisionAABB, "":
	default:
		errs = append(errs, fmt.Errorf("unknown collision_method %q", p.CollisionMethod))
	}
	return errors.Join(errs...)
}
