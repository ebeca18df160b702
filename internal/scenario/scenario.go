// Package scenario loads YAML simulation scenarios and runs them
// deterministically.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gridpath/internal/config"
)

// ErrNoAgents is returned for a scenario without agents.
var ErrNoAgents = errors.New("scenario: no agents")

// Point is a world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Scenario describes a scene: its obstacles and the agents moving through it.
type Scenario struct {
	Name      string `yaml:"name"`
	FPS       int    `yaml:"fps"`
	MaxFrames int    `yaml:"max_frames"`

	// Pathfinding overrides the configured settings for every agent.
	Pathfinding yaml.Node `yaml:"pathfinding"`

	Obstacles []ObstacleSpec `yaml:"obstacles"`
	Agents    []AgentSpec    `yaml:"agents"`
}

// ObstacleSpec is a box given by its top-left corner and size.
type ObstacleSpec struct {
	Name       string  `yaml:"name"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Impassable bool    `yaml:"impassable"`
	Cost       float64 `yaml:"cost"`
	// Velocity moves the obstacle every frame, in world units/s.
	Velocity Point `yaml:"velocity"`
}

// AgentSpec is a moving object, centered on its position, visiting its
// targets in order.
type AgentSpec struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Pathfinding overrides the scenario-wide settings for this agent.
	Pathfinding yaml.Node `yaml:"pathfinding"`
	Targets     []Point   `yaml:"targets"`
}

// Parse decodes a scenario. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("scenario: empty document")
		}
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses a scenario file. A scenario without a name is
// named after its file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Validate checks the scenario's structure. Pathfinding overrides are
// checked when agents are resolved.
func (s *Scenario) Validate() error {
	var errs []error
	if len(s.Agents) == 0 {
		errs = append(errs, ErrNoAgents)
	}
	if s.FPS < 0 || s.MaxFrames < 0 {
		errs = append(errs, errors.New("fps and max_frames must not be negative"))
	}

	for i, o := range s.Obstacles {
		if o.Width < 0 || o.Height < 0 {
			errs = append(errs, fmt.Errorf("obstacle %d (%s): negative size", i, o.Name))
		}
		if o.Cost < 0 {
			errs = append(errs, fmt.Errorf("obstacle %d (%s): negative cost", i, o.Name))
		}
	}

	names := make(map[string]bool, len(s.Agents))
	for i, a := range s.Agents {
		switch {
		case a.Name == "":
			errs = append(errs, fmt.Errorf("agent %d: missing name", i))
		case names[a.Name]:
			errs = append(errs, fmt.Errorf("agent %d: duplicate name %q", i, a.Name))
		}
		names[a.Name] = true
		if a.Width < 0 || a.Height < 0 {
			errs = append(errs, fmt.Errorf("agent %q: negative size", a.Name))
		}
	}
	return errors.Join(errs...)
}

// AgentSettings layers the scenario-wide and the agent's overrides on top
// of base, in that order.
func (s *Scenario) AgentSettings(base config.PathfindingConfig, agent int) (config.PathfindingConfig, error) {
	cfg := base
	if err := decodeOverride(&s.Pathfinding, &cfg); err != nil {
		return cfg, fmt.Errorf("scenario pathfinding: %w", err)
	}
	a := &s.Agents[agent]
	if err := decodeOverride(&a.Pathfinding, &cfg); err != nil {
		return cfg, fmt.Errorf("agent %q pathfinding: %w", a.Name, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("agent %q pathfinding: %w", a.Name, err)
	}
	return cfg, nil
}

func decodeOverride(node *yaml.Node, cfg *config.PathfindingConfig) error {
	if node.IsZero() {
		return nil
	}
	return node.Decode(cfg)
}
