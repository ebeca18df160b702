package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/gridpath/internal/config"
)

const gapScenario = `
name: gap
pathfinding:
  rotate_object: false
obstacles:
  - name: wall-top
    x: 90
    y: -210
    width: 20
    height: 260
    impassable: true
  - name: wall-bottom
    x: 90
    y: 70
    width: 20
    height: 140
    impassable: true
agents:
  - name: runner
    targets:
      - {x: 200, y: 0}
      - {x: 0, y: 0}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(gapScenario))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Name != "gap" || len(s.Obstacles) != 2 || len(s.Agents) != 1 {
		t.Fatalf("unexpected scenario: %+v", s)
	}
	if !s.Obstacles[0].Impassable || s.Obstacles[1].Y != 70 {
		t.Errorf("obstacles = %+v", s.Obstacles)
	}
	if got := s.Agents[0].Targets; len(got) != 2 || got[0] != (Point{X: 200}) {
		t.Errorf("targets = %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{"empty", "", nil, "empty"},
		{"no agents", "name: x\n", ErrNoAgents, ""},
		{"unknown key", "agents: [{name: a}]\nspeed: 3\n", nil, "speed"},
		{"duplicate agent", "agents: [{name: a}, {name: a}]\n", nil, "duplicate"},
		{"unnamed agent", "agents: [{x: 1}]\n", nil, "missing name"},
		{"negative cost", "agents: [{name: a}]\nobstacles: [{cost: -1}]\n", nil, "negative cost"},
		{"negative size", "agents: [{name: a, width: -2}]\n", nil, "negative size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corridor.yaml")
	if err := os.WriteFile(path, []byte("agents: [{name: a, targets: [{x: 10, y: 0}]}]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Name != "corridor" {
		t.Errorf("Name = %q, want corridor", s.Name)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestAgentSettings(t *testing.T) {
	input := `
pathfinding:
  max_speed: 75
  collision_method: aabb
agents:
  - name: a
    pathfinding:
      cell_width: 40
  - name: b
  - name: bad
    pathfinding:
      cell_width: -1
  - name: typo
    pathfinding:
      max_speed: fast
`
	s, err := Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	base := config.DefaultPathfinding()

	a, err := s.AgentSettings(base, 0)
	if err != nil {
		t.Fatalf("AgentSettings(a) error = %v", err)
	}
	if a.MaxSpeed != 75 || a.CellWidth != 40 || a.CellHeight != base.CellHeight || a.CollisionMethod != "aabb" {
		t.Errorf("a = %+v", a)
	}
	if a.Acceleration != base.Acceleration {
		t.Errorf("unrelated setting changed: %v", a.Acceleration)
	}

	b, err := s.AgentSettings(base, 1)
	if err != nil {
		t.Fatalf("AgentSettings(b) error = %v", err)
	}
	if b.MaxSpeed != 75 || b.CellWidth != base.CellWidth {
		t.Errorf("b = %+v", b)
	}

	if _, err := s.AgentSettings(base, 2); err == nil {
		t.Error("expected a validation error for a negative cell width")
	}
	if _, err := s.AgentSettings(base, 3); err == nil {
		t.Error("expected a decode error for a non-numeric speed")
	}
	if base.MaxSpeed == 75 {
		t.Error("base settings were modified")
	}
}
