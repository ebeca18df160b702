package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gridpath/internal/config"
	"github.com/Faultbox/gridpath/internal/scenario"
)

func TestRunOnceWritesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.yaml")
	input := "agents: [{name: a, targets: [{x: 100, y: 0}]}]\n"
	if err := os.WriteFile(path, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runOnce(context.Background(), scenario.NewRunner(config.Default()), path, &out); err != nil {
		t.Fatalf("runOnce() error = %v", err)
	}

	var report scenario.Report
	if err := yaml.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("report is not YAML: %v\n%s", err, out.String())
	}
	if report.Scenario != "line" || !report.Completed {
		t.Errorf("report = %+v", report)
	}
	if len(report.Agents) != 1 || report.Agents[0].Final != (scenario.Point{X: 100}) {
		t.Errorf("agents = %+v", report.Agents)
	}
	if !strings.Contains(out.String(), "arrived_frame:") {
		t.Errorf("report misses arrival frames:\n%s", out.String())
	}
}

func TestRunOnceMissingFile(t *testing.T) {
	err := runOnce(context.Background(), scenario.NewRunner(config.Default()), filepath.Join(t.TempDir(), "nope.yaml"), &bytes.Buffer{})
	if err == nil {
		t.Error("expected an error for a missing scenario")
	}
}
