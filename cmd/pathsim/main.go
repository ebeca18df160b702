// Package main is the entry point for pathsim, the offline pathfinding
// simulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gridpath/internal/config"
	"github.com/Faultbox/gridpath/internal/logger"
	"github.com/Faultbox/gridpath/internal/scenario"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Named("pathsim")

	if cfg.Simulation.Scenario == "" {
		fmt.Fprintln(os.Stderr, "No scenario: pass --scenario or set simulation.scenario")
		os.Exit(2)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := scenario.NewRunner(cfg)
	err = runOnce(ctx, runner, cfg.Simulation.Scenario, os.Stdout)
	if !cfg.Simulation.Watch {
		if err != nil {
			log.Error("scenario failed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		return
	}

	if err := watch(ctx, log, runner, cfg.Simulation.Scenario, os.Stdout); err != nil {
		log.Error("watch failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// runOnce loads, runs and reports a scenario.
func runOnce(ctx context.Context, runner *scenario.Runner, path string, out io.Writer) error {
	s, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx, s)
	if err != nil {
		return fmt.Errorf("running %s: %w", s.Name, err)
	}
	return writeReport(out, report)
}

func writeReport(out io.Writer, report *scenario.Report) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return enc.Close()
}

// watch re-runs the scenario every time its file changes, until ctx is done.
// Run failures are logged and do not stop the loop.
func watch(ctx context.Context, log *zap.Logger, runner *scenario.Runner, path string, out io.Writer) error {
	w, err := scenario.NewWatcher(path)
	if err != nil {
		return err
	}
	defer w.Close()

	log.Info("watching scenario", zap.String("path", path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			log.Info("scenario changed", zap.String("path", name))
			if err := runOnce(ctx, runner, path, out); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("scenario failed", zap.Error(err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		}
	}
}
