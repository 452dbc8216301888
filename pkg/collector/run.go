// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes a command and returns its combined stdout and stderr.
type Runner interface {
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Collector invokes the collector binary installed by the snap.
type Collector struct {
	// Binary is the collector executable. Defaults to SnapName.
	Binary string

	// ConfigPath is passed to the collector via -c. Defaults to
	// DefaultConfigPath.
	ConfigPath string

	// Runner executes the command. Defaults to a real subprocess runner.
	Runner Runner
}

// Run executes the collector synchronously and reports whether it exited
// zero. With dryRun the collector only validates its configuration and data
// source connectivity without producing output artifacts.
//
// All invocation failures are converted to a false return; output is logged
// either way and never parsed.
func (c *Collector) Run(ctx context.Context, dryRun bool) bool {
	binary := c.Binary
	if binary == "" {
		binary = SnapName
	}
	configPath := c.ConfigPath
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	runner := c.Runner
	if runner == nil {
		runner = execRunner{}
	}

	args := []string{"-c", configPath}
	if dryRun {
		args = append(args, "--dry-run")
	}
	cmdline := binary + " " + strings.Join(args, " ")

	out, err := runner.CombinedOutput(ctx, binary, args...)
	if err != nil {
		slog.Error("collector execution failed",
			slog.String("cmd", cmdline),
			slog.String("output", string(out)),
			slog.String("error", err.Error()))
		return false
	}

	slog.Debug("collector execution successful",
		slog.String("cmd", cmdline),
		slog.String("output", string(out)))
	return true
}
