// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package hook

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/canonical/software-inventory-collector-operator/pkg/errors"
)

// Runner executes a hook tool and returns its stdout.
// Implementations must convert a nonzero exit into a non-nil error.
type Runner interface {
	Run(ctx context.Context, tool string, args ...string) ([]byte, error)
}

// ExecRunner runs hook tools found on PATH. Inside a hook context the unit
// agent places the jujuc symlinks (config-get, relation-get, status-set, ...)
// on PATH, so lookup by bare name is sufficient.
type ExecRunner struct{}

// Run executes the named hook tool and returns its stdout. Stderr is folded
// into the returned error on failure.
func (ExecRunner) Run(ctx context.Context, tool string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeHookToolFailed,
			fmt.Sprintf("%s not found in PATH", tool), err)
	}

	out, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		detail := err.Error()
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, errors.WrapWithContext(errors.ErrCodeHookToolFailed,
			fmt.Sprintf("%s failed: %s", tool, detail), err,
			map[string]any{"tool": tool, "args": args})
	}

	return out, nil
}
