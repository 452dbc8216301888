// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package snap

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/canonical/software-inventory-collector-operator/pkg/errors"
)

// DefaultChannel is the channel installed from when no explicit channel is
// configured.
const DefaultChannel = "latest/stable"

// Runner executes a command and returns its combined stdout and stderr.
type Runner interface {
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Client manages snaps through the snap command-line tool.
type Client struct {
	// Runner executes snap commands. Defaults to a real subprocess runner.
	Runner Runner
}

func (c *Client) runner() Runner {
	if c.Runner == nil {
		return execRunner{}
	}
	return c.Runner
}

// InstallLocal installs a snap from a local file in dangerous mode, skipping
// store signature verification. Used for snaps delivered as charm resources,
// which have no store provenance.
func (c *Client) InstallLocal(ctx context.Context, path string) error {
	slog.Info("installing snap from local file", slog.String("path", path))

	out, err := c.runner().CombinedOutput(ctx, "snap", "install", "--dangerous", path)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeSnapInstallFailed,
			"local snap install failed", err,
			map[string]any{"path": path, "output": string(out)})
	}
	return nil
}

// EnsureLatest installs the named snap from the given channel, or refreshes
// it to that channel when already installed. An empty channel means
// DefaultChannel.
func (c *Client) EnsureLatest(ctx context.Context, name, channel string) error {
	if channel == "" {
		channel = DefaultChannel
	}

	verb := "install"
	if c.isInstalled(ctx, name) {
		verb = "refresh"
	}
	slog.Info("ensuring snap is at latest channel revision",
		slog.String("snap", name),
		slog.String("channel", channel),
		slog.String("verb", verb))

	out, err := c.runner().CombinedOutput(ctx, "snap", verb, "--channel", channel, name)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeSnapInstallFailed,
			fmt.Sprintf("snap %s failed", verb), err,
			map[string]any{"snap": name, "channel": channel, "output": string(out)})
	}
	return nil
}

// InstalledVersion returns the installed version of the named snap by
// parsing `snap list` output.
func (c *Client) InstalledVersion(ctx context.Context, name string) (string, error) {
	out, err := c.runner().CombinedOutput(ctx, "snap", "list", name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSnapInstallFailed,
			fmt.Sprintf("snap %q is not installed", name), err)
	}

	// Header line, then one line per installed snap:
	//   Name  Version  Rev  Tracking  Publisher  Notes
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == name {
			return fields[1], nil
		}
	}

	return "", errors.New(errors.ErrCodeSnapInstallFailed,
		fmt.Sprintf("snap %q missing from snap list output", name))
}

func (c *Client) isInstalled(ctx context.Context, name string) bool {
	_, err := c.runner().CombinedOutput(ctx, "snap", "list", name)
	return err == nil
}
