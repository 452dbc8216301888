// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package charm

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/canonical/software-inventory-collector-operator/pkg/collector"
	"github.com/canonical/software-inventory-collector-operator/pkg/hook"
	"github.com/canonical/software-inventory-collector-operator/pkg/snap"
)

// HandleInstall installs the collector snap and assesses unit status. A
// snap file attached as a charm resource takes precedence over the store;
// without one, the snap is installed or refreshed from the configured
// channel. Serves both the install and upgrade-charm events.
func (c *Charm) HandleInstall(ctx context.Context) error {
	if err := c.Tools.StatusSet(ctx, hook.StatusMaintenance, "Installing collector snap."); err != nil {
		slog.Warn("failed to set maintenance status", slog.String("error", err.Error()))
	}

	if path := c.SnapPath(ctx); path != "" {
		if err := c.Snap.InstallLocal(ctx, path); err != nil {
			return err
		}
	} else {
		if err := c.Snap.EnsureLatest(ctx, collector.SnapName, c.snapChannel(ctx)); err != nil {
			return err
		}
	}

	if version, err := c.Snap.InstalledVersion(ctx, collector.SnapName); err != nil {
		slog.Warn("failed to read installed snap version", slog.String("error", err.Error()))
	} else if err := c.Tools.ApplicationVersionSet(ctx, version); err != nil {
		slog.Warn("failed to set application version", slog.String("error", err.Error()))
	}

	return c.AssessStatus(ctx)
}

// HandleReconfigure re-renders the collector configuration and assesses
// unit status. Config changes and exporter relation changes and departures
// all receive identical handling.
func (c *Charm) HandleReconfigure(ctx context.Context) error {
	if err := c.Renderer.Render(ctx); err != nil {
		return err
	}
	return c.AssessStatus(ctx)
}

// AssessStatus probes collector health with a dry run and reports the
// resulting unit status: active when the probe passes, blocked otherwise.
func (c *Charm) AssessStatus(ctx context.Context) error {
	if c.Collector.Run(ctx, true) {
		return c.Tools.StatusSet(ctx, hook.StatusActive, statusMessageReady)
	}
	return c.Tools.StatusSet(ctx, hook.StatusBlocked, statusMessageBlocked)
}

// HandleCollect runs a full collection on operator demand. The outcome is
// reported through the action result; unit status is left untouched.
func (c *Charm) HandleCollect(ctx context.Context) error {
	collectionID := uuid.NewString()
	slog.Info("starting collection", slog.String("collection_id", collectionID))

	if !c.Collector.Run(ctx, false) {
		return c.Tools.ActionFail(ctx, actionFailMessage)
	}

	return c.Tools.ActionSet(ctx, map[string]string{
		"result":        actionResultCompleted,
		"collection-id": collectionID,
	})
}

// snapChannel reads the snap_channel config option, defaulting to the
// stable channel when unset or unreadable.
func (c *Charm) snapChannel(ctx context.Context) string {
	options, err := c.Tools.ConfigGet(ctx)
	if err != nil {
		slog.Warn("failed to read charm config, using default snap channel",
			slog.String("error", err.Error()))
		return snap.DefaultChannel
	}
	if channel := options.String("snap_channel"); channel != "" {
		return channel
	}
	return snap.DefaultChannel
}
