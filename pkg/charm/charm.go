// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package charm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/canonical/software-inventory-collector-operator/pkg/collector"
	"github.com/canonical/software-inventory-collector-operator/pkg/errors"
	"github.com/canonical/software-inventory-collector-operator/pkg/hook"
	"github.com/canonical/software-inventory-collector-operator/pkg/snap"
)

// ResourceName is the charm resource that may carry a locally built
// collector snap.
const ResourceName = "collector-snap"

const (
	statusMessageReady   = "Unit ready."
	statusMessageBlocked = "Collector is unable to run. Please see logs."

	actionResultCompleted = "Collection completed."
	actionFailMessage     = "Collection failed. See logs for more info."
)

// Kind identifies a lifecycle event or action delivered to the charm.
type Kind string

const (
	KindInstall          Kind = "install"
	KindUpgradeCharm     Kind = "upgrade-charm"
	KindStart            Kind = "start"
	KindConfigChanged    Kind = "config-changed"
	KindRelationJoined   Kind = collector.RelationName + "-relation-joined"
	KindRelationChanged  Kind = collector.RelationName + "-relation-changed"
	KindRelationDeparted Kind = collector.RelationName + "-relation-departed"
	KindCollectAction    Kind = "collect"
)

// Charm is the control component managing the collector snap: it installs
// the snap, renders its configuration, probes its health, and reports unit
// status. One Charm instance lives for one event dispatch.
type Charm struct {
	Tools     *hook.Tools
	Snap      *snap.Client
	Renderer  *collector.Renderer
	Collector *collector.Collector

	// Resource lookups are expensive (the agent may download the file
	// from the controller), so the resolved path is memoized for the
	// lifetime of the instance.
	snapPath       string
	snapPathCached bool

	handlers map[Kind]func(context.Context) error
}

// New creates a Charm wired against the live hook environment.
func New() *Charm {
	tools := hook.NewTools(hook.ExecRunner{})
	return NewWithTools(tools)
}

// NewWithTools creates a Charm using the given hook tools, with default
// snap, renderer and collector wiring. Tests replace the remaining
// collaborators directly on the returned struct.
func NewWithTools(tools *hook.Tools) *Charm {
	c := &Charm{
		Tools: tools,
		Snap:  &snap.Client{},
		Renderer: &collector.Renderer{
			Tools:    tools,
			Path:     collector.DefaultConfigPath,
			Relation: collector.RelationName,
		},
		Collector: &collector.Collector{
			Binary:     collector.SnapName,
			ConfigPath: collector.DefaultConfigPath,
		},
	}

	c.handlers = map[Kind]func(context.Context) error{
		KindInstall:          c.HandleInstall,
		KindUpgradeCharm:     c.HandleInstall,
		KindStart:            c.AssessStatus,
		KindConfigChanged:    c.HandleReconfigure,
		KindRelationJoined:   c.HandleReconfigure,
		KindRelationChanged:  c.HandleReconfigure,
		KindRelationDeparted: c.HandleReconfigure,
		KindCollectAction:    c.HandleCollect,
	}

	return c
}

// Dispatch runs the handler registered for the given event kind.
func (c *Charm) Dispatch(ctx context.Context, kind Kind) error {
	handler, ok := c.handlers[kind]
	if !ok {
		return errors.New(errors.ErrCodeInvalidEvent,
			fmt.Sprintf("no handler registered for event %q", kind))
	}

	slog.Info("dispatching event", slog.String("event", string(kind)))
	return handler(ctx)
}

// SnapPath returns the local path of the collector snap attached as a charm
// resource, or "" when the resource is absent or an empty file. The lookup
// happens once; subsequent calls return the memoized result.
func (c *Charm) SnapPath(ctx context.Context) string {
	if c.snapPathCached {
		return c.snapPath
	}
	c.snapPathCached = true

	path, err := c.Tools.ResourceGet(ctx, ResourceName)
	if err != nil {
		slog.Debug("collector snap resource not available",
			slog.String("error", err.Error()))
		return ""
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		slog.Debug("ignoring empty collector snap resource",
			slog.String("path", path))
		return ""
	}

	c.snapPath = path
	return c.snapPath
}
