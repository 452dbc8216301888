// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/canonical/software-inventory-collector-operator/pkg/charm"
)

// hookCmds returns one subcommand per lifecycle hook the charm observes.
func hookCmds() []*cli.Command {
	hooks := []struct {
		name  string
		usage string
		kind  charm.Kind
	}{
		{"install", "Install the collector snap and assess status", charm.KindInstall},
		{"upgrade-charm", "Reinstall the collector snap after a charm upgrade", charm.KindUpgradeCharm},
		{"start", "Assess collector status", charm.KindStart},
		{"config-changed", "Re-render collector config and assess status", charm.KindConfigChanged},
		{"relation-joined", "Handle a joining inventory-exporter unit", charm.KindRelationJoined},
		{"relation-changed", "Handle changed inventory-exporter relation data", charm.KindRelationChanged},
		{"relation-departed", "Handle a departing inventory-exporter unit", charm.KindRelationDeparted},
	}

	cmds := make([]*cli.Command, 0, len(hooks))
	for _, h := range hooks {
		kind := h.kind
		cmds = append(cmds, &cli.Command{
			Name:  h.name,
			Usage: h.usage,
			Action: func(ctx context.Context, _ *cli.Command) error {
				return charm.New().Dispatch(ctx, kind)
			},
		})
	}
	return cmds
}

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:  "collect",
		Usage: "Run a full inventory collection (the collect action)",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return charm.New().Dispatch(ctx, charm.KindCollectAction)
		},
	}
}
