// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/canonical/software-inventory-collector-operator/pkg/charm"
)

// dispatchPathEnvVar is set by the unit agent to the event being delivered,
// e.g. "hooks/config-changed" or "actions/collect".
const dispatchPathEnvVar = "JUJU_DISPATCH_PATH"

func dispatchCmd() *cli.Command {
	return &cli.Command{
		Name:  "dispatch",
		Usage: "Resolve the event from JUJU_DISPATCH_PATH and run its handler",
		Description: `The charm's dispatch script invokes this command for every delivered
event. The event kind is read from the JUJU_DISPATCH_PATH environment
variable. Events the charm does not observe are ignored, matching the
framework behavior of unobserved hooks.`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			path := os.Getenv(dispatchPathEnvVar)
			if path == "" {
				return fmt.Errorf("%s is not set", dispatchPathEnvVar)
			}

			kind, observed := kindFromDispatchPath(path)
			if !observed {
				return nil
			}
			return charm.New().Dispatch(ctx, kind)
		},
	}
}

// kindFromDispatchPath maps a dispatch path to the event kind it delivers.
// The second return value is false for events the charm does not observe.
func kindFromDispatchPath(path string) (charm.Kind, bool) {
	group, event, ok := strings.Cut(strings.Trim(path, "/"), "/")
	if !ok {
		return "", false
	}

	switch group {
	case "hooks":
		switch kind := charm.Kind(event); kind {
		case charm.KindInstall,
			charm.KindUpgradeCharm,
			charm.KindStart,
			charm.KindConfigChanged,
			charm.KindRelationJoined,
			charm.KindRelationChanged,
			charm.KindRelationDeparted:
			return kind, true
		}
	case "actions":
		if charm.Kind(event) == charm.KindCollectAction {
			return charm.KindCollectAction, true
		}
	}

	return "", false
}
