// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/canonical/software-inventory-collector-operator/pkg/logging"
)

const name = "sicharm"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Run executes the charm CLI with the given arguments.
func Run(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cli.Command{
		Name:  name,
		Usage: "software-inventory-collector charm hook dispatcher",
		Description: `Manages the lifecycle of the software-inventory-collector snap on this
unit: installs the snap, renders its configuration from charm config and
inventory-exporter relation data, probes collector health, and reports
unit status.

Invoked by the charm dispatch script with the hook name taken from
JUJU_DISPATCH_PATH, or directly with an explicit hook subcommand.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: append(hookCmds(),
			dispatchCmd(),
			collectCmd(),
			versionCmd(),
		),
	}

	return root.Run(ctx, args)
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Printf("%s %s (commit %s, built %s)\n", name, version, commit, date)
			return nil
		},
	}
}
