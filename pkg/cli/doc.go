// Package cli implements the command-line interface of the sicharm binary.
//
// The binary is the charm's hook dispatcher. Each observed lifecycle hook
// maps to a subcommand:
//
//	sicharm install
//	sicharm upgrade-charm
//	sicharm start
//	sicharm config-changed
//	sicharm relation-joined | relation-changed | relation-departed
//	sicharm collect
//
// In a deployed charm the dispatch script runs
//
//	sicharm dispatch
//
// which resolves the event from JUJU_DISPATCH_PATH and silently ignores
// events the charm does not observe.
//
// # Global Flags
//
//	--log-level   Log level: debug, info, warn, error (default: info,
//	              also read from LOG_LEVEL)
package cli
