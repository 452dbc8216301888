// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/canonical/software-inventory-collector-operator/pkg/errors"
)

// Status is a unit workload status understood by status-set.
type Status string

const (
	// StatusActive means the unit is ready and operational.
	StatusActive Status = "active"
	// StatusBlocked means the unit needs operator intervention.
	StatusBlocked Status = "blocked"
	// StatusMaintenance means the unit is busy with a lifecycle operation.
	StatusMaintenance Status = "maintenance"
)

// Values holds string-convertible settings returned by config-get and
// relation-get. Missing keys and non-string values read as empty strings,
// mirroring how absent relation data must surface as empty rather than fail.
type Values map[string]any

// String returns the value for key as a string, or "" when the key is
// absent, null, or not a string.
func (v Values) String(key string) string {
	raw, ok := v[key]
	if !ok || raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Sprintf("%v", raw)
	}
	return s
}

// Tools provides typed access to the juju hook tools available inside a
// hook context. All calls shell out through the configured Runner.
type Tools struct {
	runner Runner
}

// NewTools creates a Tools instance using the given runner. A nil runner
// defaults to ExecRunner.
func NewTools(runner Runner) *Tools {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Tools{runner: runner}
}

// ConfigGet returns all charm configuration options.
func (t *Tools) ConfigGet(ctx context.Context) (Values, error) {
	out, err := t.runner.Run(ctx, "config-get", "--format=json")
	if err != nil {
		return nil, err
	}

	values := Values{}
	if err := json.Unmarshal(out, &values); err != nil {
		return nil, errors.Wrap(errors.ErrCodeHookToolFailed,
			"failed to parse config-get output", err)
	}
	return values, nil
}

// RelationIDs returns the IDs of all established relations with the given
// name, e.g. ["inventory-exporter:0"].
func (t *Tools) RelationIDs(ctx context.Context, name string) ([]string, error) {
	out, err := t.runner.Run(ctx, "relation-ids", name, "--format=json")
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(out, &ids); err != nil {
		return nil, errors.Wrap(errors.ErrCodeHookToolFailed,
			"failed to parse relation-ids output", err)
	}
	return ids, nil
}

// RelationList returns the remote unit names participating in the relation.
func (t *Tools) RelationList(ctx context.Context, relationID string) ([]string, error) {
	out, err := t.runner.Run(ctx, "relation-list", "-r", relationID, "--format=json")
	if err != nil {
		return nil, err
	}

	var units []string
	if err := json.Unmarshal(out, &units); err != nil {
		return nil, errors.Wrap(errors.ErrCodeHookToolFailed,
			"failed to parse relation-list output", err)
	}
	return units, nil
}

// RelationGet returns the settings the named remote unit advertised on the
// relation.
func (t *Tools) RelationGet(ctx context.Context, relationID, unit string) (Values, error) {
	out, err := t.runner.Run(ctx, "relation-get", "-r", relationID, "--format=json", "-", unit)
	if err != nil {
		return nil, err
	}

	values := Values{}
	if err := json.Unmarshal(out, &values); err != nil {
		return nil, errors.Wrap(errors.ErrCodeHookToolFailed,
			"failed to parse relation-get output", err)
	}
	return values, nil
}

// StatusSet reports the unit workload status to the controller.
func (t *Tools) StatusSet(ctx context.Context, status Status, message string) error {
	_, err := t.runner.Run(ctx, "status-set", string(status), message)
	return err
}

// ActionSet records result values for the running action.
func (t *Tools) ActionSet(ctx context.Context, results map[string]string) error {
	args := make([]string, 0, len(results))
	for k, v := range results {
		args = append(args, fmt.Sprintf("%s=%s", k, v))
	}
	_, err := t.runner.Run(ctx, "action-set", args...)
	return err
}

// ActionFail marks the running action as failed with the given message.
func (t *Tools) ActionFail(ctx context.Context, message string) error {
	_, err := t.runner.Run(ctx, "action-fail", message)
	return err
}

// ResourceGet fetches the named charm resource and returns its local path.
// The tool errors when the resource was never attached.
func (t *Tools) ResourceGet(ctx context.Context, name string) (string, error) {
	out, err := t.runner.Run(ctx, "resource-get", name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeResourceUnavailable,
			fmt.Sprintf("resource %q not available", name), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ApplicationVersionSet reports the workload version shown in juju status.
func (t *Tools) ApplicationVersionSet(ctx context.Context, version string) error {
	_, err := t.runner.Run(ctx, "application-version-set", version)
	return err
}
