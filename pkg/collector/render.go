// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/canonical/software-inventory-collector-operator/pkg/errors"
	"github.com/canonical/software-inventory-collector-operator/pkg/hook"
)

// Renderer assembles the collector configuration from charm config options
// and exporter relation data and writes it to disk.
type Renderer struct {
	// Tools provides access to the hook environment.
	Tools *hook.Tools

	// Path is the destination file. Defaults to DefaultConfigPath.
	Path string

	// Relation is the exporter relation name. Defaults to RelationName.
	Relation string
}

// Render builds the full configuration document from current charm config
// and relation data and overwrites the configuration file. The document is
// rebuilt from scratch on every call; with unchanged inputs the output is
// byte-identical.
func (r *Renderer) Render(ctx context.Context) error {
	cfg, err := r.Build(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed,
			"failed to serialize collector config", err)
	}

	path := r.path()
	if err := writeFileAtomic(path, data); err != nil {
		return errors.WrapWithContext(errors.ErrCodeRenderFailed,
			"failed to write collector config", err,
			map[string]any{"path": path})
	}

	slog.Debug("rendered collector config",
		slog.String("path", path),
		slog.Int("targets", len(cfg.Targets)))
	return nil
}

// Build assembles the configuration document without writing it.
func (r *Renderer) Build(ctx context.Context) (*Config, error) {
	options, err := r.Tools.ConfigGet(ctx)
	if err != nil {
		return nil, err
	}

	caCert, err := base64.StdEncoding.DecodeString(options.String("juju_ca_cert"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed,
			"juju_ca_cert is not valid base64", err)
	}

	customer := options.String("customer")
	site := options.String("site")

	cfg := &Config{
		Settings: Settings{
			CollectionPath: options.String("collection_path"),
			Customer:       customer,
			Site:           site,
		},
		JujuController: JujuController{
			Endpoint: options.String("juju_endpoint"),
			Username: options.String("juju_username"),
			Password: options.String("juju_password"),
			CACert:   string(caCert),
		},
		Targets: []Target{},
	}

	targets, err := r.buildTargets(ctx, customer, site)
	if err != nil {
		return nil, err
	}
	cfg.Targets = targets

	return cfg, nil
}

// buildTargets produces one target per remote exporter unit. Relations and
// units are visited in sorted order so renders are deterministic.
func (r *Renderer) buildTargets(ctx context.Context, customer, site string) ([]Target, error) {
	ids, err := r.Tools.RelationIDs(ctx, r.relation())
	if err != nil {
		return nil, err
	}
	sortRelationIDs(ids)

	targets := []Target{}
	for _, id := range ids {
		units, err := r.Tools.RelationList(ctx, id)
		if err != nil {
			return nil, err
		}
		sort.Strings(units)

		for _, unit := range units {
			data, err := r.Tools.RelationGet(ctx, id, unit)
			if err != nil {
				// A unit can depart between relation-list and
				// relation-get; treat its settings as gone.
				slog.Warn("failed to read relation data",
					slog.String("relation", id),
					slog.String("unit", unit),
					slog.String("error", err.Error()))
				data = hook.Values{}
			}

			targets = append(targets, Target{
				Endpoint: fmt.Sprintf("%s:%s",
					data.String("private-address"), data.String("port")),
				Hostname: data.String("hostname"),
				Customer: customer,
				Site:     site,
				Model:    data.String("model"),
			})
		}
	}

	return targets, nil
}

func (r *Renderer) path() string {
	if r.Path == "" {
		return DefaultConfigPath
	}
	return r.Path
}

func (r *Renderer) relation() string {
	if r.Relation == "" {
		return RelationName
	}
	return r.Relation
}

// sortRelationIDs orders relation IDs of the form "name:N" by their numeric
// suffix, so repeated renders enumerate relations identically.
func sortRelationIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return relationIDNumber(ids[i]) < relationIDNumber(ids[j])
	})
}

func relationIDNumber(id string) int {
	_, num, ok := strings.Cut(id, ":")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0
	}
	return n
}

// writeFileAtomic writes data to a temp file in the destination directory
// and renames it over path, so a concurrent reader never observes a
// partially written document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".collector-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
