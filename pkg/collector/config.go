// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package collector

// SnapName is the name of the collector snap and of the binary it exposes.
const SnapName = "software-inventory-collector"

// DefaultConfigPath is where the collector snap reads its configuration.
const DefaultConfigPath = "/var/snap/" + SnapName + "/current/collector.yaml"

// RelationName is the relation over which exporter units advertise their
// endpoints.
const RelationName = "inventory-exporter"

// Config is the document consumed by the collector binary. It is always
// written as a whole; every render fully replaces the previous file.
type Config struct {
	Settings       Settings       `yaml:"settings"`
	JujuController JujuController `yaml:"juju_controller"`
	Targets        []Target       `yaml:"targets"`
}

// Settings holds the collection options shared by all targets.
type Settings struct {
	CollectionPath string `yaml:"collection_path"`
	Customer       string `yaml:"customer"`
	Site           string `yaml:"site"`
}

// JujuController holds the API connection details for the controller the
// collector queries for model data.
type JujuController struct {
	Endpoint string `yaml:"endpoint"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	CACert   string `yaml:"ca_cert"`
}

// Target describes one related exporter unit to collect from.
type Target struct {
	Endpoint string `yaml:"endpoint"`
	Hostname string `yaml:"hostname"`
	Customer string `yaml:"customer"`
	Site     string `yaml:"site"`
	Model    string `yaml:"model"`
}
