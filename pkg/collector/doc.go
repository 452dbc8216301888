// Package collector renders the configuration consumed by the
// software-inventory-collector snap and invokes its binary.
//
// The configuration document has three sections: settings (collection path,
// customer, site), juju_controller (API endpoint and credentials, with the
// CA certificate base64-decoded from the charm option), and targets (one
// entry per related exporter unit, built from the unit's advertised
// private-address, port, hostname and model combined with the charm's own
// customer and site). The file is fully rewritten on every render.
//
// Collector.Run wraps the binary invocation
//
//	software-inventory-collector -c <config-path> [--dry-run]
//
// converting any failure into a boolean result; the dry run serves as the
// charm's health probe.
package collector
