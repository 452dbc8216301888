// Package snap installs and refreshes the collector snap via the snap CLI.
//
// Two installation sources exist: a snap file attached to the charm as a
// resource (installed with --dangerous, since resource files carry no store
// assertions) and the snap store channel fallback used when no resource is
// attached.
package snap
