// Package charm implements the control component of the
// software-inventory-collector charm.
//
// The charm has one job: manage the lifecycle of the separately packaged
// collector snap. On install it puts the snap on disk (from an attached
// resource or the store), on configuration or relation changes it rewrites
// the snap's YAML configuration, and after each of these events it probes
// collector health with a dry run and reports unit status. The collect
// action triggers a full collection on demand.
//
// Events reach the charm through Dispatch, which consults an explicit
// event-kind to handler table built at construction. The host runtime
// delivers events strictly one at a time, so no handler needs to guard
// against concurrent re-entry.
package charm
