// Package hook implements the charm's interface to the juju hook
// environment.
//
// Inside a hook context the unit agent exposes a set of hook tools on PATH
// (config-get, relation-ids, relation-list, relation-get, status-set,
// action-set, action-fail, resource-get, application-version-set). Tools
// wraps each of them with a typed method, requesting JSON output where the
// tool produces data and decoding it into plain Go values.
//
// Subprocess execution goes through the Runner interface so handlers can be
// tested against a fake environment without a live unit agent.
package hook
