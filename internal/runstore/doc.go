// Package runstore persists comparison runs in a SQLite database so accuracy
// trends can be inspected across re-runs of the same episode. Each saved run
// stores its headline metrics in columns for listing and the full report as
// JSON for detail views. A file lock serializes writers.
package runstore
