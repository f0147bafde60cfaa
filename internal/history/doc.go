// Package history keeps a small persistent record of the manifests the
// tiapp command has loaded, backed by BadgerDB.
package history
