// Package persistence keeps session settings across restarts.
//
// Two stores implement orchestrator.Store: Store keeps scan periods and the
// monitored region list in SQLite, FileStore keeps the same state in a JSON
// file for setups without a database.
package persistence
