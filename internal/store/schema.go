package store

import (
	"database/sql"
	"fmt"
)

// schemaVersion is the version stamped into schema_migrations once pub_keys exists.
const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  applied_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS pub_keys (
  id TEXT PRIMARY KEY,
  public_key TEXT NOT NULL,
  note TEXT
);
`

// MigrationStatus reports the schema version on disk against the one this
// binary writes.
type MigrationStatus struct {
	CurrentVersion   int             `json:"current_version" yaml:"current_version"`
	AvailableVersion int             `json:"available_version" yaml:"available_version"`
	Pending          []MigrationInfo `json:"pending" yaml:"pending"`
}

// MigrationInfo describes a pending schema step.
type MigrationInfo struct {
	Version     int    `json:"version" yaml:"version"`
	Description string `json:"description" yaml:"description"`
}

// bootstrapSchema creates the tables if needed and records the version.
// A pub_keys table created without schema_migrations is kept as is and stamped.
func bootstrapSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema bootstrap: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT OR IGNORE INTO schema_migrations (version, applied_at) VALUES (?, datetime('now'))",
		schemaVersion,
	); err != nil {
		return fmt.Errorf("stamp schema version: %w", err)
	}
	return tx.Commit()
}

// MigrationPlan inspects db without writing to it.
func MigrationPlan(db *sql.DB) (*MigrationStatus, error) {
	status := &MigrationStatus{AvailableVersion: schemaVersion}

	tracked, err := hasTable(db, "schema_migrations")
	if err != nil {
		return nil, err
	}
	if tracked {
		if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&status.CurrentVersion); err != nil {
			return nil, fmt.Errorf("read schema version: %w", err)
		}
	}
	if status.CurrentVersion == 0 {
		legacy, err := hasTable(db, "pub_keys")
		if err != nil {
			return nil, err
		}
		if legacy {
			status.CurrentVersion = schemaVersion
		}
	}

	if status.CurrentVersion < schemaVersion {
		status.Pending = []MigrationInfo{{Version: schemaVersion, Description: "create pub_keys table"}}
	}
	return status, nil
}

func hasTable(db *sql.DB, name string) (bool, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n); err != nil {
		return false, fmt.Errorf("inspect table %s: %w", name, err)
	}
	return n > 0, nil
}
