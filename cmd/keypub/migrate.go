package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"keypub/internal/config"
	"keypub/internal/store"

	_ "modernc.org/sqlite"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the key table if needed and report the schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DBPath == "" {
				return errors.New("db path is required")
			}
			if !dryRun {
				st, err := store.Open(cfg.DBPath)
				if err != nil {
					return fmt.Errorf("migrate %s: %w", cfg.DBPath, err)
				}
				if err := st.Close(); err != nil {
					return err
				}
			}

			status, err := schemaStatus(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", cfg.DBPath, err)
			}
			return writeSchemaStatus(status)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report pending work without touching the database")
	return cmd
}

// schemaStatus reads the schema version without writing. A database that
// does not exist yet is not created; it reports everything pending.
func schemaStatus(path string) (*store.MigrationStatus, error) {
	dsn := ":memory:"
	if _, err := os.Stat(path); err == nil {
		dsn = (&url.URL{Scheme: "file", Path: path}).String()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return store.MigrationPlan(db)
}

func writeSchemaStatus(status *store.MigrationStatus) error {
	if ok, err := writeStructured(status); ok {
		return err
	}
	if len(status.Pending) == 0 {
		return writePlain("Schema is at version %d.\n", status.CurrentVersion)
	}
	if err := writePlain("Schema is at version %d of %d. Pending:\n", status.CurrentVersion, status.AvailableVersion); err != nil {
		return err
	}
	for _, m := range status.Pending {
		if err := writePlain("  %d: %s\n", m.Version, m.Description); err != nil {
			return err
		}
	}
	return nil
}
