package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

// Store keeps key records in one SQLite file.
//
// The pool is capped at a single connection, which serializes every
// statement and makes the store the only writer.
type Store struct {
	db *sql.DB
}

// StoreInfo summarizes the database for the info endpoint.
type StoreInfo struct {
	SchemaVersion int
	TotalKeys     int
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("db path is required")
	}
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := bootstrapSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// StoreInfo reports the recorded schema version and the number of keys.
func (s *Store) StoreInfo(ctx context.Context) (StoreInfo, error) {
	var info StoreInfo
	err := s.db.QueryRowContext(ctx,
		"SELECT (SELECT COALESCE(MAX(version), 0) FROM schema_migrations), (SELECT COUNT(*) FROM pub_keys)",
	).Scan(&info.SchemaVersion, &info.TotalKeys)
	if err != nil {
		return StoreInfo{}, unavailable(err)
	}
	return info, nil
}

// dsn carries the pragmas in the connection string so that every
// connection the pool opens gets them: WAL, NORMAL sync, a 5s busy wait.
func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Add("_pragma", "busy_timeout(5000)")
	return (&url.URL{Scheme: "file", Path: path, RawQuery: q.Encode()}).String()
}
