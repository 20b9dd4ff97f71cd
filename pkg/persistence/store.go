package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/beaconsense/beacon-go/pkg/region"
	"github.com/beaconsense/beacon-go/pkg/sensing"
	_ "modernc.org/sqlite"
)

// Store provides SQLite persistence for scan periods and monitored regions.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *slog.Logger
}

// Open opens or creates the database at path.
// Use ":memory:" for an in-memory database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &Store{db: db, logger: logger}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	statements := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS scan_periods (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			foreground_ms INTEGER NOT NULL,
			between_ms INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS monitored_regions (
			identifier TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			region_json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_monitored_regions_position ON monitored_regions(position);`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveScanPeriods implements sensing.Store.
func (s *Store) SaveScanPeriods(p sensing.ScanPeriods) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO scan_periods (id, foreground_ms, between_ms, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			foreground_ms = excluded.foreground_ms,
			between_ms = excluded.between_ms,
			updated_at = excluded.updated_at
	`, p.Foreground.Milliseconds(), p.ForegroundBetween.Milliseconds(), now())
	return err
}

// LoadScanPeriods returns the saved periods. ok is false if none were saved.
func (s *Store) LoadScanPeriods() (sensing.ScanPeriods, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fg, between int64
	err := s.db.QueryRow(`SELECT foreground_ms, between_ms FROM scan_periods WHERE id = 1`).Scan(&fg, &between)
	if errors.Is(err, sql.ErrNoRows) {
		return sensing.ScanPeriods{}, false, nil
	}
	if err != nil {
		return sensing.ScanPeriods{}, false, err
	}
	return sensing.ScanPeriods{
		Foreground:        time.Duration(fg) * time.Millisecond,
		ForegroundBetween: time.Duration(between) * time.Millisecond,
	}, true, nil
}

// SaveMonitoredRegions implements sensing.Store. The stored list is replaced.
func (s *Store) SaveMonitoredRegions(regions []region.Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM monitored_regions`); err != nil {
		return err
	}
	ts := now()
	for i, r := range regions {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode region %s: %w", r.Identifier, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO monitored_regions (identifier, position, region_json, updated_at)
			VALUES (?, ?, ?, ?)
		`, r.Identifier, i, string(data), ts); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadMonitoredRegions returns the stored regions in save order. Rows that
// no longer decode or validate are skipped.
func (s *Store) LoadMonitoredRegions() ([]region.Region, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT identifier, region_json FROM monitored_regions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []region.Region
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var r region.Region
		if err := json.Unmarshal([]byte(data), &r); err != nil || r.Validate() != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unreadable stored region", "region", id)
			}
			continue
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Clear removes all persisted state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM scan_periods`); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM monitored_regions`)
	return err
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
