// Package store persists scenarios in SQLite. Parameters are stored
// as a JSON blob, so the schema never chases the parameter shape; only
// the columns the queries filter on are real columns.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/pathwise/pathwise/internal/scenario"
)

// Common store errors.
var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrScenarioExists   = errors.New("scenario already exists")
)

// timeLayout is fixed-width so lexicographic ordering of the stored
// text matches chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a SQLite-backed scenario repository. Safe for concurrent
// use; database/sql pools connections internally.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary initializes) the scenario database at
// path. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path cannot be empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS scenarios (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		parameters  BLOB NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create scenarios table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create persists a new scenario. A missing ID gets a generated UUID;
// a duplicate ID fails with ErrScenarioExists. The stored scenario,
// with ID and timestamps filled in, is returned.
func (s *Store) Create(ctx context.Context, sc scenario.Scenario) (scenario.Scenario, error) {
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	sc.CreatedAt = now
	sc.UpdatedAt = now

	params, err := json.Marshal(sc.Parameters)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("encode parameters: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scenarios(id, name, description, parameters, created_at, updated_at)
		 VALUES(?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.Name, sc.Description, params,
		now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		if isUniqueViolation(err) {
			return scenario.Scenario{}, fmt.Errorf("%w: %s", ErrScenarioExists, sc.ID)
		}
		return scenario.Scenario{}, fmt.Errorf("insert scenario: %w", err)
	}
	return sc, nil
}

// Get loads one scenario by ID.
func (s *Store) Get(ctx context.Context, id string) (scenario.Scenario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, parameters, created_at, updated_at
		 FROM scenarios WHERE id = ?`, id)
	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return scenario.Scenario{}, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	return sc, err
}

// List returns all scenarios ordered by creation time, newest first.
func (s *Store) List(ctx context.Context) ([]scenario.Scenario, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, parameters, created_at, updated_at
		 FROM scenarios ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("select scenarios: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []scenario.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Update replaces a scenario's name, description, and parameters in
// full. Partial parameter patches are deliberately unsupported; the
// caller sends the complete replacement.
func (s *Store) Update(ctx context.Context, sc scenario.Scenario) (scenario.Scenario, error) {
	params, err := json.Marshal(sc.Parameters)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("encode parameters: %w", err)
	}
	sc.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`UPDATE scenarios SET name = ?, description = ?, parameters = ?, updated_at = ?
		 WHERE id = ?`,
		sc.Name, sc.Description, params, sc.UpdatedAt.Format(timeLayout), sc.ID)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("update scenario: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return scenario.Scenario{}, err
	}
	if affected == 0 {
		return scenario.Scenario{}, fmt.Errorf("%w: %s", ErrScenarioNotFound, sc.ID)
	}
	return s.Get(ctx, sc.ID)
}

// Delete removes a scenario by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanScenario.
type scanner interface {
	Scan(dest ...any) error
}

func scanScenario(row scanner) (scenario.Scenario, error) {
	var (
		sc                   scenario.Scenario
		params               []byte
		createdAt, updatedAt string
	)
	if err := row.Scan(&sc.ID, &sc.Name, &sc.Description, &params, &createdAt, &updatedAt); err != nil {
		return scenario.Scenario{}, err
	}
	if err := json.Unmarshal(params, &sc.Parameters); err != nil {
		return scenario.Scenario{}, fmt.Errorf("decode parameters for %s: %w", sc.ID, err)
	}
	var err error
	if sc.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return scenario.Scenario{}, fmt.Errorf("parse created_at for %s: %w", sc.ID, err)
	}
	if sc.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return scenario.Scenario{}, fmt.Errorf("parse updated_at for %s: %w", sc.ID, err)
	}
	return sc, nil
}

// isUniqueViolation reports whether the driver error is a primary-key
// conflict. The pure-go driver wraps SQLITE_CONSTRAINT without an
// exported sentinel, so the message is the only stable signal.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "constraint failed")
}
