package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is one enumeration run.
type Run struct {
	// ID is a UUIDv7, so run ids sort by creation time.
	ID string

	// ShapeDigest identifies the shape description that was enumerated.
	// Resuming a run against a different shape is refused at the CLI
	// layer by comparing digests.
	ShapeDigest string

	// DeclaredCount is the cardinality reported by the shape when the run
	// was created: a decimal string, or "unknown".
	DeclaredCount string

	// Emitted is the number of values persisted so far. It is also the
	// seq of the next value to persist: seqs are dense from 0.
	Emitted int64
}

// CreateRun registers a new run for the given shape.
func (s *Store) CreateRun(ctx context.Context, shapeDigest, declaredCount string) (*Run, error) {
	run := &Run{
		ID:            uuid.Must(uuid.NewV7()).String(),
		ShapeDigest:   shapeDigest,
		DeclaredCount: declaredCount,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, shape_digest, declared_count, emitted) VALUES (?, ?, ?, 0)`,
		run.ID, run.ShapeDigest, run.DeclaredCount,
	)
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	return run, nil
}

// GetRun loads a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, shape_digest, declared_count, emitted FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.ShapeDigest, &run.DeclaredCount, &run.Emitted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// AppendValues persists a batch of values continuing the run's sequence.
// The batch and the emitted counter update commit atomically, so a crash
// can never leave the counter disagreeing with the stored values.
func (s *Store) AppendValues(ctx context.Context, runID string, values [][]byte) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append values: begin: %w", err)
	}
	defer tx.Rollback()

	var emitted int64
	err = tx.QueryRowContext(ctx, `SELECT emitted FROM runs WHERE id = ?`, runID).Scan(&emitted)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return fmt.Errorf("append values: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_values (run_id, seq, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("append values: prepare: %w", err)
	}
	defer stmt.Close()

	for i, v := range values {
		if _, err := stmt.ExecContext(ctx, runID, emitted+int64(i), string(v)); err != nil {
			return fmt.Errorf("append values: seq %d: %w", emitted+int64(i), err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE runs SET emitted = ? WHERE id = ?`, emitted+int64(len(values)), runID); err != nil {
		return fmt.Errorf("append values: update emitted: %w", err)
	}

	return tx.Commit()
}

// Values streams a run's persisted values in sequence order through fn.
// fn returning an error stops the scan and propagates the error.
func (s *Store) Values(ctx context.Context, runID string, fn func(seq int64, value []byte) error) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, value FROM run_values WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return fmt.Errorf("read values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var seq int64
		var value string
		if err := rows.Scan(&seq, &value); err != nil {
			return fmt.Errorf("read values: scan: %w", err)
		}
		if err := fn(seq, []byte(value)); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Runs lists all runs, newest first (UUIDv7 ids order by creation time).
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, shape_digest, declared_count, emitted FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.ShapeDigest, &r.DeclaredCount, &r.Emitted); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
