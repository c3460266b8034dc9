// Package sqlite persists submitted job state in a local ledger so status
// polling works across process runs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Job kinds tracked in the ledger.
const (
	KindDistillation   = "distillation"
	KindBatchInference = "batch-inference"
	KindProvisioning   = "provisioning"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	arn        TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	name       TEXT NOT NULL,
	status     TEXT NOT NULL,
	input_uri  TEXT NOT NULL DEFAULT '',
	output_uri TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// JobRecord is one tracked job. The ARN is the identity; everything else is
// the last observed state.
type JobRecord struct {
	ARN       string
	Kind      string
	Name      string
	Status    string
	InputURI  string
	OutputURI string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrNotFound is returned when a job is not in the ledger.
type ErrNotFound struct {
	ARN string
}

func (e ErrNotFound) Error() string {
	if e.ARN == "" {
		return "job not found"
	}

	return "job not found: " + e.ARN
}

// Driver is a SQLite-backed job ledger.
type Driver struct {
	db *sql.DB
}

// NewDriver opens the ledger at path, creating the schema when needed.
// Use ":memory:" for an in-memory ledger.
func NewDriver(ctx context.Context, path string) (*Driver, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger %s: %w", path, err)
	}

	// SQLite serializes writers anyway; a single pooled connection also
	// keeps :memory: ledgers coherent across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create jobs table: %w", err)
	}

	return &Driver{db: db}, nil
}

// Put upserts a job by ARN. CreatedAt is preserved on update; UpdatedAt is
// always refreshed.
func (d *Driver) Put(ctx context.Context, job *JobRecord) error {
	if job == nil {
		return errors.New("cannot put nil job")
	}
	if job.ARN == "" {
		return errors.New("job arn is required")
	}

	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO jobs (arn, kind, name, status, input_uri, output_uri, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(arn) DO UPDATE SET
			status     = excluded.status,
			output_uri = excluded.output_uri,
			updated_at = excluded.updated_at`,
		job.ARN, job.Kind, job.Name, job.Status, job.InputURI, job.OutputURI, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not store job %s: %w", job.ARN, err)
	}

	return nil
}

// Get retrieves a job by ARN. Returns ErrNotFound if it was never tracked.
func (d *Driver) Get(ctx context.Context, arn string) (*JobRecord, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT arn, kind, name, status, input_uri, output_uri, created_at, updated_at
		FROM jobs WHERE arn = ?`, arn)

	var job JobRecord
	err := row.Scan(&job.ARN, &job.Kind, &job.Name, &job.Status, &job.InputURI, &job.OutputURI, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound{ARN: arn}
	}
	if err != nil {
		return nil, fmt.Errorf("could not load job %s: %w", arn, err)
	}

	return &job, nil
}

// List returns all tracked jobs in submission order.
func (d *Driver) List(ctx context.Context) ([]*JobRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT arn, kind, name, status, input_uri, output_uri, created_at, updated_at
		FROM jobs ORDER BY created_at, arn`)
	if err != nil {
		return nil, fmt.Errorf("could not list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*JobRecord
	for rows.Next() {
		var job JobRecord
		if err := rows.Scan(&job.ARN, &job.Kind, &job.Name, &job.Status, &job.InputURI, &job.OutputURI, &job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, fmt.Errorf("could not scan job: %w", err)
		}
		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}

// UpdateStatus records the latest observed state for a tracked job.
func (d *Driver) UpdateStatus(ctx context.Context, arn, status, outputURI string) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE jobs SET status = ?, output_uri = ?, updated_at = ? WHERE arn = ?`,
		status, outputURI, time.Now().UTC(), arn)
	if err != nil {
		return fmt.Errorf("could not update job %s: %w", arn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not update job %s: %w", arn, err)
	}
	if affected == 0 {
		return ErrNotFound{ARN: arn}
	}

	return nil
}

// Close closes the ledger.
func (d *Driver) Close() error {
	return d.db.Close()
}
