package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/db"
)

// RunLog is the db.RunLogStore over the append-only newsletter_runs table
type RunLog struct {
	db *DB
}

// NewsletterRuns returns the run-log store
func (d *DB) NewsletterRuns() *RunLog {
	return &RunLog{db: d}
}

// LastRun returns the most recent run, or (nil, nil) before the first send
func (r *RunLog) LastRun(ctx context.Context) (*db.NewsletterRun, error) {
	var run db.NewsletterRun
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, sent_at, recipients, forced
		FROM newsletter_runs
		ORDER BY sent_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.SentAt, &run.Recipients, &run.Forced)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last newsletter run: %w", err)
	}
	return &run, nil
}

// RecordRun appends a run row
func (r *RunLog) RecordRun(ctx context.Context, sentAt time.Time, recipients int, forced bool) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO newsletter_runs (id, sent_at, recipients, forced)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), sentAt.UTC(), recipients, forced)
	if err != nil {
		return fmt.Errorf("failed to record newsletter run: %w", err)
	}
	return nil
}
