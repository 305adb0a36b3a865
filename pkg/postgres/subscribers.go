package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/db"
)

// SubscriberTable is a db.SubscriberStore over one of the two subscriber
// tables. The newsletter table has a verification step, so its broadcast
// recipient list additionally requires verified rows.
type SubscriberTable struct {
	db              *DB
	table           string
	requireVerified bool
}

// NewsletterSubscribers returns the store backed by newsletter_subscribers
func (d *DB) NewsletterSubscribers() *SubscriberTable {
	return &SubscriberTable{db: d, table: "newsletter_subscribers", requireVerified: true}
}

// TrashSubscribers returns the store backed by trash_subscribers
func (d *DB) TrashSubscribers() *SubscriberTable {
	return &SubscriberTable{db: d, table: "trash_subscribers", requireVerified: false}
}

// GetByEmail retrieves a subscriber row, or (nil, nil) when unknown
func (t *SubscriberTable) GetByEmail(ctx context.Context, email string) (*db.Subscriber, error) {
	query := fmt.Sprintf(`
		SELECT email, name, active, verified, verification_token, created_at, updated_at
		FROM %s WHERE email = $1
	`, t.table)

	sub, err := t.scanOne(t.db.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by email: %w", t.table, err)
	}
	return sub, nil
}

// GetByToken retrieves a subscriber row by verification token, or (nil, nil)
// when no row carries the token (unknown or already consumed).
func (t *SubscriberTable) GetByToken(ctx context.Context, token string) (*db.Subscriber, error) {
	query := fmt.Sprintf(`
		SELECT email, name, active, verified, verification_token, created_at, updated_at
		FROM %s WHERE verification_token = $1
	`, t.table)

	sub, err := t.scanOne(t.db.pool.QueryRow(ctx, query, token))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by token: %w", t.table, err)
	}
	return sub, nil
}

// Upsert inserts or replaces the row for sub.Email. Concurrent writers for
// the same address are last-write-wins, which the idempotent transitions
// above this layer tolerate.
func (t *SubscriberTable) Upsert(ctx context.Context, sub *db.Subscriber) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (email, name, active, verified, verification_token)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			active = EXCLUDED.active,
			verified = EXCLUDED.verified,
			verification_token = EXCLUDED.verification_token,
			updated_at = NOW()
	`, t.table)

	_, err := t.db.pool.Exec(ctx, query,
		sub.Email, nullIfEmpty(sub.Name), sub.Active, sub.Verified, sub.VerificationToken)
	if err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", t.table, err)
	}
	return nil
}

// SetActive flips the active flag for an existing row
func (t *SubscriberTable) SetActive(ctx context.Context, email string, active bool) error {
	query := fmt.Sprintf(`
		UPDATE %s SET active = $2, updated_at = NOW() WHERE email = $1
	`, t.table)

	_, err := t.db.pool.Exec(ctx, query, email, active)
	if err != nil {
		return fmt.Errorf("failed to set active on %s: %w", t.table, err)
	}
	return nil
}

// SetVerified marks a row verified and consumes its token. Verification
// also re-asserts active, matching the signup flow's promise.
func (t *SubscriberTable) SetVerified(ctx context.Context, email string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET verified = TRUE, active = TRUE, verification_token = NULL, updated_at = NOW()
		WHERE email = $1
	`, t.table)

	_, err := t.db.pool.Exec(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to set verified on %s: %w", t.table, err)
	}
	return nil
}

// ListRecipients returns the rows eligible for a broadcast
func (t *SubscriberTable) ListRecipients(ctx context.Context) ([]db.Subscriber, error) {
	query := fmt.Sprintf(`
		SELECT email, name, active, verified, verification_token, created_at, updated_at
		FROM %s WHERE active
	`, t.table)
	if t.requireVerified {
		query += ` AND verified`
	}
	query += ` ORDER BY created_at`

	rows, err := t.db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s recipients: %w", t.table, err)
	}
	defer rows.Close()

	var subs []db.Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", t.table, err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", t.table, err)
	}

	return subs, nil
}

func (t *SubscriberTable) scanOne(row pgx.Row) (*db.Subscriber, error) {
	sub, err := scanSubscriber(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func scanSubscriber(row pgx.Row) (*db.Subscriber, error) {
	var sub db.Subscriber
	var name, token *string
	if err := row.Scan(&sub.Email, &name, &sub.Active, &sub.Verified, &token,
		&sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}
	if name != nil {
		sub.Name = *name
	}
	if token != nil {
		sub.VerificationToken = *token
	}
	return &sub, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
