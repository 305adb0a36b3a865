package db

import (
	"context"
	"time"
)

// SubscriberStore defines the row-level operations for one subscriber table.
// Lookups return (nil, nil) for unknown keys so callers can tell "not found"
// apart from a store failure.
type SubscriberStore interface {
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	GetByToken(ctx context.Context, token string) (*Subscriber, error)
	Upsert(ctx context.Context, sub *Subscriber) error
	SetActive(ctx context.Context, email string, active bool) error
	SetVerified(ctx context.Context, email string) error
	// ListRecipients returns the subscribers eligible for a broadcast:
	// active rows, additionally verified for lists with a verification step.
	ListRecipients(ctx context.Context) ([]Subscriber, error)
}

// RunLogStore records newsletter broadcast runs
type RunLogStore interface {
	LastRun(ctx context.Context) (*NewsletterRun, error)
	RecordRun(ctx context.Context, sentAt time.Time, recipients int, forced bool) error
}
