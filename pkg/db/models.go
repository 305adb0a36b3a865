package db

import "time"

// Subscriber represents a row in one of the subscriber tables, keyed by
// normalized email. Trash-reminder subscribers have no verification step,
// so their rows keep Verified true and an empty token from creation.
type Subscriber struct {
	Email             string
	Name              string // nullable, display name from the signup form
	Active            bool
	Verified          bool
	VerificationToken string // empty once verified or consumed
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewsletterRun marks one successful broadcast in the append-only run log
type NewsletterRun struct {
	ID         string
	SentAt     time.Time
	Recipients int
	Forced     bool
}
