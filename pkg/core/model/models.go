package model

import "time"

// RSVPResponse is the kind of RSVP a visitor can leave on an event.
type RSVPResponse string

const (
	RSVPYes   RSVPResponse = "yes"
	RSVPMaybe RSVPResponse = "maybe"
)

func (r RSVPResponse) IsValid() bool {
	return r == RSVPYes || r == RSVPMaybe
}

// EventRecord represents a community event from the content store
type EventRecord struct {
	ID          string
	Title       string
	Start       *time.Time // nullable; events without a date exist in drafts
	End         *time.Time // nullable
	Location    string
	Description string
	RRule       string // recurrence rule, empty for one-off events
	RSVPYes     int
	RSVPMaybe   int
}

// Occurrence is a single concrete occurrence of an event, after
// recurrence expansion
type Occurrence struct {
	EventID string
	Title   string
	Start   time.Time
	End     time.Time
	AllDay  bool
}

// Post represents a news post from the content store
type Post struct {
	ID          string
	Title       string
	Slug        string
	Summary     string
	Body        string
	PublishedAt time.Time
}

// Document represents a published association document (bylaws, minutes, forms)
type Document struct {
	ID          string
	Title       string
	Category    string
	FileURL     string
	PublishedAt time.Time
}

// Winner represents a contest winner entry (yard of the month, holiday lights)
type Winner struct {
	ID        string
	Contest   string
	Season    string
	Name      string
	Address   string
	PhotoURL  string
	AwardedAt time.Time
}
