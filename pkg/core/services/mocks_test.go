package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jking7988/Cypressdale-HOA-sub000/internal/config"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/db"
)

// mockSubscriberStore implements db.SubscriberStore in memory for testing
type mockSubscriberStore struct {
	subs            map[string]*db.Subscriber
	requireVerified bool
	err             error
}

func newMockSubscriberStore() *mockSubscriberStore {
	return &mockSubscriberStore{subs: map[string]*db.Subscriber{}}
}

func (m *mockSubscriberStore) GetByEmail(ctx context.Context, email string) (*db.Subscriber, error) {
	if m.err != nil {
		return nil, m.err
	}
	sub, ok := m.subs[email]
	if !ok {
		return nil, nil
	}
	copied := *sub
	return &copied, nil
}

func (m *mockSubscriberStore) GetByToken(ctx context.Context, token string) (*db.Subscriber, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, sub := range m.subs {
		if sub.VerificationToken != "" && sub.VerificationToken == token {
			copied := *sub
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockSubscriberStore) Upsert(ctx context.Context, sub *db.Subscriber) error {
	if m.err != nil {
		return m.err
	}
	copied := *sub
	m.subs[sub.Email] = &copied
	return nil
}

func (m *mockSubscriberStore) SetActive(ctx context.Context, email string, active bool) error {
	if m.err != nil {
		return m.err
	}
	if sub, ok := m.subs[email]; ok {
		sub.Active = active
	}
	return nil
}

func (m *mockSubscriberStore) SetVerified(ctx context.Context, email string) error {
	if m.err != nil {
		return m.err
	}
	if sub, ok := m.subs[email]; ok {
		sub.Verified = true
		sub.VerificationToken = ""
	}
	return nil
}

func (m *mockSubscriberStore) ListRecipients(ctx context.Context) ([]db.Subscriber, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []db.Subscriber{}
	for _, sub := range m.subs {
		if !sub.Active {
			continue
		}
		if m.requireVerified && !sub.Verified {
			continue
		}
		out = append(out, *sub)
	}
	return out, nil
}

// mockRunLog implements db.RunLogStore for testing
type mockRunLog struct {
	runs []db.NewsletterRun
	err  error
}

func (m *mockRunLog) LastRun(ctx context.Context) (*db.NewsletterRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.runs) == 0 {
		return nil, nil
	}
	last := m.runs[len(m.runs)-1]
	return &last, nil
}

func (m *mockRunLog) RecordRun(ctx context.Context, sentAt time.Time, recipients int, forced bool) error {
	if m.err != nil {
		return m.err
	}
	m.runs = append(m.runs, db.NewsletterRun{
		ID:         fmt.Sprintf("run-%d", len(m.runs)+1),
		SentAt:     sentAt,
		Recipients: recipients,
		Forced:     forced,
	})
	return nil
}

// mockContent implements the content-store slices the services consume
type mockContent struct {
	latestPost time.Time
	posts      []model.Post
	events     []model.EventRecord
	rsvpCounts map[string]int
	err        error
}

func (m *mockContent) LatestPostTime(ctx context.Context) (time.Time, error) {
	if m.err != nil {
		return time.Time{}, m.err
	}
	return m.latestPost, nil
}

func (m *mockContent) Posts(ctx context.Context, limit int) ([]model.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.posts) {
		return m.posts[:limit], nil
	}
	return m.posts, nil
}

func (m *mockContent) EventsBetween(ctx context.Context, start, end time.Time) ([]model.EventRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func (m *mockContent) IncrementRSVP(ctx context.Context, eventID string, response model.RSVPResponse) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.rsvpCounts == nil {
		m.rsvpCounts = map[string]int{}
	}
	key := eventID + ":" + string(response)
	m.rsvpCounts[key]++
	return m.rsvpCounts[key], nil
}

// sentEmail captures one call to a mock sender
type sentEmail struct {
	to       string
	subject  string
	textBody string
	htmlBody string
}

// mockEmailSender implements EmailSender, failing for configured addresses
type mockEmailSender struct {
	sentEmails []sentEmail
	failFor    map[string]bool
}

func (m *mockEmailSender) SendEmail(to, subject, textBody, htmlBody string) error {
	if m.failFor[to] {
		return fmt.Errorf("send failed for %s", to)
	}
	m.sentEmails = append(m.sentEmails, sentEmail{to: to, subject: subject, textBody: textBody, htmlBody: htmlBody})
	return nil
}

func (m *mockEmailSender) recipients() []string {
	out := []string{}
	for _, e := range m.sentEmails {
		out = append(out, e.to)
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		Site: config.SiteConfig{
			BaseURL:  "https://cypressdalehoa.example.org",
			Name:     "Cypressdale HOA",
			Timezone: "America/Chicago",
		},
	}
}
