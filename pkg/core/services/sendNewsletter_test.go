package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/db"
)

func newsletterFixtures() (*mockSubscriberStore, *mockRunLog, *mockContent) {
	store := newMockSubscriberStore()
	store.requireVerified = true
	store.subs["alice@example.com"] = &db.Subscriber{Email: "alice@example.com", Active: true, Verified: true}
	store.subs["bob@example.com"] = &db.Subscriber{Email: "bob@example.com", Active: true, Verified: true}
	store.subs["pending@example.com"] = &db.Subscriber{Email: "pending@example.com", Active: true, Verified: false}
	store.subs["gone@example.com"] = &db.Subscriber{Email: "gone@example.com", Active: false, Verified: true}

	content := &mockContent{
		latestPost: time.Date(2021, 7, 10, 12, 0, 0, 0, time.UTC),
		posts: []model.Post{
			{ID: "post-1", Title: "Pool opens this weekend", Slug: "pool-opens", Summary: "Bring a towel", PublishedAt: time.Date(2021, 7, 10, 12, 0, 0, 0, time.UTC)},
			{ID: "post-2", Title: "Board meeting minutes", Slug: "board-minutes", PublishedAt: time.Date(2021, 7, 1, 9, 0, 0, 0, time.UTC)},
		},
	}

	return store, &mockRunLog{}, content
}

func TestSendNewsletter_SendsToActiveVerifiedOnly(t *testing.T) {
	store, runs, content := newsletterFixtures()
	sender := &mockEmailSender{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := SendNewsletter(ctx, store, runs, content, sender, testConfig(), logger, false)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Skipped)

	assert.ElementsMatch(t, []string{"alice@example.com", "bob@example.com"}, result.Sent)
	assert.Len(t, result.Failed, 0)
	assert.ElementsMatch(t, []string{"alice@example.com", "bob@example.com"}, sender.recipients())

	// Body contains the post titles and links
	require.NotEmpty(t, sender.sentEmails)
	assert.Contains(t, sender.sentEmails[0].textBody, "Pool opens this weekend")
	assert.Contains(t, sender.sentEmails[0].htmlBody, "/news/pool-opens")

	// A run was recorded
	require.Len(t, runs.runs, 1)
	assert.Equal(t, 2, runs.runs[0].Recipients)
	assert.False(t, runs.runs[0].Forced)
}

func TestSendNewsletter_SkipsWhenNothingNew(t *testing.T) {
	store, runs, content := newsletterFixtures()
	// Last run is after the newest post
	runs.runs = []db.NewsletterRun{
		{ID: "run-1", SentAt: time.Date(2021, 7, 15, 9, 0, 0, 0, time.UTC), Recipients: 2},
	}
	sender := &mockEmailSender{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := SendNewsletter(ctx, store, runs, content, sender, testConfig(), logger, false)

	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, "no new posts since last run", result.SkipReason)
	assert.Len(t, sender.sentEmails, 0)
	assert.Len(t, runs.runs, 1, "no new run recorded on skip")
}

func TestSendNewsletter_ForceBypassesGate(t *testing.T) {
	store, runs, content := newsletterFixtures()
	runs.runs = []db.NewsletterRun{
		{ID: "run-1", SentAt: time.Date(2021, 7, 15, 9, 0, 0, 0, time.UTC), Recipients: 2},
	}
	sender := &mockEmailSender{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := SendNewsletter(ctx, store, runs, content, sender, testConfig(), logger, true)

	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Len(t, result.Sent, 2)

	require.Len(t, runs.runs, 2)
	assert.True(t, runs.runs[1].Forced)
}

func TestSendNewsletter_SkipsWhenNoPostsEver(t *testing.T) {
	store, runs, _ := newsletterFixtures()
	content := &mockContent{}
	sender := &mockEmailSender{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := SendNewsletter(ctx, store, runs, content, sender, testConfig(), logger, false)

	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, "no posts published", result.SkipReason)
}

func TestSendNewsletter_PartialFailuresCollected(t *testing.T) {
	store, runs, content := newsletterFixtures()
	sender := &mockEmailSender{failFor: map[string]bool{"bob@example.com": true}}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := SendNewsletter(ctx, store, runs, content, sender, testConfig(), logger, false)

	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com"}, result.Sent)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "bob@example.com", result.Failed[0].Email)

	// Run is still recorded with the successful count
	require.Len(t, runs.runs, 1)
	assert.Equal(t, 1, runs.runs[0].Recipients)
}

func TestSendNewsletter_AllFailedIsError(t *testing.T) {
	store, runs, content := newsletterFixtures()
	sender := &mockEmailSender{failFor: map[string]bool{
		"alice@example.com": true,
		"bob@example.com":   true,
	}}
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := SendNewsletter(ctx, store, runs, content, sender, testConfig(), logger, false)

	assert.Error(t, err)
	assert.Len(t, runs.runs, 0, "a fully failed broadcast must not record a run")
}

func TestSendNewsletter_NoRecipients(t *testing.T) {
	store := newMockSubscriberStore()
	store.requireVerified = true
	_, runs, content := newsletterFixtures()
	sender := &mockEmailSender{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := SendNewsletter(ctx, store, runs, content, sender, testConfig(), logger, false)

	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, "no recipients", result.SkipReason)
}

func TestSendNewsletter_ContentStoreErrorPropagates(t *testing.T) {
	store, runs, content := newsletterFixtures()
	content.err = fmt.Errorf("cms unavailable")
	sender := &mockEmailSender{}
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := SendNewsletter(ctx, store, runs, content, sender, testConfig(), logger, false)
	assert.Error(t, err)
	assert.Len(t, sender.sentEmails, 0)
}
