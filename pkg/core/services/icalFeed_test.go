package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
)

func TestBuildICSFeed_RendersUpcomingEvents(t *testing.T) {
	start := time.Date(2021, 7, 10, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	content := &mockContent{
		events: []model.EventRecord{
			{ID: "event-1", Title: "Summer Social", Start: &start, End: &end, Location: "Clubhouse"},
		},
	}
	logger := zap.NewNop()
	now := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)

	feed, err := BuildICSFeed(context.Background(), content, testConfig(), logger, now)

	require.NoError(t, err)
	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "END:VCALENDAR")
	assert.Contains(t, feed, "SUMMARY:Summer Social")
	assert.Contains(t, feed, "LOCATION:Clubhouse")
	assert.Contains(t, feed, "event-1")
}

func TestBuildICSFeed_ExpandsRecurringEvents(t *testing.T) {
	// Weekly Thursday event starting July 1, 2021 (a Thursday)
	start := time.Date(2021, 7, 1, 19, 0, 0, 0, time.UTC)
	content := &mockContent{
		events: []model.EventRecord{
			{ID: "event-2", Title: "Board Meeting", Start: &start, RRule: "FREQ=WEEKLY;BYDAY=TH;COUNT=4"},
		},
	}
	logger := zap.NewNop()
	now := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)

	feed, err := BuildICSFeed(context.Background(), content, testConfig(), logger, now)

	require.NoError(t, err)
	// Four weekly occurrences, each its own VEVENT
	assert.Equal(t, 4, strings.Count(feed, "SUMMARY:Board Meeting"))
}

func TestBuildICSFeed_EmptyCalendarIsStillValid(t *testing.T) {
	content := &mockContent{}
	logger := zap.NewNop()

	feed, err := BuildICSFeed(context.Background(), content, testConfig(), logger, time.Now())

	require.NoError(t, err)
	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.NotContains(t, feed, "BEGIN:VEVENT")
}

func TestBuildICSFeed_ContentStoreErrorPropagates(t *testing.T) {
	content := &mockContent{err: fmt.Errorf("cms unavailable")}
	logger := zap.NewNop()

	_, err := BuildICSFeed(context.Background(), content, testConfig(), logger, time.Now())
	assert.Error(t, err)
}
