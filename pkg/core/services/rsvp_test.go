package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
)

func TestRSVP_IncrementsAndReturnsCount(t *testing.T) {
	content := &mockContent{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := RSVP(ctx, content, logger, "event-1", model.RSVPYes)

	require.NoError(t, err)
	assert.Equal(t, "event-1", result.EventID)
	assert.Equal(t, model.RSVPYes, result.Response)
	assert.Equal(t, 1, result.Count)
}

func TestRSVP_DoubleClickDoubleCounts(t *testing.T) {
	content := &mockContent{}
	logger := zap.NewNop()
	ctx := context.Background()

	first, err := RSVP(ctx, content, logger, "event-1", model.RSVPYes)
	require.NoError(t, err)
	second, err := RSVP(ctx, content, logger, "event-1", model.RSVPYes)
	require.NoError(t, err)

	// No per-visitor dedup: two clicks means two increments
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, 2, second.Count)
}

func TestRSVP_YesAndMaybeCountSeparately(t *testing.T) {
	content := &mockContent{}
	logger := zap.NewNop()
	ctx := context.Background()

	yes, err := RSVP(ctx, content, logger, "event-1", model.RSVPYes)
	require.NoError(t, err)
	maybe, err := RSVP(ctx, content, logger, "event-1", model.RSVPMaybe)
	require.NoError(t, err)

	assert.Equal(t, 1, yes.Count)
	assert.Equal(t, 1, maybe.Count)
}

func TestRSVP_RejectsInvalidInput(t *testing.T) {
	content := &mockContent{}
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := RSVP(ctx, content, logger, "event-1", model.RSVPResponse("no"))
	assert.ErrorIs(t, err, ErrInvalidRSVP)

	_, err = RSVP(ctx, content, logger, "", model.RSVPYes)
	assert.Error(t, err)
}

func TestRSVP_StoreErrorPropagates(t *testing.T) {
	content := &mockContent{err: fmt.Errorf("cms unavailable")}
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := RSVP(ctx, content, logger, "event-1", model.RSVPYes)
	assert.Error(t, err)
}
