package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/metrics"
)

// ErrInvalidRSVP is returned when the response is not "yes" or "maybe"
var ErrInvalidRSVP = errors.New("rsvp response must be yes or maybe")

// RSVPStore defines the content-store operation the RSVP counter needs
type RSVPStore interface {
	IncrementRSVP(ctx context.Context, eventID string, response model.RSVPResponse) (int, error)
}

// RSVPResult represents a recorded RSVP and the event's running count
type RSVPResult struct {
	EventID  string
	Response model.RSVPResponse
	Count    int
}

// RSVP records one yes/maybe click against an event. The increment is
// unconditional, so the same visitor clicking twice counts twice. There is
// no per-visitor dedup key.
func RSVP(
	ctx context.Context,
	store RSVPStore,
	logger *zap.Logger,
	eventID string,
	response model.RSVPResponse,
) (*RSVPResult, error) {
	if eventID == "" {
		return nil, fmt.Errorf("event id is required")
	}
	if !response.IsValid() {
		return nil, ErrInvalidRSVP
	}

	logger.Debug("Recording RSVP",
		zap.String("event_id", eventID),
		zap.String("response", string(response)))

	count, err := store.IncrementRSVP(ctx, eventID, response)
	if err != nil {
		return nil, fmt.Errorf("failed to record rsvp: %w", err)
	}
	metrics.IncrementRSVP(string(response))

	logger.Info("RSVP recorded",
		zap.String("event_id", eventID),
		zap.String("response", string(response)),
		zap.Int("count", count))

	return &RSVPResult{EventID: eventID, Response: response, Count: count}, nil
}
