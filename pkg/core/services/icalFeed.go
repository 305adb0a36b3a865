package services

import (
	"context"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/internal/config"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/calendar"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
)

// icsFeedMonths is how far ahead of now the feed includes occurrences
const icsFeedMonths = 6

// EventSource defines the content-store read the ICS feed needs
type EventSource interface {
	EventsBetween(ctx context.Context, start, end time.Time) ([]model.EventRecord, error)
}

// BuildICSFeed renders upcoming community events, with recurring events
// expanded, as an iCalendar document suitable for subscription.
func BuildICSFeed(
	ctx context.Context,
	content EventSource,
	cfg *config.Config,
	logger *zap.Logger,
	now time.Time,
) (string, error) {
	window := calendar.ExpandWindow{
		Start: now,
		End:   now.AddDate(0, icsFeedMonths, 0),
	}

	logger.Debug("Building ICS feed",
		zap.Time("window_start", window.Start),
		zap.Time("window_end", window.End))

	events, err := content.EventsBetween(ctx, window.Start, window.End)
	if err != nil {
		return "", fmt.Errorf("failed to fetch events: %w", err)
	}

	occurrences := calendar.ExpandOccurrences(events, window, logger)
	logger.Debug("Expanded occurrences for ICS feed", zap.Int("count", len(occurrences)))

	descriptions := make(map[string]string, len(events))
	locations := make(map[string]string, len(events))
	for _, ev := range events {
		descriptions[ev.ID] = ev.Description
		locations[ev.ID] = ev.Location
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(fmt.Sprintf("-//%s//community calendar//EN", cfg.Site.Name))
	cal.SetName(cfg.Site.Name + " events")

	for _, occ := range occurrences {
		// One UID per concrete occurrence so expanded instances stay distinct
		uid := fmt.Sprintf("%s-%d@%s", occ.EventID, occ.Start.Unix(), cfg.Site.Name)
		ve := cal.AddEvent(uid)
		ve.SetDtStampTime(now)
		ve.SetSummary(occ.Title)

		if occ.AllDay {
			ve.SetAllDayStartAt(occ.Start)
			ve.SetAllDayEndAt(occ.Start.AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(occ.Start)
			if occ.End.After(occ.Start) {
				ve.SetEndAt(occ.End)
			}
		}

		if loc := locations[occ.EventID]; loc != "" {
			ve.SetLocation(loc)
		}
		if desc := descriptions[occ.EventID]; desc != "" {
			ve.SetDescription(desc)
		}
		ve.SetURL(fmt.Sprintf("%s/events/%s", cfg.Site.BaseURL, occ.EventID))
	}

	return cal.Serialize(), nil
}
