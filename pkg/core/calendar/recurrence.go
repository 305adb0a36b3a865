package calendar

import (
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
)

// maxOccurrencesPerEvent caps expansion so a malformed COUNT-less rule in
// the content store cannot blow up a calendar request.
const maxOccurrencesPerEvent = 500

// ExpandWindow is the inclusive time range occurrences are expanded into
type ExpandWindow struct {
	Start time.Time
	End   time.Time
}

// MonthWindow returns the expand window covering a whole calendar month
// in the given location.
func MonthWindow(year int, month time.Month, loc *time.Location) ExpandWindow {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return ExpandWindow{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// ExpandOccurrences turns event records into concrete occurrences inside
// the window. One-off events contribute themselves when they intersect the
// window; events with a recurrence rule are expanded through it. Events
// without a start date are skipped, and an unparseable rule degrades to the
// event's base date rather than dropping the event.
func ExpandOccurrences(events []model.EventRecord, window ExpandWindow, logger *zap.Logger) []model.Occurrence {
	occurrences := make([]model.Occurrence, 0, len(events))

	for _, ev := range events {
		if ev.Start == nil {
			logger.Debug("skipping event without start date", zap.String("event_id", ev.ID))
			continue
		}

		if ev.RRule == "" {
			if occ, ok := singleOccurrence(ev, window); ok {
				occurrences = append(occurrences, occ)
			}
			continue
		}

		rule, err := rrule.StrToRRule(ev.RRule)
		if err != nil {
			logger.Warn("unparseable recurrence rule, falling back to base date",
				zap.String("event_id", ev.ID),
				zap.String("rrule", ev.RRule),
				zap.Error(err))
			if occ, ok := singleOccurrence(ev, window); ok {
				occurrences = append(occurrences, occ)
			}
			continue
		}

		rule.DTStart(*ev.Start)
		duration := eventDuration(ev)

		starts := rule.Between(window.Start.Add(-duration), window.End, true)
		if len(starts) > maxOccurrencesPerEvent {
			logger.Warn("recurrence expansion truncated",
				zap.String("event_id", ev.ID),
				zap.Int("cap", maxOccurrencesPerEvent))
			starts = starts[:maxOccurrencesPerEvent]
		}

		for _, start := range starts {
			end := start.Add(duration)
			if end.Before(window.Start) || start.After(window.End) {
				continue
			}
			occurrences = append(occurrences, model.Occurrence{
				EventID: ev.ID,
				Title:   ev.Title,
				Start:   start,
				End:     end,
				AllDay:  isAllDay(ev),
			})
		}
	}

	return occurrences
}

func singleOccurrence(ev model.EventRecord, window ExpandWindow) (model.Occurrence, bool) {
	start := *ev.Start
	end := start.Add(eventDuration(ev))
	if end.Before(window.Start) || start.After(window.End) {
		return model.Occurrence{}, false
	}
	return model.Occurrence{
		EventID: ev.ID,
		Title:   ev.Title,
		Start:   start,
		End:     end,
		AllDay:  isAllDay(ev),
	}, true
}

func eventDuration(ev model.EventRecord) time.Duration {
	if ev.End != nil && ev.End.After(*ev.Start) {
		return ev.End.Sub(*ev.Start)
	}
	return 0
}

// isAllDay treats a midnight start with no end as an all-day event, which
// is how dateless-time events come out of the content store.
func isAllDay(ev model.EventRecord) bool {
	if ev.End != nil {
		return false
	}
	h, m, s := ev.Start.Clock()
	return h == 0 && m == 0 && s == 0
}
