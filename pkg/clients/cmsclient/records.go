package cmsclient

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
)

// rawEvent is the wire shape of an event document. Dates come back as
// strings and are parsed leniently: a record with an unusable date keeps a
// nil Start and the calendar layer drops it from day indexes.
type rawEvent struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Location    string `json:"location"`
	Description string `json:"description"`
	RRule       string `json:"rrule"`
	RSVPYes     int    `json:"rsvpYes"`
	RSVPMaybe   int    `json:"rsvpMaybe"`
}

func (c *Client) toEvent(raw rawEvent) model.EventRecord {
	ev := model.EventRecord{
		ID:          raw.ID,
		Title:       raw.Title,
		Location:    raw.Location,
		Description: raw.Description,
		RRule:       raw.RRule,
		RSVPYes:     raw.RSVPYes,
		RSVPMaybe:   raw.RSVPMaybe,
	}
	ev.Start = c.parseInstant(raw.ID, "start", raw.Start)
	ev.End = c.parseInstant(raw.ID, "end", raw.End)
	return ev
}

func (c *Client) parseInstant(id, field, value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	// Date-only values come from documents authored without a time.
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return &t
	}
	c.logger.Debug("dropping unparseable date on content record",
		zap.String("record_id", id),
		zap.String("field", field),
		zap.String("value", value))
	return nil
}

// EventsBetween fetches events whose base date falls inside the window,
// along with every recurring event; recurrence expansion decides which of
// those actually land in the window.
func (c *Client) EventsBetween(ctx context.Context, start, end time.Time) ([]model.EventRecord, error) {
	query := `*[_type == "event" && ((defined(start) && start >= $start && start <= $end) || defined(rrule))] | order(start asc)`
	params := map[string]interface{}{
		"start": start.Format(time.RFC3339),
		"end":   end.Format(time.RFC3339),
	}

	var raws []rawEvent
	if err := c.Query(ctx, query, params, &raws); err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	events := make([]model.EventRecord, 0, len(raws))
	for _, raw := range raws {
		events = append(events, c.toEvent(raw))
	}
	return events, nil
}

// EventByID fetches a single event, or (nil, nil) when it does not exist
func (c *Client) EventByID(ctx context.Context, id string) (*model.EventRecord, error) {
	query := `*[_type == "event" && _id == $id][0]`
	params := map[string]interface{}{"id": id}

	var raw *rawEvent
	if err := c.Query(ctx, query, params, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}
	if raw == nil || raw.ID == "" {
		return nil, nil
	}
	ev := c.toEvent(*raw)
	return &ev, nil
}

type rawPost struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Summary     string `json:"summary"`
	Body        string `json:"body"`
	PublishedAt string `json:"publishedAt"`
}

// Posts fetches news posts, newest first
func (c *Client) Posts(ctx context.Context, limit int) ([]model.Post, error) {
	query := `*[_type == "post" && defined(publishedAt)] | order(publishedAt desc) [0...$limit]`
	params := map[string]interface{}{"limit": limit}

	var raws []rawPost
	if err := c.Query(ctx, query, params, &raws); err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	posts := make([]model.Post, 0, len(raws))
	for _, raw := range raws {
		post := model.Post{
			ID:      raw.ID,
			Title:   raw.Title,
			Slug:    raw.Slug,
			Summary: raw.Summary,
			Body:    raw.Body,
		}
		if t := c.parseInstant(raw.ID, "publishedAt", raw.PublishedAt); t != nil {
			post.PublishedAt = *t
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// LatestPostTime returns the publish time of the newest post, or the zero
// time when no posts exist. Used to gate newsletter runs.
func (c *Client) LatestPostTime(ctx context.Context) (time.Time, error) {
	posts, err := c.Posts(ctx, 1)
	if err != nil {
		return time.Time{}, err
	}
	if len(posts) == 0 {
		return time.Time{}, nil
	}
	return posts[0].PublishedAt, nil
}

type rawDocument struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	FileURL     string `json:"fileUrl"`
	PublishedAt string `json:"publishedAt"`
}

// Documents fetches published association documents
func (c *Client) Documents(ctx context.Context) ([]model.Document, error) {
	query := `*[_type == "document"] | order(publishedAt desc) { _id, title, category, "fileUrl": file.asset->url, publishedAt }`

	var raws []rawDocument
	if err := c.Query(ctx, query, nil, &raws); err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	docs := make([]model.Document, 0, len(raws))
	for _, raw := range raws {
		doc := model.Document{
			ID:       raw.ID,
			Title:    raw.Title,
			Category: raw.Category,
			FileURL:  raw.FileURL,
		}
		if t := c.parseInstant(raw.ID, "publishedAt", raw.PublishedAt); t != nil {
			doc.PublishedAt = *t
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

type rawWinner struct {
	ID        string `json:"_id"`
	Contest   string `json:"contest"`
	Season    string `json:"season"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	PhotoURL  string `json:"photoUrl"`
	AwardedAt string `json:"awardedAt"`
}

// Winners fetches contest winner entries, newest first
func (c *Client) Winners(ctx context.Context) ([]model.Winner, error) {
	query := `*[_type == "winner"] | order(awardedAt desc) { _id, contest, season, name, address, "photoUrl": photo.asset->url, awardedAt }`

	var raws []rawWinner
	if err := c.Query(ctx, query, nil, &raws); err != nil {
		return nil, fmt.Errorf("failed to fetch winners: %w", err)
	}

	winners := make([]model.Winner, 0, len(raws))
	for _, raw := range raws {
		winner := model.Winner{
			ID:       raw.ID,
			Contest:  raw.Contest,
			Season:   raw.Season,
			Name:     raw.Name,
			Address:  raw.Address,
			PhotoURL: raw.PhotoURL,
		}
		if t := c.parseInstant(raw.ID, "awardedAt", raw.AwardedAt); t != nil {
			winner.AwardedAt = *t
		}
		winners = append(winners, winner)
	}
	return winners, nil
}
