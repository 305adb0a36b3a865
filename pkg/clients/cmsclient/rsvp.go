package cmsclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
)

// IncrementRSVP bumps the yes/maybe counter on an event by one and returns
// the new count. This is an unconditional initialize-if-missing then
// increment patch: there is no per-visitor dedup key, so repeat clicks
// count repeatedly. That is the product behavior, not an oversight.
func (c *Client) IncrementRSVP(ctx context.Context, eventID string, response model.RSVPResponse) (int, error) {
	if !response.IsValid() {
		return 0, fmt.Errorf("invalid rsvp response %q", response)
	}

	field := "rsvpYes"
	if response == model.RSVPMaybe {
		field = "rsvpMaybe"
	}

	patch := map[string]interface{}{
		"patch": map[string]interface{}{
			"id":           eventID,
			"setIfMissing": map[string]interface{}{field: 0},
			"inc":          map[string]interface{}{field: 1},
		},
	}

	result, err := c.Mutate(ctx, []interface{}{patch}, true)
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s on event %s: %w", field, eventID, err)
	}
	if len(result.Results) == 0 {
		return 0, fmt.Errorf("rsvp patch for event %s returned no document", eventID)
	}

	var doc struct {
		RSVPYes   int `json:"rsvpYes"`
		RSVPMaybe int `json:"rsvpMaybe"`
	}
	if err := json.Unmarshal(result.Results[0].Document, &doc); err != nil {
		return 0, fmt.Errorf("failed to decode patched event %s: %w", eventID, err)
	}

	if response == model.RSVPMaybe {
		return doc.RSVPMaybe, nil
	}
	return doc.RSVPYes, nil
}
