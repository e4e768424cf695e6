package events

import (
	"encoding/json"
	"time"
)

// Event types published on the hub.
const (
	TypePostingCreated       = "posting_created"
	TypeApplicationSubmitted = "application_submitted"
	TypeSessionFinished      = "session_finished"
	TypeConfigUpdated        = "config_updated"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}

// PostingCreated announces a freshly admitted posting.
func PostingCreated(uniqueID string, score int, eligible bool) string {
	return MakeEvent("", TypePostingCreated, 1, map[string]any{
		"unique_id": uniqueID,
		"score":     score,
		"eligible":  eligible,
	})
}

// ApplicationSubmitted announces a successful auto-application.
func ApplicationSubmitted(uniqueID, via string) string {
	return MakeEvent("", TypeApplicationSubmitted, 1, map[string]any{
		"unique_id": uniqueID,
		"via":       via,
	})
}

// SessionFinished carries the aggregate counts of a scrape session.
func SessionFinished(emitted, duplicates, submitted int) string {
	return MakeEvent("", TypeSessionFinished, 1, map[string]any{
		"postings_emitted":       emitted,
		"duplicates_dropped":     duplicates,
		"applications_submitted": submitted,
	})
}
