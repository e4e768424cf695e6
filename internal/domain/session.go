package domain

import "time"

// Session is one scraping run's aggregate record.
type Session struct {
	StartedAt             time.Time `json:"started_at"`
	FinishedAt            time.Time `json:"finished_at"`
	SourcesAttempted      []string  `json:"sources_attempted"`
	SourcesSucceeded      []string  `json:"sources_succeeded"`
	PostingsEmitted       int       `json:"postings_emitted"`
	DuplicatesDropped     int       `json:"duplicates_dropped"`
	ApplicationsSubmitted int       `json:"applications_submitted"`
}
