package scrape

import (
	"context"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

// Result is one source's raw haul for a session. Postings are unanalyzed;
// the pipeline owns cleaning, keying and scoring.
type Result struct {
	Source domain.Source
	Raw    []domain.RawPosting
}

// Status is what the HTTP API reports per source.
type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastRaw   int    `json:"last_raw"`
	Running   bool   `json:"running"`
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (Result, error)
}
