package pipeline

import (
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/classify"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/dedup"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/extract"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/gate"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/normalize"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/rank"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/track"
)

// DropReason says why a raw posting did not become an admitted one.
type DropReason string

const (
	DropNone      DropReason = ""
	DropEmpty     DropReason = "missing title or company"
	DropDuplicate DropReason = "duplicate"
)

// Outcome is the result of pushing one raw posting through analysis.
type Outcome struct {
	Posting  domain.Posting
	Admitted bool
	Reason   DropReason
}

// Pipeline turns raw scraper output into analyzed, deduplicated postings.
// It owns no persistence beyond the seen-set; callers decide what to do
// with admitted postings.
type Pipeline struct {
	Cfg    config.Config
	Seen   *dedup.Store
	scorer rank.Scorer
}

func New(cfg config.Config, seen *dedup.Store) *Pipeline {
	return &Pipeline{Cfg: cfg, Seen: seen, scorer: rank.Scorer{Cfg: cfg}}
}

// Process normalizes, keys, analyzes and gates one raw posting. A posting
// is admitted exactly once per identity; duplicates come back with
// Admitted=false and the analyzed fields left empty.
func (pl *Pipeline) Process(raw domain.RawPosting, now time.Time) Outcome {
	title := normalize.CleanText(raw.Title)
	company := normalize.CleanText(raw.Company)
	if title == "" || company == "" {
		return Outcome{Reason: DropEmpty}
	}

	id := normalize.Identity(raw.ExternalID, company, title, string(raw.Source))
	if !pl.Seen.IsNew(id) {
		return Outcome{Posting: domain.Posting{UniqueID: id, Source: raw.Source}, Reason: DropDuplicate}
	}

	p := domain.Posting{
		UniqueID:   id,
		Source:     raw.Source,
		ExternalID: raw.ExternalID,

		Title:       title,
		Company:     company,
		Location:    normalize.CleanText(raw.Location),
		Salary:      normalize.Salary(raw.Salary),
		JobType:     normalize.CleanText(raw.JobType),
		Description: normalize.CleanText(raw.Description),

		URL:                raw.URL,
		ApplyURL:           raw.ApplyURL,
		EasyApplyAvailable: raw.EasyApplyAvailable,
		PostedAt:           raw.PostedAt,
		ScrapedAt:          now,
	}

	p.Keywords = extract.Keywords(p.Title + " " + p.Description)
	p.ExperienceLevel = classify.Experience(p.Title, p.Description)
	p.RemoteFriendly = classify.RemoteFriendly(p.Location, p.Description)
	p.PriorityScore = pl.scorer.Score(&p)
	gate.Evaluate(pl.Cfg, &p)
	track.Init(&p)

	pl.Seen.Admit(id)
	return Outcome{Posting: p, Admitted: true}
}
