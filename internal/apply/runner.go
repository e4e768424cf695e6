package apply

import (
	"context"
	"database/sql"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/gate"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/store"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/track"
)

// Runner drains the eligible queue after a scrape session: best score
// first, daily cap enforced, paced so applications don't burst.
type Runner struct {
	DB        *sql.DB
	Appliers  []Applier
	Counter   *gate.DayCounter
	MaxPerDay int
	MinScore  int

	// OnSubmitted fires after each successful application, once its
	// status is persisted.
	OnSubmitted func(p domain.Posting, via string)

	limiter *rate.Limiter
	now     func() time.Time
}

func NewRunner(db *sql.DB, appliers []Applier, counter *gate.DayCounter, maxPerDay, minScore, delaySeconds int) *Runner {
	if delaySeconds <= 0 {
		delaySeconds = 30
	}
	return &Runner{
		DB:        db,
		Appliers:  appliers,
		Counter:   counter,
		MaxPerDay: maxPerDay,
		MinScore:  minScore,
		limiter:   rate.NewLimiter(rate.Every(time.Duration(delaySeconds)*time.Second), 1),
		now:       time.Now,
	}
}

// Stats totals one runner pass.
type Stats struct {
	Attempted int
	Submitted int
	Failed    int
	Errors    int
}

func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	candidates, err := store.ListEligible(ctx, r.DB, r.MinScore, r.MaxPerDay*2)
	if err != nil {
		return stats, err
	}

	for _, p := range candidates {
		if r.Counter.AtCap(r.MaxPerDay) {
			log.Printf("[apply] daily cap %d reached, stopping", r.MaxPerDay)
			break
		}
		if err := r.limiter.Wait(ctx); err != nil {
			return stats, err
		}

		stats.Attempted++
		r.applyOne(ctx, p, &stats)
	}
	return stats, nil
}

func (r *Runner) applyOne(ctx context.Context, p domain.Posting, stats *Stats) {
	name, res, err := Dispatch(ctx, r.Appliers, p)
	now := r.now()

	switch {
	case err == ErrUnsupported:
		stats.Failed++
		r.transition(&p, domain.StatusAutoApplyFailed, "no applier supports this posting", now)
	case err != nil:
		stats.Errors++
		log.Printf("[apply] %s: %s: %v", p.UniqueID, name, err)
		r.transition(&p, domain.StatusAutoApplyError, err.Error(), now)
	case !res.Submitted:
		stats.Failed++
		r.transition(&p, domain.StatusAutoApplyFailed, res.Detail, now)
	default:
		stats.Submitted++
		r.Counter.Inc()
		log.Printf("[apply] %s: submitted via %s (%s)", p.UniqueID, name, res.Detail)
		r.transition(&p, domain.StatusAutoApplied, "submitted via "+name, now)
		if r.OnSubmitted != nil {
			r.OnSubmitted(p, name)
		}
	}
}

func (r *Runner) transition(p *domain.Posting, to domain.ApplicationStatus, reason string, now time.Time) {
	if err := track.Transition(p, to, reason, now, false); err != nil {
		log.Printf("[apply] %s: transition to %s: %v", p.UniqueID, to, err)
		return
	}
	if err := store.UpdateStatus(r.DB, *p); err != nil {
		log.Printf("[apply] %s: persist status: %v", p.UniqueID, err)
	}
}
