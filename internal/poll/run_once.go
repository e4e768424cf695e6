package poll

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/apply"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/dedup"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/events"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/gate"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/pipeline"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape/company"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape/indeed"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape/linkedinmail"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape/util"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/secrets"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/session"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/sink"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/store"
)

// Deps is everything one scrape session needs. The controller owns the
// run order; sources go one at a time so a partial ban on one site
// doesn't cascade into hammering the others.
type Deps struct {
	DB      *sql.DB
	Seen    *dedup.Store
	Hub     *events.Hub
	Counter *gate.DayCounter
	History session.History
	Sinks   []sink.Sink
	Runner  *apply.Runner
}

const sourceTimeout = 5 * time.Minute

// RunOnce executes a full scrape session: fetch each enabled source in
// turn, push raw postings through the pipeline, persist and fan out the
// admitted ones, optionally drain the apply queue, then record the
// session in history.
func RunOnce(ctx context.Context, cfg config.Config, deps Deps) (domain.Session, error) {
	agg := session.NewAggregator(time.Now().UTC())
	pl := pipeline.New(cfg, deps.Seen)

	var admitted []domain.Posting

	for _, f := range buildFetchers(cfg) {
		agg.SourceAttempted(f.Name())

		fctx, cancel := context.WithTimeout(ctx, sourceTimeout)
		log.Printf("[%s] running...", f.Name())
		res, err := f.Fetch(fctx)
		cancel()
		if err != nil {
			log.Printf("[%s] fetch: %v", f.Name(), err)
			continue
		}
		agg.SourceSucceeded(f.Name())

		for _, raw := range res.Raw {
			out := pl.Process(raw, time.Now().UTC())
			switch {
			case out.Admitted:
				agg.PostingEmitted()
				admitted = append(admitted, out.Posting)
			case out.Reason == pipeline.DropDuplicate:
				agg.DuplicateDropped()
			}
		}
	}

	for _, p := range admitted {
		added, err := store.InsertPostingIgnore(deps.DB, p)
		if err != nil {
			log.Printf("[poll] insert %s: %v", p.UniqueID, err)
			continue
		}
		if added && deps.Hub != nil {
			deps.Hub.Publish(events.PostingCreated(p.UniqueID, p.PriorityScore, p.AutoApplyEligible))
		}
	}

	if len(deps.Sinks) > 0 {
		sctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		if err := sink.WriteAll(sctx, deps.Sinks, admitted); err != nil {
			log.Printf("[poll] sinks: %v", err)
		}
		cancel()
	}

	if deps.Runner != nil && cfg.Apply.Enabled {
		stats, err := deps.Runner.Run(ctx)
		if err != nil {
			log.Printf("[apply] run: %v", err)
		}
		for i := 0; i < stats.Submitted; i++ {
			agg.ApplicationSubmitted()
		}
	}

	sess := agg.Finalize(time.Now().UTC())
	if err := deps.History.Append(sess); err != nil {
		log.Printf("[poll] history append: %v", err)
	}
	if deps.Hub != nil {
		deps.Hub.Publish(events.SessionFinished(
			sess.PostingsEmitted, sess.DuplicatesDropped, sess.ApplicationsSubmitted))
	}

	log.Printf("[poll] session done: emitted=%d dup=%d applied=%d sources=%d/%d",
		sess.PostingsEmitted, sess.DuplicatesDropped, sess.ApplicationsSubmitted,
		len(sess.SourcesSucceeded), len(sess.SourcesAttempted))
	return sess, nil
}

func buildFetchers(cfg config.Config) []scrape.Fetcher {
	limiter := util.NewHostLimiter(cfg.Scraping.RequestsPerSecond, 2)

	var fetchers []scrape.Fetcher
	if cfg.Sources.Indeed.Enabled {
		fetchers = append(fetchers, indeed.New(indeed.Config{
			BaseURL:   cfg.Sources.Indeed.BaseURL,
			Keywords:  cfg.Scraping.TargetKeywords,
			Locations: cfg.Scraping.PreferredLocations,
		}, limiter))
	}
	if cfg.Sources.Company.Enabled {
		fetchers = append(fetchers, company.New(cfg.Sources.Company.Pages, limiter))
	}
	if cfg.Sources.LinkedInMail.Enabled {
		password, err := secrets.GetIMAPPassword(cfg)
		if err != nil {
			log.Printf("[linkedin-mail] disabled: %v", err)
		} else {
			fetchers = append(fetchers, linkedinmail.New(linkedinmail.Config{
				Host:       cfg.Sources.LinkedInMail.IMAPHost,
				Port:       cfg.Sources.LinkedInMail.IMAPPort,
				Username:   cfg.Sources.LinkedInMail.Username,
				Password:   password,
				Mailbox:    cfg.Sources.LinkedInMail.Mailbox,
				SinceDays:  cfg.Sources.LinkedInMail.SinceDays,
				SubjectAny: cfg.Sources.LinkedInMail.SubjectAny,
			}))
		}
	}
	return fetchers
}
