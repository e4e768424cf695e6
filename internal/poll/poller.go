package poll

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scheduler"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape"
)

// StartPoller scrapes on the configured interval until ctx is canceled.
// cfgVal holds config.Config so the HTTP API can swap settings without a
// restart; statusVal holds scrape.Status for the status endpoint.
func StartPoller(ctx context.Context, cfgVal, statusVal *atomic.Value, deps Deps) {
	cfg := cfgVal.Load().(config.Config)
	interval := time.Duration(cfg.Scraping.IntervalMinutes) * time.Minute

	go scheduler.Every(ctx, interval, "poll", func(ctx context.Context) error {
		cfg := cfgVal.Load().(config.Config)
		if !cfg.Sources.Indeed.Enabled && !cfg.Sources.Company.Enabled && !cfg.Sources.LinkedInMail.Enabled {
			return nil
		}

		setStatus(statusVal, func(st *scrape.Status) {
			st.Running = true
			st.LastRunAt = time.Now().Format(time.RFC3339)
		})

		sess, err := RunOnce(ctx, cfg, deps)

		setStatus(statusVal, func(st *scrape.Status) {
			st.Running = false
			st.LastRaw = sess.PostingsEmitted
			if err != nil {
				st.LastError = err.Error()
				return
			}
			st.LastError = ""
			st.LastOkAt = time.Now().Format(time.RFC3339)
		})
		return err
	})
}

func setStatus(statusVal *atomic.Value, mutate func(*scrape.Status)) {
	st := scrape.Status{}
	if v := statusVal.Load(); v != nil {
		st = v.(scrape.Status)
	}
	mutate(&st)
	statusVal.Store(st)
}
