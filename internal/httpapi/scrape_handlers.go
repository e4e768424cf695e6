package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape"
)

type ScrapeHandler struct {
	CfgVal       *atomic.Value // config.Config
	ScrapeStatus *atomic.Value // scrape.Status
	RunScrape    func(ctx context.Context, cfg config.Config) (domain.Session, error)
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := scrape.Status{}
	if v := h.ScrapeStatus.Load(); v != nil {
		st = v.(scrape.Status)
	}
	writeJSON(w, st)
}

// Run kicks off a manual session. One at a time; a second trigger while
// running is refused, not queued.
func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := scrape.Status{}
	if v := h.ScrapeStatus.Load(); v != nil {
		st = v.(scrape.Status)
	}
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.ScrapeStatus.Store(scrape.Status{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	go func() {
		cfg := h.CfgVal.Load().(config.Config)
		sess, err := h.RunScrape(context.Background(), cfg)

		now := time.Now().Format(time.RFC3339)
		next := h.ScrapeStatus.Load().(scrape.Status)
		next.Running = false
		next.LastRunAt = now
		next.LastRaw = sess.PostingsEmitted
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.ScrapeStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
