package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/events"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/session"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScrapeStatus *atomic.Value // stores scrape.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	History session.History

	// Scrape entrypoint (inject for testability)
	RunScrape func(ctx context.Context, cfg config.Config) (domain.Session, error)
}
