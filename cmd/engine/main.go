package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/apply"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/dedup"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/events"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/gate"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/httpapi"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/poll"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scheduler"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/secrets"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/session"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/sink"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/store"
)

func main() {
	_ = godotenv.Load()

	dataDir := os.Getenv("JOBS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	normalized, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		for _, e := range vr.Errors {
			log.Printf("[config] error: %s", e)
		}
		log.Fatalf("config invalid (%s)", userCfgPath)
	}
	for _, w := range vr.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	cfg = normalized
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "postings.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	seen, err := dedup.Open(filepath.Join(dataDir, "processed_jobs.json"))
	if err != nil {
		log.Fatalf("dedup store: %v", err)
	}

	hub := events.NewHub()
	counter := &gate.DayCounter{}
	history := session.History{
		Path: filepath.Join(dataDir, "sessions.json"),
		Keep: cfg.History.KeepSessions,
	}

	var runner *apply.Runner
	if cfg.Apply.Enabled {
		var appliers []apply.Applier
		smtpPassword, err := secrets.GetSMTPPassword(cfg)
		if err != nil {
			log.Printf("[apply] email applier disabled: %v", err)
		} else {
			appliers = append(appliers, apply.NewEmailApplier(
				cfg.Apply.SMTPHost, cfg.Apply.SMTPPort, cfg.Apply.FromEmail, smtpPassword))
		}
		runner = apply.NewRunner(db.Pool, appliers, counter,
			cfg.Apply.MaxApplicationsPerDay, cfg.Apply.MinScore, cfg.Apply.DelaySeconds)
		runner.OnSubmitted = func(p domain.Posting, via string) {
			hub.Publish(events.ApplicationSubmitted(p.UniqueID, via))
		}
	}

	var sinks []sink.Sink
	if cfg.Sinks.CSVPath != "" {
		sinks = append(sinks, &sink.CSVSink{Path: filepath.Join(dataDir, cfg.Sinks.CSVPath)})
	}
	if cfg.Sinks.BackupDir != "" {
		sinks = append(sinks, sink.NewBackupSink(filepath.Join(dataDir, cfg.Sinks.BackupDir)))
	}

	deps := poll.Deps{
		DB:      db.Pool,
		Seen:    seen,
		Hub:     hub,
		Counter: counter,
		History: history,
		Sinks:   sinks,
		Runner:  runner,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var statusVal atomic.Value
	poll.StartPoller(ctx, &cfgVal, &statusVal, deps)

	// daily application budget resets at local midnight; stale rows go with it
	go scheduler.AtMidnight(ctx, "midnight", func(context.Context) error {
		counter.Reset()
		log.Printf("[apply] daily counter reset")
		if n, err := store.CleanupOld(db.Pool); err != nil {
			log.Printf("[store] cleanup: %v", err)
		} else if n > 0 {
			log.Printf("[store] cleaned up %d old postings", n)
		}
		return nil
	})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		CfgVal:       &cfgVal,
		ScrapeStatus: &statusVal,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		History:      history,
		RunScrape: func(ctx context.Context, cfg config.Config) (domain.Session, error) {
			return poll.RunOnce(ctx, cfg, deps)
		},
	})

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID, httpapi.AccessLog, httpapi.Recover, httpapi.Cors),
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)
	log.Printf("shutdown token: %s", token)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Printf("serve: %v", err)
	}

	// flush the seen-set before exiting so dedup survives restarts
	if err := seen.Close(); err != nil {
		log.Printf("[dedup] close: %v", err)
	}
}
