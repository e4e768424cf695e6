// Package session rolls up per-run counters and keeps a bounded history of
// finished runs on disk.
package session

import (
	"sync"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

// Aggregator observes counts from each stage boundary of one scraping run.
type Aggregator struct {
	mu   sync.Mutex
	sess domain.Session
}

func NewAggregator(now time.Time) *Aggregator {
	return &Aggregator{sess: domain.Session{StartedAt: now}}
}

func (a *Aggregator) SourceAttempted(name string) {
	a.mu.Lock()
	a.sess.SourcesAttempted = append(a.sess.SourcesAttempted, name)
	a.mu.Unlock()
}

func (a *Aggregator) SourceSucceeded(name string) {
	a.mu.Lock()
	a.sess.SourcesSucceeded = append(a.sess.SourcesSucceeded, name)
	a.mu.Unlock()
}

func (a *Aggregator) PostingEmitted() {
	a.mu.Lock()
	a.sess.PostingsEmitted++
	a.mu.Unlock()
}

func (a *Aggregator) DuplicateDropped() {
	a.mu.Lock()
	a.sess.DuplicatesDropped++
	a.mu.Unlock()
}

func (a *Aggregator) ApplicationSubmitted() {
	a.mu.Lock()
	a.sess.ApplicationsSubmitted++
	a.mu.Unlock()
}

// Finalize stamps the end time and returns the finished record.
func (a *Aggregator) Finalize(now time.Time) domain.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sess.FinishedAt = now
	return a.sess
}
