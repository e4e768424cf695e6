// Package dedup tracks which posting identifiers have already been processed
// across runs. The backing file is a plain JSON set: loaded once at open,
// fully rewritten at close. A crash mid-run loses at most that batch's
// admissions, which costs a possible reprocess, never corruption.
package dedup

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gofrs/flock"
)

type Store struct {
	mu    sync.Mutex
	path  string
	lock  *flock.Flock
	seen  map[string]struct{}
	dirty bool
}

type storeFile struct {
	JobIDs []string `json:"job_ids"`
}

// Open loads the seen-set and takes an exclusive file lock so only one
// process owns the store at a time. An unreadable or corrupt file degrades
// to an empty store (everything looks new) instead of failing the run.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("dedup dir: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("dedup lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("dedup store %s is locked by another process", path)
	}

	s := &Store{
		path: path,
		lock: lock,
		seen: make(map[string]struct{}),
	}
	s.load()
	return s, nil
}

func (s *Store) load() {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[dedup] read %s failed, starting empty: %v", s.path, err)
		}
		return
	}

	var f storeFile
	if err := json.Unmarshal(b, &f); err != nil {
		log.Printf("[dedup] parse %s failed, starting empty: %v", s.path, err)
		return
	}
	for _, id := range f.JobIDs {
		s.seen[id] = struct{}{}
	}
	log.Printf("[dedup] loaded %d previously seen ids", len(s.seen))
}

// IsNew reports whether the id has never been admitted.
func (s *Store) IsNew(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[id]
	return !ok
}

// Admit marks the id as seen. The write hits disk at Close.
func (s *Store) Admit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[id]; !ok {
		s.seen[id] = struct{}{}
		s.dirty = true
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Close rewrites the full set and releases the lock. A persist failure is
// returned so the operator sees a run-level warning, but the lock is always
// released.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var persistErr error
	if s.dirty {
		persistErr = s.persistLocked()
	}
	if err := s.lock.Unlock(); err != nil && persistErr == nil {
		persistErr = err
	}
	return persistErr
}

func (s *Store) persistLocked() error {
	ids := make([]string, 0, len(s.seen))
	for id := range s.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	b, err := json.MarshalIndent(storeFile{JobIDs: ids}, "", "  ")
	if err != nil {
		return fmt.Errorf("dedup marshal: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("dedup write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("dedup rename: %w", err)
	}
	s.dirty = false
	return nil
}
