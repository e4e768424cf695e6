package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

// History is the append-only session log, trimmed to the most recent keep
// entries on every append.
type History struct {
	Path string
	Keep int
}

type historyFile struct {
	Sessions []domain.Session `json:"sessions"`
}

// Load returns the retained sessions, oldest first. A missing or unreadable
// file is an empty history, not an error.
func (h History) Load() []domain.Session {
	b, err := os.ReadFile(h.Path)
	if err != nil {
		return nil
	}
	var f historyFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	return f.Sessions
}

// Append adds a finished session and rewrites the file, keeping the last
// Keep entries.
func (h History) Append(sess domain.Session) error {
	keep := h.Keep
	if keep <= 0 {
		keep = 30
	}

	sessions := append(h.Load(), sess)
	if len(sessions) > keep {
		sessions = sessions[len(sessions)-keep:]
	}

	b, err := json.MarshalIndent(historyFile{Sessions: sessions}, "", "  ")
	if err != nil {
		return fmt.Errorf("session history marshal: %w", err)
	}

	tmp := h.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("session history write: %w", err)
	}
	return os.Rename(tmp, h.Path)
}
