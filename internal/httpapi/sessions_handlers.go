package httpapi

import (
	"net/http"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/session"
)

type SessionsHandler struct {
	History session.History
}

// List returns recent scrape sessions, newest first.
func (h SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions := h.History.Load()

	out := make([]domain.Session, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		out = append(out, sessions[i])
	}
	writeJSON(w, out)
}
