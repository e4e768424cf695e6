package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/events"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/store"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/track"
)

type PostingsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h PostingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	postings, err := store.ListPostings(r.Context(), h.DB, store.ListOpts{
		Sort:   q.Get("sort"),
		Window: q.Get("window"),
		Limit:  2000,
	})
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, postings)
}

// GetByPath serves /postings/{unique_id}.
func (h PostingsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/postings/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "invalid unique_id", 400)
		return
	}

	p, ok, err := store.GetByUniqueID(r.Context(), h.DB, id)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "no posting with that id")
		return
	}
	writeJSON(w, p)
}

type statusUpdateReq struct {
	Status   string `json:"status"`
	Reason   string `json:"reason"`
	Override bool   `json:"override"`
}

// UpdateStatusByPath serves POST /postings/{unique_id}/status. Forward-only
// transitions unless override is set; override records who forced it in
// the notes trail.
func (h PostingsHandler) UpdateStatusByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/postings/")
	id = strings.TrimSuffix(id, "/status")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "invalid unique_id", 400)
		return
	}

	var req statusUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}

	p, ok, err := store.GetByUniqueID(r.Context(), h.DB, id)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "no posting with that id")
		return
	}

	to := domain.ApplicationStatus(req.Status)
	if err := track.Transition(&p, to, req.Reason, time.Now().UTC(), req.Override); err != nil {
		WriteError(w, r, http.StatusConflict, "invalid_transition", err.Error())
		return
	}
	if err := store.UpdateStatus(h.DB, p); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, "status_updated", 1, map[string]any{
		"unique_id": p.UniqueID,
		"status":    string(p.ApplicationStatus),
	}))
	writeJSON(w, p)
}

// EligibleHandler lists the current auto-apply queue.
type EligibleHandler struct {
	DB       *sql.DB
	MinScore func() int
}

func (h EligibleHandler) List(w http.ResponseWriter, r *http.Request) {
	postings, err := store.ListEligible(r.Context(), h.DB, h.MinScore(), 100)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, postings)
}

// DeleteByPath serves DELETE /postings/{unique_id}.
func (h PostingsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/postings/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "invalid unique_id", 400)
		return
	}

	if err := deletePosting(r.Context(), h.DB, id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, "posting_deleted", 1, map[string]any{"unique_id": id}))
	writeJSON(w, map[string]any{"ok": true, "unique_id": id})
}

func deletePosting(ctx context.Context, db *sql.DB, uniqueID string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM postings WHERE unique_id = ?;`, uniqueID)
	return err
}
