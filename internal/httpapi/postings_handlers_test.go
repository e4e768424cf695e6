package httpapi

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/events"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/store"
)

func testMux(t *testing.T, postings ...domain.Posting) *http.ServeMux {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	for _, p := range postings {
		_, err := store.InsertPostingIgnore(db.Pool, p)
		require.NoError(t, err)
	}

	var cfg config.Config
	cfg.ApplyDefaults()
	cfgVal := &atomic.Value{}
	cfgVal.Store(cfg)
	statusVal := &atomic.Value{}

	return NewMux(Deps{
		DB:           db.Pool,
		Hub:          events.NewHub(),
		CfgVal:       cfgVal,
		ScrapeStatus: statusVal,
	})
}

func apiPosting(id string, status domain.ApplicationStatus) domain.Posting {
	return domain.Posting{
		UniqueID:          id,
		Source:            domain.SourceIndeed,
		Title:             "Data Engineer",
		Company:           "Acme",
		PriorityScore:     30,
		AutoApplyEligible: true,
		ApplicationStatus: status,
		ScrapedAt:         time.Now().UTC(),
	}
}

func TestGetPosting(t *testing.T) {
	mux := testMux(t, apiPosting("acme_data_engineer_indeed", domain.StatusNotApplied))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/postings/acme_data_engineer_indeed", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"acme_data_engineer_indeed"`)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/postings/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusUpdateForwardOnly(t *testing.T) {
	mux := testMux(t, apiPosting("a_indeed", domain.StatusNotApplied))

	body := strings.NewReader(`{"status":"Manually Applied","reason":"applied on site"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/postings/a_indeed/status", body))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Manually Applied"`)

	// regression without override is refused
	body = strings.NewReader(`{"status":"Not Applied","reason":"oops"}`)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/postings/a_indeed/status", body))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestStatusUpdateOverride(t *testing.T) {
	mux := testMux(t, apiPosting("a_indeed", domain.StatusRejected))

	body := strings.NewReader(`{"status":"Interview","reason":"they called back","override":true}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/postings/a_indeed/status", body))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Interview"`)
}

func TestListEligibleEndpoint(t *testing.T) {
	mux := testMux(t,
		apiPosting("good_indeed", domain.StatusNotApplied),
		apiPosting("done_indeed", domain.StatusAutoApplied),
	)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/eligible", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "good_indeed")
	require.NotContains(t, rec.Body.String(), "done_indeed")
}

func TestMethodNotAllowed(t *testing.T) {
	mux := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/postings", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
