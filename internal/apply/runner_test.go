package apply

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/gate"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/store"
)

type fakeApplier struct {
	name     string
	supports bool
	result   Result
	err      error
	applied  []string
}

func (f *fakeApplier) Name() string                   { return f.name }
func (f *fakeApplier) Supports(p domain.Posting) bool { return f.supports }
func (f *fakeApplier) Apply(_ context.Context, p domain.Posting) (Result, error) {
	f.applied = append(f.applied, p.UniqueID)
	return f.result, f.err
}

func seedDB(t *testing.T, postings ...domain.Posting) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	for _, p := range postings {
		_, err := store.InsertPostingIgnore(db.Pool, p)
		require.NoError(t, err)
	}
	return db
}

func eligiblePosting(id string, score int) domain.Posting {
	return domain.Posting{
		UniqueID:           id,
		Source:             domain.SourceIndeed,
		Title:              "Data Engineer",
		Company:            "Acme",
		PriorityScore:      score,
		EasyApplyAvailable: true,
		AutoApplyEligible:  true,
		ApplicationStatus:  domain.StatusNotApplied,
		ScrapedAt:          time.Now().UTC(),
	}
}

func testRunner(db *store.DB, appliers ...Applier) *Runner {
	r := NewRunner(db.Pool, appliers, &gate.DayCounter{}, 10, 25, 30)
	r.limiter = rate.NewLimiter(rate.Inf, 1)
	return r
}

func TestRunSubmitsBestScoreFirst(t *testing.T) {
	db := seedDB(t, eligiblePosting("low", 27), eligiblePosting("high", 44))
	f := &fakeApplier{name: "fake", supports: true, result: Result{Submitted: true}}
	r := testRunner(db, f)

	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.Submitted)
	require.Equal(t, []string{"high", "low"}, f.applied)

	got, ok, err := store.GetByUniqueID(context.Background(), db.Pool, "high")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.StatusAutoApplied, got.ApplicationStatus)
	require.NotNil(t, got.AppliedAt)
	require.NotNil(t, got.FollowUpAt)
}

func TestRunStopsAtDailyCap(t *testing.T) {
	db := seedDB(t, eligiblePosting("a", 40), eligiblePosting("b", 39), eligiblePosting("c", 38))
	f := &fakeApplier{name: "fake", supports: true, result: Result{Submitted: true}}
	r := testRunner(db, f)
	r.MaxPerDay = 2

	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.Submitted)
	require.Len(t, f.applied, 2)
}

func TestRunSkipsBelowMinScore(t *testing.T) {
	db := seedDB(t, eligiblePosting("low", 21))
	f := &fakeApplier{name: "fake", supports: true, result: Result{Submitted: true}}
	r := testRunner(db, f)

	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.Attempted, "score 21 is below the apply floor of 25")
}

func TestRunRecordsFailureStates(t *testing.T) {
	db := seedDB(t, eligiblePosting("a", 40), eligiblePosting("b", 39), eligiblePosting("c", 38))

	unsupported := &fakeApplier{name: "never", supports: false}
	r := testRunner(db, unsupported)

	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, stats.Failed)

	got, _, err := store.GetByUniqueID(context.Background(), db.Pool, "a")
	require.NoError(t, err)
	require.Equal(t, domain.StatusAutoApplyFailed, got.ApplicationStatus)
}

func TestRunRecordsTransportErrors(t *testing.T) {
	db := seedDB(t, eligiblePosting("a", 40))
	broken := &fakeApplier{name: "smtp", supports: true, err: errors.New("connection refused")}
	r := testRunner(db, broken)

	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Errors)

	got, _, err := store.GetByUniqueID(context.Background(), db.Pool, "a")
	require.NoError(t, err)
	require.Equal(t, domain.StatusAutoApplyError, got.ApplicationStatus)
}

func TestRunNeverReappliesSubmitted(t *testing.T) {
	db := seedDB(t, eligiblePosting("a", 40))
	f := &fakeApplier{name: "fake", supports: true, result: Result{Submitted: true}}
	r := testRunner(db, f)

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.Attempted)
	require.Len(t, f.applied, 1)
}

func TestEmailApplierCompose(t *testing.T) {
	e := NewEmailApplier("smtp.example.com", 587, "me@example.com", "pw")

	p := domain.Posting{
		Title:             "Data Engineer",
		Company:           "Acme",
		Location:          "Remote",
		Keywords:          []string{"Python", "SQL"},
		Description:       "Send resume to careers@acme.com",
		ApplicationMethod: domain.MethodEmailApplication,
	}
	require.True(t, e.Supports(p))

	msg := string(e.compose("careers@acme.com", p))
	require.Contains(t, msg, "Subject: Application for Data Engineer")
	require.Contains(t, msg, "To: careers@acme.com")
	require.Contains(t, msg, "Acme hiring team")
	require.Contains(t, msg, "Python, SQL")
}
