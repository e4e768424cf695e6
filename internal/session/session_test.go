package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

func TestAggregator(t *testing.T) {
	start := time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC)
	agg := NewAggregator(start)

	agg.SourceAttempted("indeed")
	agg.SourceAttempted("company")
	agg.SourceSucceeded("indeed")
	agg.PostingEmitted()
	agg.PostingEmitted()
	agg.DuplicateDropped()
	agg.ApplicationSubmitted()

	end := start.Add(10 * time.Minute)
	sess := agg.Finalize(end)

	require.Equal(t, start, sess.StartedAt)
	require.Equal(t, end, sess.FinishedAt)
	require.Equal(t, []string{"indeed", "company"}, sess.SourcesAttempted)
	require.Equal(t, []string{"indeed"}, sess.SourcesSucceeded)
	require.Equal(t, 2, sess.PostingsEmitted)
	require.Equal(t, 1, sess.DuplicatesDropped)
	require.Equal(t, 1, sess.ApplicationsSubmitted)
}

func TestHistoryAppendAndLoad(t *testing.T) {
	h := History{Path: filepath.Join(t.TempDir(), "sessions.json"), Keep: 30}

	require.Empty(t, h.Load())

	sess := domain.Session{StartedAt: time.Now().UTC(), PostingsEmitted: 5}
	require.NoError(t, h.Append(sess))

	got := h.Load()
	require.Len(t, got, 1)
	require.Equal(t, 5, got[0].PostingsEmitted)
}

func TestHistoryBounded(t *testing.T) {
	h := History{Path: filepath.Join(t.TempDir(), "sessions.json"), Keep: 30}

	for i := 0; i < 35; i++ {
		require.NoError(t, h.Append(domain.Session{PostingsEmitted: i}))
	}

	got := h.Load()
	require.Len(t, got, 30, "history must retain only the most recent 30")
	require.Equal(t, 5, got[0].PostingsEmitted, "oldest retained should be run 5")
	require.Equal(t, 34, got[29].PostingsEmitted)
}

func TestHistoryCorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.json")
	h := History{Path: path, Keep: 30}

	require.NoError(t, h.Append(domain.Session{}))

	// scribble over it
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	require.Empty(t, h.Load())
}
