package dedup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreshStoreEverythingIsNew(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "seen.json"))
	require.NoError(t, err)
	defer s.Close()

	require.True(t, s.IsNew("x"))
}

func TestAdmitThenIsNew(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "seen.json"))
	require.NoError(t, err)
	defer s.Close()

	s.Admit("x")
	require.False(t, s.IsNew("x"))
	require.True(t, s.IsNew("y"))
}

func TestPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	s, err := Open(path)
	require.NoError(t, err)
	s.Admit("indeed:abc")
	s.Admit("linkedin:123")
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	require.False(t, s2.IsNew("indeed:abc"))
	require.False(t, s2.IsNew("linkedin:123"))
	require.True(t, s2.IsNew("company:zzz"))
	require.Equal(t, 2, s2.Len())
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err, "corrupt store must not fail the run")
	defer s.Close()

	require.True(t, s.IsNew("anything"))
	require.Equal(t, 0, s.Len())
}

func TestSecondOpenIsRejectedWhileLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = Open(path)
	require.Error(t, err, "one process owns the store file at a time")
}

func TestAdmitIsIdempotent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "seen.json"))
	require.NoError(t, err)
	defer s.Close()

	s.Admit("x")
	s.Admit("x")
	require.Equal(t, 1, s.Len())
}
