package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(input string) Run {
	return Run{
		InputPath:      input,
		OutputPath:     input + ".kk.vtt",
		SourceLanguage: "ru",
		TargetLanguage: "kk",
		CueCount:       42,
		CharCount:      1234,
		Duration:       1500 * time.Millisecond,
	}
}

func TestRecordAndHasRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	has, err := store.HasRun(ctx, "/media/a.vtt", "kk")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.RecordRun(ctx, sampleRun("/media/a.vtt")))

	has, err = store.HasRun(ctx, "/media/a.vtt", "kk")
	require.NoError(t, err)
	assert.True(t, has)

	// a different target language counts as a separate run
	has, err = store.HasRun(ctx, "/media/a.vtt", "en")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, input := range []string{"/media/a.vtt", "/media/b.vtt", "/media/c.vtt"} {
		require.NoError(t, store.RecordRun(ctx, sampleRun(input)))
	}

	runs, err := store.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "/media/c.vtt", runs[0].InputPath)
	assert.Equal(t, "/media/b.vtt", runs[1].InputPath)
	assert.Equal(t, 1500*time.Millisecond, runs[0].Duration)
	assert.Equal(t, 42, runs[0].CueCount)
}

func TestRecentRunsDefaultLimit(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.RecordRun(context.Background(), sampleRun("/media/a.vtt")))

	runs, err := store.RecentRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNewSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore("  ")
	assert.Error(t, err)
}
