package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchorpoint/lakewatch/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	store := NewSnapshotStore(path, testLogger())

	snap := domain.Snapshot{
		Lakes: []domain.ProjectReading{
			{Basin: "Green", Project: "Barren River", TodayPool: domain.Float(552.86)},
		},
		CapturedAt:  time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC),
		DisplayDate: "2026-08-29",
	}
	require.NoError(t, store.Save(snap))

	got, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, snap.DisplayDate, got.DisplayDate)
	assert.True(t, snap.CapturedAt.Equal(got.CapturedAt))
	require.Len(t, got.Lakes, 1)
	assert.Equal(t, "Barren River", got.Lakes[0].Project)
	require.NotNil(t, got.Lakes[0].TodayPool)
	assert.InDelta(t, 552.86, *got.Lakes[0].TodayPool, 1e-9)
	assert.Nil(t, got.Lakes[0].Inflow)
}

func TestSnapshotStore_MissingFile(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "absent.json"), testLogger())

	_, ok := store.Load()
	assert.False(t, ok)
}

func TestSnapshotStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewSnapshotStore(path, testLogger())
	_, ok := store.Load()
	assert.False(t, ok)
}

func TestSnapshotStore_ReplacesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	store := NewSnapshotStore(path, testLogger())

	first := domain.Snapshot{
		Lakes:       []domain.ProjectReading{{Project: "A", TodayPool: domain.Float(1)}, {Project: "B", TodayPool: domain.Float(2)}},
		CapturedAt:  time.Now().UTC(),
		DisplayDate: "2026-08-28",
	}
	require.NoError(t, store.Save(first))

	second := domain.Snapshot{
		Lakes:       []domain.ProjectReading{{Project: "C", TodayPool: domain.Float(3)}},
		CapturedAt:  time.Now().UTC(),
		DisplayDate: "2026-08-29",
	}
	require.NoError(t, store.Save(second))

	got, ok := store.Load()
	require.True(t, ok)
	require.Len(t, got.Lakes, 1)
	assert.Equal(t, "C", got.Lakes[0].Project)
}
