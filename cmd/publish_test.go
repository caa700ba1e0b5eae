package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilroby/nsefi-harvester/internal/harvest"
	"github.com/emilroby/nsefi-harvester/internal/snapshot/memory"
)

type staticClock struct{ t time.Time }

func (c staticClock) Now() time.Time { return c.t }

func TestParseMonthArgs(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		year, month, err := parseMonthArgs([]string{"2025", "10"})
		require.NoError(t, err)
		assert.Equal(t, 2025, year)
		assert.Equal(t, time.October, month)
	})

	for _, tc := range [][]string{
		{"abc", "10"},
		{"2025", "abc"},
		{"0", "10"},
		{"-2025", "10"},
		{"2025", "0"},
		{"2025", "13"},
	} {
		_, _, err := parseMonthArgs(tc)
		assert.Error(t, err, "args %v", tc)
	}
}

func TestSnapshotIsFresh(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.October, 14, 12, 0, 0, 0, time.UTC)
	threshold := 3 * time.Hour

	t.Run("AbsentMeansHarvestDue", func(t *testing.T) {
		t.Parallel()
		store := memory.New(staticClock{t: now})
		fresh, err := snapshotIsFresh(context.Background(), store, staticClock{t: now}, 2025, time.October, threshold)
		require.NoError(t, err)
		assert.False(t, fresh)
	})

	t.Run("RecentWriteIsFresh", func(t *testing.T) {
		t.Parallel()
		store := memory.New(staticClock{t: now.Add(-1 * time.Hour)})
		_, err := store.Write(context.Background(), 2025, 10, harvest.Payload{})
		require.NoError(t, err)

		fresh, err := snapshotIsFresh(context.Background(), store, staticClock{t: now}, 2025, time.October, threshold)
		require.NoError(t, err)
		assert.True(t, fresh)
	})

	t.Run("OldWriteIsStale", func(t *testing.T) {
		t.Parallel()
		store := memory.New(staticClock{t: now.Add(-4 * time.Hour)})
		_, err := store.Write(context.Background(), 2025, 10, harvest.Payload{})
		require.NoError(t, err)

		fresh, err := snapshotIsFresh(context.Background(), store, staticClock{t: now}, 2025, time.October, threshold)
		require.NoError(t, err)
		assert.False(t, fresh)
	})
}
