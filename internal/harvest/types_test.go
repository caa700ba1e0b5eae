package harvest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	t.Parallel()

	t.Run("Marshal", func(t *testing.T) {
		t.Parallel()
		data, err := json.Marshal(NewDate(2025, time.October, 8))
		require.NoError(t, err)
		assert.Equal(t, `"2025-10-08"`, string(data))
	})

	t.Run("Unmarshal", func(t *testing.T) {
		t.Parallel()
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2025-10-08"`), &d))
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, time.October, d.Month())
		assert.Equal(t, 8, d.Day())
	})

	t.Run("UnmarshalRejectsNonString", func(t *testing.T) {
		t.Parallel()
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`20251008`), &d))
	})
}

func TestSnapshotStale(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.October, 14, 12, 0, 0, 0, time.UTC)
	threshold := 3 * time.Hour

	fresh := Snapshot{LastUpdated: now.Add(-1 * time.Hour)}
	assert.False(t, fresh.Stale(now, threshold))

	old := Snapshot{LastUpdated: now.Add(-4 * time.Hour)}
	assert.True(t, old.Stale(now, threshold))

	boundary := Snapshot{LastUpdated: now.Add(-threshold)}
	assert.False(t, boundary.Stale(now, threshold), "exactly at the threshold is not yet stale")
}

func TestPayloadItems(t *testing.T) {
	t.Parallel()

	p := Payload{
		"CTUIL": {item(NewDate(2025, time.October, 8), "a", "https://a/1")},
		"CERC": {
			item(NewDate(2025, time.October, 9), "b", "https://a/2"),
			item(NewDate(2025, time.October, 10), "c", "https://a/3"),
		},
	}
	assert.Equal(t, 3, p.Items())
	assert.Equal(t, 0, Payload{}.Items())
}

func TestSourceItemType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Update", Source{}.ItemType())
	assert.Equal(t, "Regulatory", Source{Type: "Regulatory"}.ItemType())
}
