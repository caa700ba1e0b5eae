package harvest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(date Date, title, url string) UpdateItem {
	return UpdateItem{Date: date, Title: title, URL: url, Type: "Update"}
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Draft tariff order", CleanText("  Draft \n\t tariff   order "))
	assert.Equal(t, "", CleanText("   \n "))
}

func TestFilterMonthExactness(t *testing.T) {
	t.Parallel()

	items := []UpdateItem{
		item(NewDate(2025, time.October, 31), "in month", "https://a/1"),
		item(NewDate(2025, time.September, 30), "previous month", "https://a/2"),
		item(NewDate(2025, time.November, 1), "next month", "https://a/3"),
		item(NewDate(2024, time.October, 10), "previous year", "https://a/4"),
		item(NewDate(2025, time.October, 1), "also in month", "https://a/5"),
	}

	got := FilterMonth(items, 2025, time.October)
	require.Len(t, got, 2)
	assert.Equal(t, "in month", got[0].Title)
	assert.Equal(t, "also in month", got[1].Title)
}

func TestFilterKeywords(t *testing.T) {
	t.Parallel()

	items := []UpdateItem{
		item(NewDate(2025, time.October, 1), "Solar open access order", "https://a/1"),
		item(NewDate(2025, time.October, 2), "Staff appointment circular", "https://a/2"),
		item(NewDate(2025, time.October, 3), "GRID connectivity notice", "https://a/3"),
	}

	t.Run("EmptyListKeepsAll", func(t *testing.T) {
		assert.Len(t, FilterKeywords(items, nil), 3)
	})

	t.Run("CaseInsensitiveMatch", func(t *testing.T) {
		got := FilterKeywords(items, []string{"solar", "grid"})
		require.Len(t, got, 2)
		assert.Equal(t, "Solar open access order", got[0].Title)
		assert.Equal(t, "GRID connectivity notice", got[1].Title)
	})
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	t.Run("FirstOccurrenceWins", func(t *testing.T) {
		t.Parallel()
		items := []UpdateItem{
			item(NewDate(2025, time.October, 8), "Tariff order", "https://a/1"),
			item(NewDate(2025, time.October, 9), "Tariff order", "https://a/1"),
			item(NewDate(2025, time.October, 8), "Tariff order", "https://a/2"),
		}
		got := Dedupe(items)
		require.Len(t, got, 2)
		assert.Equal(t, NewDate(2025, time.October, 8).String(), got[0].Date.String())
		assert.Equal(t, "https://a/2", got[1].URL)
	})

	t.Run("WhitespaceNormalizedIdentity", func(t *testing.T) {
		t.Parallel()
		items := []UpdateItem{
			item(NewDate(2025, time.October, 8), "Tariff  order", "https://a/1"),
			item(NewDate(2025, time.October, 8), "Tariff order", "https://a/1"),
		}
		assert.Len(t, Dedupe(items), 1)
	})
}

func TestSortItems(t *testing.T) {
	t.Parallel()

	items := []UpdateItem{
		item(NewDate(2025, time.October, 2), "Alpha", "https://a/1"),
		item(NewDate(2025, time.October, 14), "Beta", "https://a/2"),
		item(NewDate(2025, time.October, 14), "alpha", "https://a/3"),
		item(NewDate(2025, time.October, 2), "Zulu", "https://a/4"),
	}

	SortItems(items)

	// Date descending; equal dates break ties by title descending,
	// case-sensitive as extracted ("alpha" > "Beta" in byte order).
	require.Len(t, items, 4)
	assert.Equal(t, "alpha", items[0].Title)
	assert.Equal(t, "Beta", items[1].Title)
	assert.Equal(t, "Zulu", items[2].Title)
	assert.Equal(t, "Alpha", items[3].Title)

	for i := 0; i < len(items)-1; i++ {
		assert.False(t, items[i].Date.Before(items[i+1].Date.Time),
			"date[%d] must be >= date[%d]", i, i+1)
	}
}
