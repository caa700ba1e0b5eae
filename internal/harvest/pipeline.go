package harvest

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// CleanText collapses runs of whitespace to a single space and trims.
func CleanText(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// FilterMonth keeps only items whose date falls exactly in (year, month).
// There is no adjacency tolerance.
func FilterMonth(items []UpdateItem, year int, month time.Month) []UpdateItem {
	out := items[:0:0]
	for _, it := range items {
		if it.Date.Year() == year && it.Date.Month() == month {
			out = append(out, it)
		}
	}
	return out
}

// FilterKeywords keeps items whose title contains any of the keywords,
// case-insensitively. An empty keyword list keeps everything.
func FilterKeywords(items []UpdateItem, keywords []string) []UpdateItem {
	if len(keywords) == 0 {
		return items
	}
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			lowered = append(lowered, kw)
		}
	}
	out := items[:0:0]
	for _, it := range items {
		title := strings.ToLower(it.Title)
		for _, kw := range lowered {
			if strings.Contains(title, kw) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Dedupe collapses items sharing the same (title, url) identity, keeping the
// first occurrence. Titles are whitespace-normalized before comparison.
func Dedupe(items []UpdateItem) []UpdateItem {
	type key struct {
		title string
		url   string
	}
	seen := make(map[key]struct{}, len(items))
	out := items[:0:0]
	for _, it := range items {
		k := key{title: CleanText(it.Title), url: it.URL}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// SortItems orders items by date descending, breaking ties by title
// descending (case-sensitive lexicographic). The sort is stable, so equal
// keys preserve their input order.
func SortItems(items []UpdateItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date.Time) {
			return items[i].Date.After(items[j].Date.Time)
		}
		return items[i].Title > items[j].Title
	})
}
