package harvest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The three literal date shapes seen across source pages, in priority order.
var (
	dottedDatePattern  = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{2,4})\b`)
	slashedDatePattern = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	textualDatePattern = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]{3,9})\.?,?\s*(\d{2,4})?\b`)
)

var monthsByName = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

// HasDateToken reports whether text contains anything resembling a date.
func HasDateToken(text string) bool {
	return dottedDatePattern.MatchString(text) ||
		slashedDatePattern.MatchString(text) ||
		textualDatePattern.MatchString(text)
}

// ParseDateToken scans a free-form token for a calendar date, trying the
// dotted numeric form (08.10.2025), then slash/dash numeric (08/10/2025,
// 08-10-2025), then textual month (08 Oct 2025, case-insensitive, full month
// names accepted). assumedYear fills in when a textual token omits its year.
// Two-digit years are taken as 2000+YY. When no shape matches, the caller
// receives a *DateParseError and must discard the row.
func ParseDateToken(token string, assumedYear int) (Date, error) {
	for _, pattern := range []*regexp.Regexp{dottedDatePattern, slashedDatePattern} {
		for _, m := range pattern.FindAllStringSubmatch(token, -1) {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year := expandYear(mustAtoi(m[3]), assumedYear)
			if d, ok := makeDate(year, time.Month(month), day); ok {
				return d, nil
			}
		}
	}
	for _, m := range textualDatePattern.FindAllStringSubmatch(token, -1) {
		month, ok := monthByName(m[2])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		year := assumedYear
		if m[3] != "" {
			year = expandYear(mustAtoi(m[3]), assumedYear)
		}
		if d, ok := makeDate(year, month, day); ok {
			return d, nil
		}
	}
	return Date{}, &DateParseError{Token: token}
}

func monthByName(name string) (time.Month, bool) {
	lower := strings.ToLower(name)
	if m, ok := monthsByName[lower]; ok {
		return m, true
	}
	if len(lower) > 3 {
		if m, ok := monthsByName[lower[:3]]; ok {
			return m, true
		}
	}
	return 0, false
}

// makeDate rejects out-of-range components instead of letting time.Date
// normalize them (32.01.2025 must not become 1 Feb).
func makeDate(year int, month time.Month, day int) (Date, bool) {
	if year < 1 || month < time.January || month > time.December || day < 1 {
		return Date{}, false
	}
	d := NewDate(year, month, day)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return Date{}, false
	}
	return d, true
}

func expandYear(year, assumedYear int) int {
	switch {
	case year == 0:
		return assumedYear
	case year < 100:
		return 2000 + year
	default:
		return year
	}
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
