package harvest

import (
	"fmt"
	"net/http"
	"time"
)

// SnapshotSchemaVersion is stamped on every persisted snapshot so future
// readers can tell which shape they are looking at.
const SnapshotSchemaVersion = 1

// DefaultStaleAfter is the window after which a snapshot warrants re-harvest.
const DefaultStaleAfter = 3 * time.Hour

// Date is a calendar date without a time-of-day component. It marshals to
// and from the "YYYY-MM-DD" form used in persisted snapshots.
type Date struct {
	time.Time
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON renders the date as a "YYYY-MM-DD" JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a "YYYY-MM-DD" JSON string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a JSON string, got %s", s)
	}
	t, err := time.Parse("2006-01-02", s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}
	d.Time = t
	return nil
}

// UpdateItem is a single harvested announcement. Values are immutable once
// created.
type UpdateItem struct {
	Date  Date   `json:"date"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// Payload maps a source category to its ordered update items.
type Payload map[string][]UpdateItem

// Items returns the total number of update items across all categories.
func (p Payload) Items() int {
	n := 0
	for _, items := range p {
		n += len(items)
	}
	return n
}

// Snapshot is the persisted month-keyed document. LastUpdated is stamped in
// IST regardless of the host timezone.
type Snapshot struct {
	Version     int       `json:"version"`
	LastUpdated time.Time `json:"last_updated"`
	Payload     Payload   `json:"payload"`
}

// Stale reports whether the snapshot is older than the given threshold.
func (s Snapshot) Stale(now time.Time, threshold time.Duration) bool {
	return now.Sub(s.LastUpdated) > threshold
}

// Source describes one endpoint to harvest. A category may be fed by more
// than one source; their results are merged before publishing.
type Source struct {
	// Category is the issuing body the harvested items are grouped under.
	Category string
	// URL is the endpoint to fetch.
	URL string
	// Method is http.MethodGet or http.MethodPost. Empty means GET.
	Method string
	// Form holds form-encoded parameters sent with POST requests.
	Form map[string]string
	// Headers are extra request headers required by the endpoint.
	Headers http.Header
	// Type is the classification tag stamped on harvested items.
	Type string
	// Keywords optionally restricts items to titles matching any keyword.
	Keywords []string
}

// ItemType returns the classification tag for items from this source.
func (s Source) ItemType() string {
	if s.Type == "" {
		return "Update"
	}
	return s.Type
}
