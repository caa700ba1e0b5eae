// Package ist provides a clock anchored to India Standard Time.
package ist

import "time"

// Zone is the fixed IST offset (UTC+5:30). A fixed zone is used instead of
// loading Asia/Kolkata so snapshot timestamps are identical on hosts without
// a tz database.
var Zone = time.FixedZone("IST", 5*3600+30*60)

// Clock implements harvest.Clock using time.Now in IST.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time in IST.
func (Clock) Now() time.Time {
	return time.Now().In(Zone)
}
