// Package freshness derives a listing's safety status from its expiry
// fields and the current instant. The status is never stored: a listing
// transitions to expired purely as a function of wall-clock time.
package freshness

import (
	"time"

	"foodcycle/pkg/domain"
)

// Status is the coarse freshness classification of a listing.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusSoon    Status = "soon"
	StatusExpired Status = "expired"
)

// SoonWindow is the remaining-time threshold below which a listing is
// classified as "soon". The boundary is inclusive.
const SoonWindow = 24 * time.Hour

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
	endOfDay       = "23:59"
)

// ExpiryAt combines the listing's expiry date and time-of-day into one
// absolute instant in the given location. The time defaults to end-of-day
// when omitted. Returns false when no expiry is set or the fields do not
// parse.
func ExpiryAt(f domain.FoodListing, loc *time.Location) (time.Time, bool) {
	if f.ExpiryDate == "" {
		return time.Time{}, false
	}
	timeStr := f.ExpiryTime
	if timeStr == "" {
		timeStr = endOfDay
	}
	t, err := time.ParseInLocation(dateTimeLayout, f.ExpiryDate+"T"+timeStr, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Remaining returns the duration until expiry (negative once past) and
// whether the listing has a parseable expiry at all.
func Remaining(f domain.FoodListing, now time.Time) (time.Duration, bool) {
	expiry, ok := ExpiryAt(f, now.Location())
	if !ok {
		return 0, false
	}
	return expiry.Sub(now), true
}

// Classify returns the safety status of a listing at the given instant.
// Listings with no (or unparseable) expiry are always safe.
func Classify(f domain.FoodListing, now time.Time) Status {
	remaining, ok := Remaining(f, now)
	if !ok {
		return StatusSafe
	}
	if remaining < 0 {
		return StatusExpired
	}
	if remaining <= SoonWindow {
		return StatusSoon
	}
	return StatusSafe
}

// Active reports whether a listing should appear in the marketplace view,
// i.e. its status is anything but expired.
func Active(f domain.FoodListing, now time.Time) bool {
	return Classify(f, now) != StatusExpired
}
