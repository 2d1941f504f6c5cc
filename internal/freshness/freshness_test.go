package freshness

import (
	"testing"
	"time"

	"foodcycle/pkg/domain"
)

var now = time.Date(2025, 2, 7, 12, 0, 0, 0, time.UTC)

func listing(date, timeOfDay string) domain.FoodListing {
	return domain.FoodListing{ExpiryDate: date, ExpiryTime: timeOfDay}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		food domain.FoodListing
		want Status
	}{
		{"no expiry fields", listing("", ""), StatusSafe},
		{"unparseable date", listing("not-a-date", "18:00"), StatusSafe},
		{"unparseable time", listing("2025-02-08", "25:99"), StatusSafe},
		{"well past expiry", listing("2025-02-01", "10:00"), StatusExpired},
		{"one minute past", listing("2025-02-07", "11:59"), StatusExpired},
		{"two hours left", listing("2025-02-07", "14:00"), StatusSoon},
		{"exactly 24h left", listing("2025-02-08", "12:00"), StatusSoon},
		{"just over 24h left", listing("2025-02-08", "12:01"), StatusSafe},
		{"far future", listing("2025-03-01", "09:00"), StatusSafe},
		{"date only defaults to end of day", listing("2025-02-07", ""), StatusSoon},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.food, now); got != tc.want {
				t.Fatalf("Classify = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFutureExpiryNeverExpired(t *testing.T) {
	// Any listing whose expiry instant is strictly after now must not be
	// classified expired, however close the boundary.
	f := listing("2025-02-07", "12:01")
	if got := Classify(f, now); got == StatusExpired {
		t.Fatalf("future expiry classified expired")
	}
}

func TestExpiryAtUsesEndOfDayDefault(t *testing.T) {
	expiry, ok := ExpiryAt(listing("2025-02-07", ""), time.UTC)
	if !ok {
		t.Fatalf("expected parseable expiry")
	}
	want := time.Date(2025, 2, 7, 23, 59, 0, 0, time.UTC)
	if !expiry.Equal(want) {
		t.Fatalf("expiry = %v, want %v", expiry, want)
	}
}

func TestActiveExcludesOnlyExpired(t *testing.T) {
	if Active(listing("2025-02-01", "10:00"), now) {
		t.Fatalf("expired listing reported active")
	}
	if !Active(listing("2025-02-07", "14:00"), now) {
		t.Fatalf("soon listing must stay active")
	}
	if !Active(listing("", ""), now) {
		t.Fatalf("no-expiry listing must stay active")
	}
}

func TestClassifyTransitionsWithClockOnly(t *testing.T) {
	f := listing("2025-02-07", "14:00")
	if got := Classify(f, now); got != StatusSoon {
		t.Fatalf("before expiry: %q", got)
	}
	later := now.Add(3 * time.Hour)
	if got := Classify(f, later); got != StatusExpired {
		t.Fatalf("after expiry: %q", got)
	}
}
