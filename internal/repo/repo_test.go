package repo

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"foodcycle/internal/kv"
	"foodcycle/pkg/domain"
)

var testNow = time.Date(2025, 2, 7, 12, 0, 0, 0, time.UTC)

type countingScheduler struct {
	calls int
}

func (s *countingScheduler) Schedule() { s.calls++ }

func newTestRepo(t *testing.T) (*Repository, *countingScheduler) {
	t.Helper()
	sched := &countingScheduler{}
	seq := 0
	r := New(kv.NewMemoryStore(),
		WithScheduler(sched),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	return r, sched
}

func validSubmission() ListingSubmission {
	return ListingSubmission{
		FoodName:   "Rice",
		FoodType:   domain.TypeVegetarian,
		Quantity:   "2 kg",
		Location:   "Sector 4",
		ExpiryDate: "2025-02-08",
		ExpiryTime: "12:00",
	}
}

var donor = domain.Identity{Name: "Asha", Contact: "1111", Role: domain.RoleDonor}
var buyer = domain.Identity{Name: "Bela", Contact: "9001", Role: domain.RoleBuyer}

func TestCreateListingAssignsIdentityAndSchedulesPush(t *testing.T) {
	r, sched := newTestRepo(t)
	food, err := r.CreateListing(validSubmission(), donor)
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	if food.ID == "" || !food.CreatedAt.Equal(testNow) {
		t.Fatalf("missing id or timestamp: %+v", food)
	}
	if food.DonorName != "Asha" || food.DonorContact != "1111" {
		t.Fatalf("donor identity not recorded: %+v", food)
	}
	if got := len(r.Foods()); got != 1 {
		t.Fatalf("expected 1 stored listing, got %d", got)
	}
	if sched.calls != 1 {
		t.Fatalf("expected one scheduled push, got %d", sched.calls)
	}
}

func TestCreateListingValidation(t *testing.T) {
	r, sched := newTestRepo(t)
	sub := ListingSubmission{ExpiryDate: "2025-02-01", ExpiryTime: "10:00"}
	_, err := r.CreateListing(sub, donor)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	joined := verr.Error()
	for _, want := range []string{
		"Expiry must be in the future.",
		"Food name is required.",
		"Quantity is required.",
		"Location is required.",
		"Please select food type (Vegetarian or Non-vegetarian).",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in %q", want, joined)
		}
	}
	if len(r.Foods()) != 0 {
		t.Fatalf("rejected submission must not be stored")
	}
	if sched.calls != 0 {
		t.Fatalf("rejected submission must not schedule a push")
	}
}

func TestCreateListingRequiresBothExpiryFields(t *testing.T) {
	r, _ := newTestRepo(t)
	sub := validSubmission()
	sub.ExpiryTime = ""
	_, err := r.CreateListing(sub, donor)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Error(), "Expiry date and time are required.") {
		t.Fatalf("unexpected problems: %v", verr.Problems)
	}
}

func TestCreateListingExpiryAtNowIsRejected(t *testing.T) {
	r, _ := newTestRepo(t)
	sub := validSubmission()
	sub.ExpiryDate = "2025-02-07"
	sub.ExpiryTime = "12:00" // exactly the injected clock instant
	if _, err := r.CreateListing(sub, donor); err == nil {
		t.Fatalf("expiry equal to now must be rejected")
	}
}

func TestDuplicateInterestKeepsOneInterestButTwoNotifications(t *testing.T) {
	r, _ := newTestRepo(t)
	food, err := r.CreateListing(validSubmission(), donor)
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}

	if err := r.RecordInterest(food.ID, buyer); err != nil {
		t.Fatalf("first interest: %v", err)
	}
	if err := r.RecordInterest(food.ID, buyer); err != nil {
		t.Fatalf("duplicate interest: %v", err)
	}

	if got := len(r.Interests()); got != 1 {
		t.Fatalf("expected exactly one interest record, got %d", got)
	}
	// The dedup check gates only the interest; every attempt appends a
	// notification.
	notifications := r.Notifications()
	if got := len(notifications); got != 2 {
		t.Fatalf("expected two notification records, got %d", got)
	}
	for _, n := range notifications {
		if n.Type != domain.NotificationInterest || n.FoodName != "Rice" || n.Read {
			t.Fatalf("unexpected notification: %+v", n)
		}
	}
}

func TestNotificationSnapshotsListingName(t *testing.T) {
	r, _ := newTestRepo(t)
	if err := r.RecordInterest("missing-food", buyer); err != nil {
		t.Fatalf("interest on missing listing: %v", err)
	}
	n := r.Notifications()[0]
	if n.FoodName != "Unknown" {
		t.Fatalf("expected Unknown snapshot for missing listing, got %q", n.FoodName)
	}
}

func TestMarkNotificationsReadIsBulk(t *testing.T) {
	r, sched := newTestRepo(t)
	_ = r.RecordInterest("f1", buyer)
	_ = r.RecordInterest("f2", buyer)
	if got := len(r.UnreadNotifications()); got != 2 {
		t.Fatalf("expected 2 unread, got %d", got)
	}
	before := sched.calls
	if err := r.MarkNotificationsRead(); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if got := len(r.UnreadNotifications()); got != 0 {
		t.Fatalf("expected 0 unread after bulk mark, got %d", got)
	}
	if sched.calls != before+1 {
		t.Fatalf("mark read must schedule a push")
	}
}

func TestReviewClampingAndAverage(t *testing.T) {
	r, _ := newTestRepo(t)
	if _, ok := r.AverageRating("f1"); ok {
		t.Fatalf("expected no-rating sentinel with zero reviews")
	}

	if err := r.RecordReview("f1", "Bela", 9, "  great  "); err != nil {
		t.Fatalf("review: %v", err)
	}
	if err := r.RecordReview("f1", "Chad", -3, ""); err != nil {
		t.Fatalf("review: %v", err)
	}
	reviews := r.ReviewsForFood("f1")
	if reviews[0].Rating != 5 || reviews[1].Rating != 1 {
		t.Fatalf("ratings not clamped: %+v", reviews)
	}
	if reviews[0].Comment != "great" {
		t.Fatalf("comment not trimmed: %q", reviews[0].Comment)
	}

	r2, _ := newTestRepo(t)
	_ = r2.RecordReview("f2", "Bela", 5, "")
	_ = r2.RecordReview("f2", "Chad", 4, "")
	avg, ok := r2.AverageRating("f2")
	if !ok || avg != 4.5 {
		t.Fatalf("average = %v ok=%v, want 4.5", avg, ok)
	}
}

func TestMessagesStayInAppendOrder(t *testing.T) {
	r, _ := newTestRepo(t)
	_ = r.RecordMessage("c1", domain.RoleBuyer, "Bela", "hi ")
	_ = r.RecordMessage("c1", domain.RoleDonor, "Asha", "hello")
	_ = r.RecordMessage("c2", domain.RoleBuyer, "Bela", "other thread")

	msgs := r.MessagesFor("c1")
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Text != "hi" || msgs[1].Text != "hello" {
		t.Fatalf("unexpected order or trim: %+v", msgs)
	}
}

func TestActiveFoodsExcludesExpiredWithoutDelete(t *testing.T) {
	store := kv.NewMemoryStore()
	clock := testNow
	r := New(store, WithClock(func() time.Time { return clock }))

	sub := validSubmission()
	sub.ExpiryDate = "2025-02-07"
	sub.ExpiryTime = "14:00" // two hours out
	food, err := r.CreateListing(sub, donor)
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	if got := len(r.ActiveFoods()); got != 1 {
		t.Fatalf("expected fresh listing active, got %d", got)
	}

	// Advance the clock past expiry: same data, no intervening write.
	clock = testNow.Add(3 * time.Hour)
	if got := len(r.ActiveFoods()); got != 0 {
		t.Fatalf("expected expired listing excluded, got %d", got)
	}
	if _, ok := r.FoodByID(food.ID); !ok {
		t.Fatalf("listing must still exist, only excluded from active view")
	}
}

func TestCorruptCollectionDegradesToEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	_ = store.Set(domain.CollectionFoods, []byte("{not json"))
	r := New(store)
	if got := r.Foods(); got != nil {
		t.Fatalf("expected empty foods on parse failure, got %+v", got)
	}
}

func TestSessionDraftAndSavedSet(t *testing.T) {
	r, _ := newTestRepo(t)
	if _, ok := r.Identity(); ok {
		t.Fatalf("expected no identity before login")
	}
	if err := r.SetIdentity(donor); err != nil {
		t.Fatalf("set identity: %v", err)
	}
	got, ok := r.Identity()
	if !ok || got != donor {
		t.Fatalf("identity round trip: %+v ok=%v", got, ok)
	}

	r.SaveDraft(domain.Draft{FoodName: "Bread"})
	draft, ok := r.Draft()
	if !ok || draft.FoodName != "Bread" {
		t.Fatalf("draft round trip: %+v ok=%v", draft, ok)
	}
	r.ClearDraft()
	if _, ok := r.Draft(); ok {
		t.Fatalf("draft must be gone after clear")
	}

	if r.IsSaved("f1") {
		t.Fatalf("nothing saved yet")
	}
	if !r.ToggleSaved("f1") {
		t.Fatalf("first toggle must save")
	}
	if !r.IsSaved("f1") {
		t.Fatalf("expected f1 saved")
	}
	if r.ToggleSaved("f1") {
		t.Fatalf("second toggle must unsave")
	}
}
