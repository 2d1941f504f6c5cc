// Package repo layers CRUD for the five persisted collections on top of
// the key-value store: read the full collection, mutate in memory, write
// the full collection back. Every mutation schedules a best-effort sync
// push through the Scheduler.
package repo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"foodcycle/internal/kv"
	"foodcycle/pkg/domain"
)

// Scheduler requests an eventual push of the local dataset. Implemented by
// the sync engine; a nil scheduler disables syncing.
type Scheduler interface {
	Schedule()
}

// Repository owns all reads and writes of the domain collections.
type Repository struct {
	store kv.Store
	sync  Scheduler
	now   func() time.Time
	newID func() string
}

// Option tweaks repository construction.
type Option func(*Repository)

// WithScheduler wires the sync engine notified after each mutation.
func WithScheduler(s Scheduler) Option {
	return func(r *Repository) { r.sync = s }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator overrides record id generation, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) { r.newID = gen }
}

// New constructs a repository over the given store.
func New(store kv.Store, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the repository's current instant. Exposed so derived-status
// reads elsewhere share the same clock.
func (r *Repository) Now() time.Time {
	return r.now()
}

func (r *Repository) schedulePush() {
	if r.sync != nil {
		r.sync.Schedule()
	}
}

// readList decodes a collection into out. Missing keys, read failures and
// parse failures all degrade to the zero value: the caller always gets a
// usable (possibly empty) list.
func (r *Repository) readList(name string, out any) {
	raw, ok, err := r.store.Get(name)
	if err != nil || !ok {
		return
	}
	_ = json.Unmarshal(raw, out)
}

func (r *Repository) writeList(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.store.Set(name, raw)
}

// Foods returns all listings, expired ones included.
func (r *Repository) Foods() []domain.FoodListing {
	var foods []domain.FoodListing
	r.readList(domain.CollectionFoods, &foods)
	return foods
}

// Interests returns all recorded interests.
func (r *Repository) Interests() []domain.Interest {
	var interests []domain.Interest
	r.readList(domain.CollectionInterests, &interests)
	return interests
}

// Notifications returns all notifications, read and unread.
func (r *Repository) Notifications() []domain.Notification {
	var notifications []domain.Notification
	r.readList(domain.CollectionNotifications, &notifications)
	return notifications
}

// Reviews returns all reviews across listings.
func (r *Repository) Reviews() []domain.Review {
	var reviews []domain.Review
	r.readList(domain.CollectionReviews, &reviews)
	return reviews
}

// Messages returns the shared message log.
func (r *Repository) Messages() []domain.Message {
	var messages []domain.Message
	r.readList(domain.CollectionMessages, &messages)
	return messages
}
