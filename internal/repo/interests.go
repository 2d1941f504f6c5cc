package repo

import "foodcycle/pkg/domain"

// RecordInterest registers a buyer's intent to obtain a listing. The
// interest itself is deduplicated per (foodId, buyerContact); the donor
// notification is appended unconditionally, on duplicate attempts too.
// That asymmetry matches the observed behavior of the original system and
// is load-bearing for notification counts.
func (r *Repository) RecordInterest(foodID string, buyer domain.Identity) error {
	interests := r.Interests()
	exists := false
	for _, i := range interests {
		if i.FoodID == foodID && i.BuyerContact == buyer.Contact {
			exists = true
			break
		}
	}
	if !exists {
		interests = append(interests, domain.Interest{
			ID:           r.newID(),
			FoodID:       foodID,
			BuyerName:    buyer.Name,
			BuyerContact: buyer.Contact,
			CreatedAt:    r.now(),
		})
		if err := r.writeList(domain.CollectionInterests, interests); err != nil {
			return err
		}
	}

	foodName := "Unknown"
	if food, ok := r.FoodByID(foodID); ok {
		foodName = food.FoodName
	}
	notifications := append(r.Notifications(), domain.Notification{
		ID:           r.newID(),
		Type:         domain.NotificationInterest,
		FoodID:       foodID,
		FoodName:     foodName,
		BuyerName:    buyer.Name,
		BuyerContact: buyer.Contact,
		Read:         false,
		CreatedAt:    r.now(),
	})
	if err := r.writeList(domain.CollectionNotifications, notifications); err != nil {
		return err
	}
	r.schedulePush()
	return nil
}

// InterestsForFood returns the interests recorded against one listing.
func (r *Repository) InterestsForFood(foodID string) []domain.Interest {
	var matched []domain.Interest
	for _, i := range r.Interests() {
		if i.FoodID == foodID {
			matched = append(matched, i)
		}
	}
	return matched
}

// HasInterest reports whether a buyer already expressed interest in a
// listing.
func (r *Repository) HasInterest(foodID, buyerContact string) bool {
	for _, i := range r.Interests() {
		if i.FoodID == foodID && i.BuyerContact == buyerContact {
			return true
		}
	}
	return false
}

// UnreadNotifications returns notifications not yet marked read.
func (r *Repository) UnreadNotifications() []domain.Notification {
	var unread []domain.Notification
	for _, n := range r.Notifications() {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return unread
}

// MarkNotificationsRead flips every notification to read in one bulk
// write. Invoked when a recipient opens any conversation.
func (r *Repository) MarkNotificationsRead() error {
	notifications := r.Notifications()
	for idx := range notifications {
		notifications[idx].Read = true
	}
	if err := r.writeList(domain.CollectionNotifications, notifications); err != nil {
		return err
	}
	r.schedulePush()
	return nil
}
