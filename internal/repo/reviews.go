package repo

import (
	"math"
	"strings"

	"foodcycle/pkg/domain"
)

// RecordReview appends a review for a listing. The rating is clamped into
// [1,5] regardless of input; the comment is trimmed.
func (r *Repository) RecordReview(foodID, userName string, rating int, comment string) error {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	reviews := append(r.Reviews(), domain.Review{
		ID:        r.newID(),
		FoodID:    foodID,
		UserName:  userName,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: r.now(),
	})
	if err := r.writeList(domain.CollectionReviews, reviews); err != nil {
		return err
	}
	r.schedulePush()
	return nil
}

// ReviewsForFood returns the reviews of one listing.
func (r *Repository) ReviewsForFood(foodID string) []domain.Review {
	var matched []domain.Review
	for _, rev := range r.Reviews() {
		if rev.FoodID == foodID {
			matched = append(matched, rev)
		}
	}
	return matched
}

// AverageRating returns the arithmetic mean of a listing's ratings rounded
// to one decimal place. The second return is false when no reviews exist.
func (r *Repository) AverageRating(foodID string) (float64, bool) {
	reviews := r.ReviewsForFood(foodID)
	if len(reviews) == 0 {
		return 0, false
	}
	sum := 0
	for _, rev := range reviews {
		sum += rev.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10, true
}
