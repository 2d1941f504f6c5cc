package repo

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"foodcycle/internal/freshness"
	"foodcycle/pkg/domain"
)

var validate = validator.New()

// ListingSubmission carries the donor form fields for a new listing.
type ListingSubmission struct {
	FoodName    string          `validate:"required"`
	FoodType    domain.FoodType `validate:"required,oneof=vegetarian non-vegetarian"`
	Quantity    string          `validate:"required"`
	Location    string          `validate:"required"`
	ExpiryDate  string
	ExpiryTime  string
	Description string
	ImageURL    string
}

// ValidationError collects every human-readable problem with a submission.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, " ")
}

// CreateListing validates a submission, assigns an id and creation
// timestamp, appends the listing and schedules a push. The expiry instant
// must lie strictly in the future at creation time; it is never re-checked
// afterwards.
func (r *Repository) CreateListing(sub ListingSubmission, donor domain.Identity) (domain.FoodListing, error) {
	sub.FoodName = strings.TrimSpace(sub.FoodName)
	sub.Quantity = strings.TrimSpace(sub.Quantity)
	sub.Location = strings.TrimSpace(sub.Location)
	sub.Description = strings.TrimSpace(sub.Description)

	if problems := r.validateSubmission(sub); len(problems) > 0 {
		return domain.FoodListing{}, &ValidationError{Problems: problems}
	}

	food := domain.FoodListing{
		ID:           r.newID(),
		DonorName:    donor.Name,
		DonorContact: donor.Contact,
		FoodName:     sub.FoodName,
		FoodType:     sub.FoodType,
		Quantity:     sub.Quantity,
		Location:     sub.Location,
		ExpiryDate:   sub.ExpiryDate,
		ExpiryTime:   sub.ExpiryTime,
		Description:  sub.Description,
		ImageURL:     sub.ImageURL,
		CreatedAt:    r.now(),
	}
	foods := append(r.Foods(), food)
	if err := r.writeList(domain.CollectionFoods, foods); err != nil {
		return domain.FoodListing{}, err
	}
	r.schedulePush()
	return food, nil
}

func (r *Repository) validateSubmission(sub ListingSubmission) []string {
	var problems []string

	if sub.ExpiryDate == "" || sub.ExpiryTime == "" {
		problems = append(problems, "Expiry date and time are required.")
	} else {
		now := r.now()
		probe := domain.FoodListing{ExpiryDate: sub.ExpiryDate, ExpiryTime: sub.ExpiryTime}
		expiry, ok := freshness.ExpiryAt(probe, now.Location())
		switch {
		case !ok:
			problems = append(problems, "Invalid expiry date or time.")
		case !expiry.After(now):
			problems = append(problems, "Expiry must be in the future.")
		}
	}

	if err := validate.Struct(sub); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				problems = append(problems, submissionMessage(fe.Field()))
			}
		} else {
			problems = append(problems, "Invalid listing submission.")
		}
	}
	return problems
}

func submissionMessage(field string) string {
	switch field {
	case "FoodName":
		return "Food name is required."
	case "Quantity":
		return "Quantity is required."
	case "Location":
		return "Location is required."
	case "FoodType":
		return "Please select food type (Vegetarian or Non-vegetarian)."
	default:
		return "Invalid listing submission."
	}
}

// FoodByID returns a listing by id.
func (r *Repository) FoodByID(id string) (domain.FoodListing, bool) {
	for _, f := range r.Foods() {
		if f.ID == id {
			return f, true
		}
	}
	return domain.FoodListing{}, false
}

// ActiveFoods returns every listing whose derived status is not expired,
// evaluated fresh against the repository clock.
func (r *Repository) ActiveFoods() []domain.FoodListing {
	now := r.now()
	var active []domain.FoodListing
	for _, f := range r.Foods() {
		if freshness.Active(f, now) {
			active = append(active, f)
		}
	}
	return active
}

// ListingsByDonor returns the listings a donor owns, expired ones
// included.
func (r *Repository) ListingsByDonor(donorContact string) []domain.FoodListing {
	var mine []domain.FoodListing
	for _, f := range r.Foods() {
		if f.DonorContact == donorContact {
			mine = append(mine, f)
		}
	}
	return mine
}
