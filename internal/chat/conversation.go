// Package chat derives conversation identity and assembles per-role
// conversation lists from listings and interests. A conversation is not a
// stored entity; it exists deterministically as (listing, buyer contact).
package chat

import (
	"regexp"

	"foodcycle/pkg/domain"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ConversationID derives the chat-thread key for a listing and buyer
// contact. Every character outside [A-Za-z0-9] in the contact collapses to
// an underscore, so two contacts that sanitize to the same string share a
// thread. Accepted edge case, kept for compatibility with stored messages.
func ConversationID(foodID, buyerContact string) string {
	return foodID + "_" + unsafeChars.ReplaceAllString(buyerContact, "_")
}

// Conversation is one entry in a chat list. Display fields are read live
// from the current records, not frozen at first contact.
type Conversation struct {
	ConversationID string `json:"conversationId"`
	FoodID         string `json:"foodId"`
	FoodName       string `json:"foodName"`
	BuyerName      string `json:"buyerName,omitempty"`
	BuyerContact   string `json:"buyerContact,omitempty"`
	DonorName      string `json:"donorName,omitempty"`
	DonorContact   string `json:"donorContact,omitempty"`
}

// ForDonor returns one conversation per distinct interested buyer of each
// listing the donor owns.
func ForDonor(donorContact string, foods []domain.FoodListing, interests []domain.Interest) []Conversation {
	var list []Conversation
	for _, f := range foods {
		if f.DonorContact != donorContact {
			continue
		}
		for _, i := range interests {
			if i.FoodID != f.ID {
				continue
			}
			list = append(list, Conversation{
				ConversationID: ConversationID(f.ID, i.BuyerContact),
				FoodID:         f.ID,
				FoodName:       f.FoodName,
				BuyerName:      i.BuyerName,
				BuyerContact:   i.BuyerContact,
			})
		}
	}
	return list
}

// ForBuyer returns one conversation per listing the buyer has expressed
// interest in. Interests pointing at missing listings are skipped.
func ForBuyer(buyerContact string, foods []domain.FoodListing, interests []domain.Interest) []Conversation {
	byID := make(map[string]domain.FoodListing, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}
	var list []Conversation
	for _, i := range interests {
		if i.BuyerContact != buyerContact {
			continue
		}
		f, ok := byID[i.FoodID]
		if !ok {
			continue
		}
		list = append(list, Conversation{
			ConversationID: ConversationID(f.ID, buyerContact),
			FoodID:         f.ID,
			FoodName:       f.FoodName,
			DonorName:      f.DonorName,
			DonorContact:   f.DonorContact,
		})
	}
	return list
}
