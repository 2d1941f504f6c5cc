package view

import (
	"sort"
	"strings"

	"foodcycle/internal/chat"
	"foodcycle/internal/freshness"
	"foodcycle/pkg/domain"
)

// Caps match the original home layout: it previews rather than paginates.
const (
	maxNotifications = 10
	maxOwnListings   = 8
	maxChatPreviews  = 5
)

// View is the rendered model for the current state. Exactly one of the
// per-state fields is set, matching State.
type View struct {
	State    State           `json:"state"`
	Donor    *DonorHomeView  `json:"donor,omitempty"`
	Buyer    *BuyerHomeView  `json:"buyer,omitempty"`
	ChatList *ChatListView   `json:"chatList,omitempty"`
	Thread   *ChatThreadView `json:"thread,omitempty"`
}

// ListingSummary is a listing annotated with derived display data.
type ListingSummary struct {
	domain.FoodListing
	Status        freshness.Status `json:"status"`
	InterestCount int              `json:"interestCount"`
}

// DonorHomeView backs the donor's home screen.
type DonorHomeView struct {
	DonorName       string                `json:"donorName"`
	Unread          []domain.Notification `json:"unread"`
	ActiveListings  []ListingSummary      `json:"activeListings"`
	ExpiredListings []ListingSummary      `json:"expiredListings"`
	Conversations   []chat.Conversation   `json:"conversations"`
	Draft           *domain.Draft         `json:"draft,omitempty"`
}

// ListingCard is a marketplace entry for the buyer view.
type ListingCard struct {
	domain.FoodListing
	Status        freshness.Status `json:"status"`
	AverageRating float64          `json:"averageRating"`
	HasRating     bool             `json:"hasRating"`
	ReviewCount   int              `json:"reviewCount"`
	Saved         bool             `json:"saved"`
}

// BuyerHomeView backs the buyer's marketplace screen.
type BuyerHomeView struct {
	BuyerName string        `json:"buyerName"`
	Listings  []ListingCard `json:"listings"`
	Options   BrowseOptions `json:"options"`
}

// ChatListView backs the conversation list of either role.
type ChatListView struct {
	Role          domain.Role         `json:"role"`
	Conversations []chat.Conversation `json:"conversations"`
}

// ChatThreadView backs one open conversation.
type ChatThreadView struct {
	ConversationID string           `json:"conversationId"`
	FoodID         string           `json:"foodId"`
	FoodName       string           `json:"foodName"`
	OtherName      string           `json:"otherName"`
	Messages       []domain.Message `json:"messages"`
}

func threadConversationID(t threadRef) string {
	return chat.ConversationID(t.foodID, t.buyerContact)
}

// render builds the view model for the current state from live data.
func (m *Machine) render() View {
	switch m.state {
	case StateDonorHome:
		return View{State: m.state, Donor: m.renderDonorHome()}
	case StateBuyerHome:
		return View{State: m.state, Buyer: m.renderBuyerHome()}
	case StateChatList:
		return View{State: m.state, ChatList: m.renderChatList()}
	case StateChatThread:
		return View{State: m.state, Thread: m.renderChatThread()}
	default:
		return View{State: m.state}
	}
}

func (m *Machine) renderDonorHome() *DonorHomeView {
	id, _ := m.repo.Identity()
	now := m.repo.Now()

	unread := m.repo.UnreadNotifications()
	if len(unread) > maxNotifications {
		unread = unread[:maxNotifications]
	}

	var active, expired []ListingSummary
	for _, f := range m.repo.ListingsByDonor(id.Contact) {
		summary := ListingSummary{
			FoodListing:   f,
			Status:        freshness.Classify(f, now),
			InterestCount: len(m.repo.InterestsForFood(f.ID)),
		}
		if summary.Status == freshness.StatusExpired {
			expired = append(expired, summary)
		} else {
			active = append(active, summary)
		}
	}
	if len(active) > maxOwnListings {
		active = active[:maxOwnListings]
	}
	if len(expired) > maxOwnListings {
		expired = expired[:maxOwnListings]
	}

	convos := chat.ForDonor(id.Contact, m.repo.Foods(), m.repo.Interests())
	if len(convos) > maxChatPreviews {
		convos = convos[:maxChatPreviews]
	}

	home := &DonorHomeView{
		DonorName:       id.Name,
		Unread:          unread,
		ActiveListings:  active,
		ExpiredListings: expired,
		Conversations:   convos,
	}
	if draft, ok := m.repo.Draft(); ok {
		home.Draft = &draft
	}
	return home
}

func (m *Machine) renderBuyerHome() *BuyerHomeView {
	id, _ := m.repo.Identity()
	now := m.repo.Now()

	foods := m.repo.ActiveFoods()
	foods = m.applyFilter(foods)
	foods = applyQuery(foods, m.browse.Query)
	m.applySort(foods)

	cards := make([]ListingCard, 0, len(foods))
	for _, f := range foods {
		avg, hasRating := m.repo.AverageRating(f.ID)
		cards = append(cards, ListingCard{
			FoodListing:   f,
			Status:        freshness.Classify(f, now),
			AverageRating: avg,
			HasRating:     hasRating,
			ReviewCount:   len(m.repo.ReviewsForFood(f.ID)),
			Saved:         m.repo.IsSaved(f.ID),
		})
	}
	return &BuyerHomeView{BuyerName: id.Name, Listings: cards, Options: m.browse}
}

func (m *Machine) renderChatList() *ChatListView {
	id, _ := m.repo.Identity()
	foods, interests := m.repo.Foods(), m.repo.Interests()
	var convos []chat.Conversation
	if id.Role == domain.RoleDonor {
		convos = chat.ForDonor(id.Contact, foods, interests)
	} else {
		convos = chat.ForBuyer(id.Contact, foods, interests)
	}
	return &ChatListView{Role: id.Role, Conversations: convos}
}

func (m *Machine) renderChatThread() *ChatThreadView {
	id, _ := m.repo.Identity()
	t := m.thread
	if id.Role == domain.RoleBuyer {
		t.buyerContact = id.Contact
	}
	convID := threadConversationID(t)

	food, haveFood := m.repo.FoodByID(t.foodID)
	foodName := "Food"
	if haveFood {
		foodName = food.FoodName
	}

	// The counterpart's name is read live from current records.
	otherName := "Donor"
	if id.Role == domain.RoleDonor {
		otherName = "Buyer"
		for _, i := range m.repo.InterestsForFood(t.foodID) {
			if i.BuyerContact == t.buyerContact {
				otherName = i.BuyerName
				break
			}
		}
	} else if haveFood {
		otherName = food.DonorName
	}

	return &ChatThreadView{
		ConversationID: convID,
		FoodID:         t.foodID,
		FoodName:       foodName,
		OtherName:      otherName,
		Messages:       m.repo.MessagesFor(convID),
	}
}

// Filter narrows the buyer marketplace.
type Filter string

const (
	FilterAll           Filter = "all"
	FilterVegetarian    Filter = "vegetarian"
	FilterNonVegetarian Filter = "non-vegetarian"
	FilterSaved         Filter = "saved"
)

// Sort orders the buyer marketplace.
type Sort string

const (
	SortExpiry   Sort = "expiry"
	SortNewest   Sort = "newest"
	SortLocation Sort = "location"
)

// BrowseOptions carry the buyer's current filter, search and sort.
type BrowseOptions struct {
	Filter Filter `json:"filter"`
	Query  string `json:"query"`
	Sort   Sort   `json:"sort"`
}

// DefaultBrowseOptions mirrors the initial marketplace view: everything,
// soonest expiry first.
func DefaultBrowseOptions() BrowseOptions {
	return BrowseOptions{Filter: FilterAll, Sort: SortExpiry}
}

func (m *Machine) applyFilter(foods []domain.FoodListing) []domain.FoodListing {
	switch m.browse.Filter {
	case FilterSaved:
		var kept []domain.FoodListing
		for _, f := range foods {
			if m.repo.IsSaved(f.ID) {
				kept = append(kept, f)
			}
		}
		return kept
	case FilterVegetarian, FilterNonVegetarian:
		var kept []domain.FoodListing
		for _, f := range foods {
			if f.FoodType == domain.FoodType(m.browse.Filter) {
				kept = append(kept, f)
			}
		}
		return kept
	default:
		return foods
	}
}

func applyQuery(foods []domain.FoodListing, query string) []domain.FoodListing {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return foods
	}
	var kept []domain.FoodListing
	for _, f := range foods {
		if strings.Contains(strings.ToLower(f.FoodName), query) ||
			strings.Contains(strings.ToLower(f.Location), query) ||
			strings.Contains(strings.ToLower(f.Quantity), query) {
			kept = append(kept, f)
		}
	}
	return kept
}

func (m *Machine) applySort(foods []domain.FoodListing) {
	now := m.repo.Now()
	switch m.browse.Sort {
	case SortNewest:
		sort.SliceStable(foods, func(a, b int) bool {
			return foods[a].CreatedAt.After(foods[b].CreatedAt)
		})
	case SortLocation:
		sort.SliceStable(foods, func(a, b int) bool {
			return foods[a].Location < foods[b].Location
		})
	case SortExpiry:
		sort.SliceStable(foods, func(a, b int) bool {
			ra, okA := freshness.Remaining(foods[a], now)
			rb, okB := freshness.Remaining(foods[b], now)
			if !okA {
				return false // no expiry sorts last
			}
			if !okB {
				return true
			}
			return ra < rb
		})
	}
}

// ToggleSaved flips a listing's saved flag and returns the new membership.
// Exposed here because saving happens from the buyer view.
func (m *Machine) ToggleSaved(foodID string) bool {
	return m.repo.ToggleSaved(foodID)
}
