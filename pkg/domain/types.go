package domain

import "time"

type Role string

const (
	RoleDonor Role = "donor"
	RoleBuyer Role = "buyer"
)

type FoodType string

const (
	TypeVegetarian    FoodType = "vegetarian"
	TypeNonVegetarian FoodType = "non-vegetarian"
)

// FoodListing is a donor's surplus posting. The ID is immutable once
// assigned and a listing is never deleted; it goes inert when its derived
// safety status becomes expired.
type FoodListing struct {
	ID           string    `json:"id"`
	DonorName    string    `json:"donorName"`
	DonorContact string    `json:"donorContact"`
	FoodName     string    `json:"foodName"`
	FoodType     FoodType  `json:"foodType"`
	Quantity     string    `json:"quantity"`
	Location     string    `json:"location"`
	ExpiryDate   string    `json:"expiryDate"`
	ExpiryTime   string    `json:"expiryTime,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Interest records a buyer's intent to obtain a listing. At most one
// exists per (foodId, buyerContact) pair; append-only.
type Interest struct {
	ID           string    `json:"id"`
	FoodID       string    `json:"foodId"`
	BuyerName    string    `json:"buyerName"`
	BuyerContact string    `json:"buyerContact"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NotificationInterest is the only notification type currently emitted.
const NotificationInterest = "interest"

// Notification is an append-only alert to a donor. FoodName is a snapshot
// taken at creation and stays frozen even if the listing later changes.
type Notification struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	FoodID       string    `json:"foodId"`
	FoodName     string    `json:"foodName"`
	BuyerName    string    `json:"buyerName"`
	BuyerContact string    `json:"buyerContact"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Review is a rating plus optional comment for a listing. Rating is always
// clamped into [1,5]; reviews are never edited or deleted.
type Review struct {
	ID        string    `json:"id"`
	FoodID    string    `json:"foodId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message belongs to a derived conversation. Append order is chronological
// order.
type Message struct {
	ConversationID string    `json:"conversationId"`
	From           Role      `json:"from"`
	SenderName     string    `json:"senderName"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Identity is the session-scoped user: set at login, cleared only by
// clearing storage.
type Identity struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Role    Role   `json:"role"`
}

// Draft holds transient listing-form fields. A single instance is
// overwritten on every edit and cleared on successful submission.
type Draft struct {
	FoodName    string   `json:"foodName,omitempty"`
	FoodType    FoodType `json:"foodType,omitempty"`
	Quantity    string   `json:"quantity,omitempty"`
	Location    string   `json:"location,omitempty"`
	ExpiryDate  string   `json:"expiryDate,omitempty"`
	ExpiryTime  string   `json:"expiryTime,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// Logical collection names, used both as local storage keys and as the
// composite document's top-level JSON keys.
const (
	CollectionFoods         = "foods"
	CollectionInterests     = "interests"
	CollectionNotifications = "notifications"
	CollectionReviews       = "reviews"
	CollectionMessages      = "messages"
)

// Collections lists the five persisted collections in document order.
var Collections = []string{
	CollectionFoods,
	CollectionInterests,
	CollectionNotifications,
	CollectionReviews,
	CollectionMessages,
}

// StoreDocument is the composite document exchanged with the backing
// service: all five collections serialized together.
type StoreDocument struct {
	Foods         []FoodListing  `json:"foods"`
	Interests     []Interest     `json:"interests"`
	Notifications []Notification `json:"notifications"`
	Reviews       []Review       `json:"reviews"`
	Messages      []Message      `json:"messages"`
}

// EmptyStoreDocument returns a document with all five collections present
// as empty lists, matching what the backing service creates on first read.
func EmptyStoreDocument() StoreDocument {
	return StoreDocument{
		Foods:         []FoodListing{},
		Interests:     []Interest{},
		Notifications: []Notification{},
		Reviews:       []Review{},
		Messages:      []Message{},
	}
}
