package view

// PresetImage is a pre-selected stock photo donors can attach to a
// listing instead of uploading anything.
type PresetImage struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// PresetImages lists the stock photos offered on the donor form, in
// display order. The first entry doubles as the fallback image for
// listings submitted without one.
var PresetImages = []PresetImage{
	{Label: "Rice & grains", URL: "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=400&h=300&fit=crop"},
	{Label: "Bread & bakery", URL: "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400&h=300&fit=crop"},
	{Label: "Vegetables", URL: "https://images.unsplash.com/photo-1540420773420-3366772f4999?w=400&h=300&fit=crop"},
	{Label: "Fruits", URL: "https://images.unsplash.com/photo-1619566636858-adf3ef46400b?w=400&h=300&fit=crop"},
	{Label: "Dairy & eggs", URL: "https://images.unsplash.com/photo-1550583724-b2692b85b150?w=400&h=300&fit=crop"},
	{Label: "Dal & curry", URL: "https://images.unsplash.com/photo-1565557623262-b51c2513a641?w=400&h=300&fit=crop"},
	{Label: "Cooked meal", URL: "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=400&h=300&fit=crop"},
	{Label: "Packaged food", URL: "https://images.unsplash.com/photo-1604719312566-8912e9227c6a?w=400&h=300&fit=crop"},
}

// DefaultImageURL returns the fallback listing image.
func DefaultImageURL() string {
	return PresetImages[0].URL
}

// QuickFillItem pre-populates the donor form for common surplus items.
type QuickFillItem struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	ImageIndex int    `json:"imageIndex"`
}

// QuickFillItems lists the quick-fill suggestions shown to donors.
var QuickFillItems = []QuickFillItem{
	{Name: "Rice", Quantity: "2–5 kg", ImageIndex: 0},
	{Name: "Bread", Quantity: "5–10 packets", ImageIndex: 1},
	{Name: "Vegetables", Quantity: "1–3 kg", ImageIndex: 2},
	{Name: "Fruits", Quantity: "1–2 kg", ImageIndex: 3},
	{Name: "Dal", Quantity: "1–2 kg", ImageIndex: 5},
	{Name: "Cooked meal", Quantity: "2–4 servings", ImageIndex: 6},
	{Name: "Dairy", Quantity: "As per pack", ImageIndex: 4},
	{Name: "Packaged snacks", Quantity: "Multiple packets", ImageIndex: 7},
}
