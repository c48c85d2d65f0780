package product

// Entry is one product card on a slide. All fields are display strings.
type Entry struct {
	Strain    string `json:"strain"`
	Brand     string `json:"brand"`
	Grams     string `json:"grams"`
	DaysSince string `json:"days_since"`
}

// Lines returns the card text in drawing order.
func (e Entry) Lines() []string {
	return []string{e.Strain, "Brand: " + e.Brand, e.Grams, e.DaysSince}
}

// SlideRequest is the input for one slide. Product order is rendering order.
type SlideRequest struct {
	StoreName string  `json:"store_name"`
	Products  []Entry `json:"products"`
}
