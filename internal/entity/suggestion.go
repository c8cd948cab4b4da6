package entity

// Suggestion is the pre-fill returned by the receipt inference pipeline.
// The caller treats it as a hint, never an automatic commit.
type Suggestion struct {
	Amount         string `json:"amount,omitempty"`
	Confidence     int    `json:"confidence"`
	Category       string `json:"category,omitempty"`
	CategoryIcon   string `json:"category_icon,omitempty"`
	CustomCategory bool   `json:"custom_category,omitempty"`
}
