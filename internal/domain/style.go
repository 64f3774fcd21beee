package domain

// Style is a named tone preset applied when rewriting a basic caption.
type Style string

const (
	StyleCreative  Style = "creative"
	StyleFunny     Style = "funny"
	StylePoetic    Style = "poetic"
	StyleMarketing Style = "marketing"
	StyleSocial    Style = "social"
	StyleArtistic  Style = "artistic"

	// StyleCustom requires a caller-supplied free-text description.
	StyleCustom Style = "custom"
)

// StyleInfo describes one catalog entry for the style listing endpoint.
type StyleInfo struct {
	ID          Style  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Styles returns the fixed style catalog in display order.
func Styles() []StyleInfo {
	return []StyleInfo{
		{ID: StyleCreative, Name: "Creative", Description: "Engaging and imaginative"},
		{ID: StyleFunny, Name: "Funny", Description: "Humorous and witty"},
		{ID: StylePoetic, Name: "Poetic", Description: "Beautiful and literary"},
		{ID: StyleMarketing, Name: "Marketing", Description: "Compelling and attention-grabbing"},
		{ID: StyleSocial, Name: "Social Media", Description: "Perfect for social platforms"},
		{ID: StyleArtistic, Name: "Artistic", Description: "Sophisticated and refined"},
		{ID: StyleCustom, Name: "Custom", Description: "Describe your own style"},
	}
}
