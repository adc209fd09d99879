package card

// Card represents a tarot card
type Card struct {
	Name           string // Identity within a deck
	Symbol         string // Glyph shown on the card face when there is no image
	Image          string // Image path, relative to the deck directory
	Meaning        string // Short keyword summary
	Interpretation string // Reading shown once the card is revealed
}

// HasImage reports whether the card carries an image path
func (c Card) HasImage() bool {
	return c.Image != ""
}

// Face returns the glyph used to represent the card in text listings
func (c Card) Face() string {
	if c.Symbol != "" {
		return c.Symbol
	}
	return "🂠"
}
