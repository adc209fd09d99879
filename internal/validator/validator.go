package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arcanaland/tarotdraw/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath string
	Results  ValidationResults
}

func NewValidator(deckPath string) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
	}
}

// Validate checks the deck directory. The error is only non-nil when the
// deck definition cannot be read at all.
func (v *Validator) Validate() (ValidationResults, error) {
	config, err := v.validateDeckToml()
	if err != nil {
		return v.Results, err
	}

	v.validateCards(config.Cards)
	v.validateImages(config.Cards)

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) validateDeckToml() (*deck.DeckConfig, error) {
	deckTomlPath := filepath.Join(v.DeckPath, deck.DeckFile)
	if _, err := os.Stat(deckTomlPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found in %s", deck.DeckFile, v.DeckPath)
	}

	var config deck.DeckConfig
	md, err := toml.DecodeFile(deckTomlPath, &config)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", deck.DeckFile, err)
	}

	for _, key := range md.Undecoded() {
		v.warnf("unknown key in %s: %s", deck.DeckFile, key.String())
	}

	if config.Deck.Name == "" {
		v.errorf("deck.name is required in %s", deck.DeckFile)
	}

	if config.Deck.Description == "" {
		v.warnf("deck.description is empty")
	}

	return &config, nil
}

// validateCards checks card identity and text fields
func (v *Validator) validateCards(cards deck.CardSections) {
	if len(cards) == 0 {
		v.errorf("deck has no cards")
		return
	}

	seen := make(map[string]int, len(cards))
	for i, c := range cards {
		label := fmt.Sprintf("card %d", i+1)
		if strings.TrimSpace(c.Name) == "" {
			v.errorf("%s: name is required", label)
		} else {
			label = fmt.Sprintf("card %d (%s)", i+1, c.Name)
			if first, ok := seen[c.Name]; ok {
				v.errorf("%s: duplicate name, first used by card %d", label, first)
			} else {
				seen[c.Name] = i + 1
			}
		}

		if c.Meaning == "" {
			v.errorf("%s: meaning is required", label)
		}
		if c.Interpretation == "" {
			v.errorf("%s: interpretation is required", label)
		}
		if c.Symbol == "" && c.Image == "" {
			v.warnf("%s: neither symbol nor image is set", label)
		}
	}
}

// validateImages checks that referenced images exist inside the deck
func (v *Validator) validateImages(cards deck.CardSections) {
	for i, c := range cards {
		if c.Image == "" {
			continue
		}

		if filepath.IsAbs(c.Image) {
			v.warnf("card %d (%s): image path should be relative to the deck: %s", i+1, c.Name, c.Image)
		}

		imagePath := c.Image
		if !filepath.IsAbs(imagePath) {
			imagePath = filepath.Join(v.DeckPath, imagePath)
		}
		if _, err := os.Stat(imagePath); os.IsNotExist(err) {
			// Cards with a symbol still render without their image
			if c.Symbol != "" {
				v.warnf("card %d (%s): image not found, the symbol is shown instead: %s", i+1, c.Name, c.Image)
			} else {
				v.errorf("card %d (%s): image not found: %s", i+1, c.Name, c.Image)
			}
			continue
		}

		switch strings.ToLower(filepath.Ext(c.Image)) {
		case ".png", ".jpg", ".jpeg", ".gif":
		default:
			v.warnf("card %d (%s): %s cannot be rendered in the terminal", i+1, c.Name, c.Image)
		}
	}
}
