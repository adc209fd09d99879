package deck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arcanaland/tarotdraw/internal/card"
)

// DeckFile is the name of the deck definition inside a deck directory
const DeckFile = "deck.toml"

var (
	// ErrNoCards is returned when a deck definition holds no cards
	ErrNoCards = errors.New("deck has no cards")
	// ErrDuplicateCard is returned when two cards in a deck share a name
	ErrDuplicateCard = errors.New("duplicate card name")
	// ErrCardNotFound is returned by Card for unknown names
	ErrCardNotFound = errors.New("card not found")
)

// Deck represents a named, ordered collection of tarot cards
type Deck struct {
	Name        string
	Description string
	Path        string // Directory on disk, empty for built-in decks

	Cards []card.Card

	index map[string]int
}

// LoadDeck loads a tarot deck from a directory
func LoadDeck(deckPath string) (*Deck, error) {
	d, err := LoadDeckFS(os.DirFS(deckPath), ".")
	if err != nil {
		return nil, err
	}
	d.Path = deckPath
	return d, nil
}

// LoadDeckFS loads the deck stored in dir within fsys
func LoadDeckFS(fsys fs.FS, dir string) (*Deck, error) {
	deckTomlPath := path.Join(dir, DeckFile)
	if _, err := fs.Stat(fsys, deckTomlPath); err != nil {
		return nil, fmt.Errorf("%s not found in %s: %w", DeckFile, dir, err)
	}

	var config DeckConfig
	if _, err := toml.DecodeFS(fsys, deckTomlPath, &config); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", DeckFile, err)
	}

	return New(config.Deck.Name, config.Deck.Description, config.Cards.toCards())
}

// New builds a deck from an ordered card list, enforcing unique names
func New(name, description string, cards []card.Card) (*Deck, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}

	d := &Deck{
		Name:        name,
		Description: description,
		Cards:       make([]card.Card, len(cards)),
		index:       make(map[string]int, len(cards)),
	}
	copy(d.Cards, cards)

	for i, c := range d.Cards {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("card %d has no name", i+1)
		}
		if _, ok := d.index[c.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, c.Name)
		}
		d.index[c.Name] = i
	}

	return d, nil
}

// Card gets a card by its name
func (d *Deck) Card(name string) (card.Card, error) {
	i, ok := d.index[name]
	if !ok {
		return card.Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, name)
	}
	return d.Cards[i], nil
}

// Names returns the card names in deck order
func (d *Deck) Names() []string {
	names := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.Cards)
}

// Deck configuration structures
type DeckConfig struct {
	Deck  DeckSection  `toml:"deck"`
	Cards CardSections `toml:"cards"`
}

type DeckSection struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

type CardSection struct {
	Name           string `toml:"name"`
	Symbol         string `toml:"symbol"`
	Image          string `toml:"image"`
	Meaning        string `toml:"meaning"`
	Interpretation string `toml:"interpretation"`
}

type CardSections []CardSection

func (s CardSections) toCards() []card.Card {
	cards := make([]card.Card, 0, len(s))
	for _, c := range s {
		cards = append(cards, card.Card{
			Name:           c.Name,
			Symbol:         c.Symbol,
			Image:          c.Image,
			Meaning:        c.Meaning,
			Interpretation: c.Interpretation,
		})
	}
	return cards
}
