// Package session implements the draw/reveal state machine over a single
// deck, persisting a snapshot of its progress after every change.
//
// A Session is driven from one event loop at a time. It is not safe for
// concurrent use; the only guard it carries is against re-entry while a
// deck fetch is outstanding.
package session

import (
	"context"
	"errors"
	"log"
	"math/rand"

	"github.com/arcanaland/tarotdraw/internal/card"
	"github.com/arcanaland/tarotdraw/internal/deck"
)

// ErrBusy is returned when a deck load is requested while another is
// still fetching.
var ErrBusy = errors.New("session: deck load in progress")

// State is the phase of a session
type State int

const (
	// Empty means no deck has been loaded yet
	Empty State = iota
	// Ready means a deck is loaded and no card is face down
	Ready
	// AwaitingReveal means a card has been drawn and is face down
	AwaitingReveal
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Ready:
		return "ready"
	case AwaitingReveal:
		return "awaiting-reveal"
	default:
		return "unknown"
	}
}

// Store persists snapshot strings under deck-scoped keys
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Option configures a Session
type Option func(*Session)

// WithRand replaces the uniform index picker used by Draw. intn must return
// a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(s *Session) {
		s.intn = intn
	}
}

// WithLogger sets the logger used for recovered persistence problems
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// Session owns the card groupings of the active deck
type Session struct {
	source deck.Source
	store  Store
	intn   func(n int) int
	logger *log.Logger

	deckName       string
	deck           *deck.Deck
	available      []card.Card
	drawn          []card.Card // most recent first
	current        *card.Card
	awaitingReveal bool

	loading bool
}

// New creates an empty session. store may be nil, in which case nothing is
// persisted.
func New(source deck.Source, store Store, opts ...Option) *Session {
	s := &Session{
		source: source,
		store:  store,
		intn:   rand.Intn,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the named deck and installs it, restoring any saved progress.
// On failure the previous deck and its state are kept and a *deck.LoadError
// is returned.
func (s *Session) Load(ctx context.Context, deckName string) error {
	if s.loading {
		return ErrBusy
	}

	s.loading = true
	d, err := s.source.Load(ctx, deckName)
	s.loading = false

	if err != nil {
		var loadErr *deck.LoadError
		if !errors.As(err, &loadErr) {
			err = &deck.LoadError{Deck: deckName, Err: err}
		}
		return err
	}
	if d == nil || d.Len() == 0 {
		return &deck.LoadError{Deck: deckName, Err: deck.ErrNoCards}
	}

	s.deckName = deckName
	s.deck = d
	s.reset()
	s.restore(ctx)
	return nil
}

// restore applies the saved snapshot for the current deck, if any. Problems
// reading or decoding it leave the fresh state in place.
func (s *Session) restore(ctx context.Context) {
	if s.store == nil {
		return
	}

	key := Key(s.deckName)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Printf("session: reading snapshot %s: %v", key, err)
		return
	}
	if !ok {
		return
	}

	snap, err := Decode(raw)
	if err != nil {
		s.logger.Printf("session: discarding snapshot %s: %v", key, err)
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Printf("session: deleting snapshot %s: %v", key, err)
		}
		return
	}

	s.apply(Deserialize(snap, s.deck.Cards))
}

func (s *Session) apply(g Groups) {
	s.available = g.Available
	s.drawn = g.Drawn
	s.current = g.Current
	s.awaitingReveal = g.AwaitingReveal
}

func (s *Session) reset() {
	s.available = append([]card.Card(nil), s.deck.Cards...)
	s.drawn = nil
	s.current = nil
	s.awaitingReveal = false
}

// Shuffle returns every card to the pool and forgets the deck's saved
// progress. It does nothing while a card is face down unless discardPending
// is set.
func (s *Session) Shuffle(ctx context.Context, discardPending bool) (bool, error) {
	if s.loading || s.deck == nil {
		return false, nil
	}
	if s.awaitingReveal && !discardPending {
		return false, nil
	}

	s.reset()
	if s.store == nil {
		return true, nil
	}
	return true, s.store.Delete(ctx, Key(s.deckName))
}

// Draw picks a card uniformly at random from the pool and places it face
// down. The card stays in the pool until it is revealed.
func (s *Session) Draw(ctx context.Context) (card.Card, bool, error) {
	if s.loading || s.State() != Ready || len(s.available) == 0 {
		return card.Card{}, false, nil
	}

	c := s.available[s.intn(len(s.available))]
	s.current = &c
	s.awaitingReveal = true
	return c, true, s.persist(ctx)
}

// Reveal turns the face-down card up and commits it to the drawn history
func (s *Session) Reveal(ctx context.Context) (card.Card, bool, error) {
	if s.loading || s.State() != AwaitingReveal {
		return card.Card{}, false, nil
	}

	c := *s.current
	for i := range s.available {
		if s.available[i].Name == c.Name {
			s.available = append(s.available[:i], s.available[i+1:]...)
			break
		}
	}
	s.drawn = append([]card.Card{c}, s.drawn...)
	s.awaitingReveal = false
	return c, true, s.persist(ctx)
}

// SwitchDeck loads another deck. A face-down card on the current deck is
// either revealed first (keepPending) or put back into the pool.
func (s *Session) SwitchDeck(ctx context.Context, deckName string, keepPending bool) error {
	if s.loading {
		return ErrBusy
	}

	if s.awaitingReveal {
		if keepPending {
			if _, _, err := s.Reveal(ctx); err != nil {
				return err
			}
		} else {
			s.current = nil
			s.awaitingReveal = false
			if err := s.persist(ctx); err != nil {
				return err
			}
		}
	}

	return s.Load(ctx, deckName)
}

func (s *Session) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	raw, err := Encode(Serialize(s))
	if err != nil {
		return err
	}
	return s.store.Put(ctx, Key(s.deckName), raw)
}

// State reports the current phase
func (s *Session) State() State {
	switch {
	case s.deck == nil:
		return Empty
	case s.awaitingReveal:
		return AwaitingReveal
	default:
		return Ready
	}
}

// DeckName returns the name the current deck was loaded under
func (s *Session) DeckName() string {
	return s.deckName
}

// Deck returns the loaded deck, or nil
func (s *Session) Deck() *deck.Deck {
	return s.deck
}

// AllCards returns the full deck in order
func (s *Session) AllCards() []card.Card {
	if s.deck == nil {
		return nil
	}
	return append([]card.Card(nil), s.deck.Cards...)
}

// Available returns the cards not yet revealed, in deck order
func (s *Session) Available() []card.Card {
	return append([]card.Card(nil), s.available...)
}

// Drawn returns the revealed cards, most recent first
func (s *Session) Drawn() []card.Card {
	return append([]card.Card(nil), s.drawn...)
}

// Current returns the most recently drawn card, face down or up
func (s *Session) Current() (card.Card, bool) {
	if s.current == nil {
		return card.Card{}, false
	}
	return *s.current, true
}

// AwaitingReveal reports whether a drawn card is still face down
func (s *Session) AwaitingReveal() bool {
	return s.awaitingReveal
}

// Remaining returns the number of cards left in the pool
func (s *Session) Remaining() int {
	return len(s.available)
}
