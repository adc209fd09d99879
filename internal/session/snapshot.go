package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arcanaland/tarotdraw/internal/card"
)

// KeyPrefix scopes persisted snapshots to a deck name
const KeyPrefix = "tarotState_"

// ErrMalformedSnapshot is returned by Decode for payloads that do not have
// the snapshot shape
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Key returns the storage key for a deck's snapshot
func Key(deckName string) string {
	return KeyPrefix + deckName
}

// Snapshot is the persisted form of a session. Cards are stored by name and
// re-resolved against the deck when loaded.
type Snapshot struct {
	AvailableCardNames []string `json:"availableCardNames"`
	DrawnCardNames     []string `json:"drawnCardNames"`
	CurrentCardName    *string  `json:"currentCardName"`
	AwaitingReveal     bool     `json:"awaitingReveal"`
}

// Groups holds the card groupings of a session
type Groups struct {
	Available      []card.Card
	Drawn          []card.Card
	Current        *card.Card
	AwaitingReveal bool
}

// Serialize captures the session's card groupings by name
func Serialize(s *Session) Snapshot {
	snap := Snapshot{
		AvailableCardNames: names(s.available),
		DrawnCardNames:     names(s.drawn),
		AwaitingReveal:     s.awaitingReveal,
	}
	if s.current != nil {
		name := s.current.Name
		snap.CurrentCardName = &name
	}
	return snap
}

func names(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

// Deserialize resolves a snapshot against the deck's cards. Unknown and
// repeated names are dropped; deck cards the snapshot does not mention are
// returned to the pool. A pending card that cannot be resolved to a pooled
// card leaves nothing face down.
func Deserialize(snap Snapshot, allCards []card.Card) Groups {
	byName := make(map[string]card.Card, len(allCards))
	for _, c := range allCards {
		byName[c.Name] = c
	}

	seen := make(map[string]bool, len(allCards))
	resolve := func(names []string) []card.Card {
		var out []card.Card
		for _, name := range names {
			c, ok := byName[name]
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, c)
		}
		return out
	}

	g := Groups{
		Available: resolve(snap.AvailableCardNames),
		Drawn:     resolve(snap.DrawnCardNames),
	}

	for _, c := range allCards {
		if !seen[c.Name] {
			g.Available = append(g.Available, c)
		}
	}

	if snap.CurrentCardName != nil {
		if c, ok := byName[*snap.CurrentCardName]; ok {
			g.Current = &c
		}
	}

	if snap.AwaitingReveal && g.Current != nil {
		for _, c := range g.Available {
			if c.Name == g.Current.Name {
				g.AwaitingReveal = true
				break
			}
		}
		if !g.AwaitingReveal {
			g.Current = nil
		}
	}

	return g
}

// Encode renders a snapshot as JSON
func Encode(snap Snapshot) (string, error) {
	if snap.AvailableCardNames == nil {
		snap.AvailableCardNames = []string{}
	}
	if snap.DrawnCardNames == nil {
		snap.DrawnCardNames = []string{}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored snapshot. Both name lists must be present.
func Decode(raw string) (Snapshot, error) {
	var wire struct {
		AvailableCardNames *[]string `json:"availableCardNames"`
		DrawnCardNames     *[]string `json:"drawnCardNames"`
		CurrentCardName    *string   `json:"currentCardName"`
		AwaitingReveal     bool      `json:"awaitingReveal"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if wire.AvailableCardNames == nil || wire.DrawnCardNames == nil {
		return Snapshot{}, fmt.Errorf("%w: missing card name lists", ErrMalformedSnapshot)
	}

	return Snapshot{
		AvailableCardNames: *wire.AvailableCardNames,
		DrawnCardNames:     *wire.DrawnCardNames,
		CurrentCardName:    wire.CurrentCardName,
		AwaitingReveal:     wire.AwaitingReveal,
	}, nil
}
