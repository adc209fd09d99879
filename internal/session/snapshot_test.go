package session

import (
	"context"
	"errors"
	"testing"

	"github.com/arcanaland/tarotdraw/internal/card"
)

func strPtr(s string) *string {
	return &s
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(testSource(), nil, WithRand(sequence(4, 1, 2)))
	mustLoad(t, s, "five")

	s.Draw(ctx)
	s.Reveal(ctx)
	s.Draw(ctx)
	s.Reveal(ctx)
	s.Draw(ctx)

	raw, err := Encode(Serialize(s))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	snap, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	g := Deserialize(snap, s.AllCards())
	equalNames(t, "available", g.Available, cardNames(s.Available()))
	equalNames(t, "drawn", g.Drawn, cardNames(s.Drawn()))

	current, _ := s.Current()
	if g.Current == nil || g.Current.Name != current.Name {
		t.Errorf("current = %v, want %q", g.Current, current.Name)
	}
	if !g.AwaitingReveal {
		t.Error("awaiting reveal was lost")
	}
}

func TestDeserialize(t *testing.T) {
	all := makeCards("Card", 4)

	tests := []struct {
		name          string
		snap          Snapshot
		wantAvailable []string
		wantDrawn     []string
		wantCurrent   string
		wantAwaiting  bool
	}{
		{
			name:          "fresh",
			snap:          Snapshot{AvailableCardNames: []string{"Card 0", "Card 1", "Card 2", "Card 3"}, DrawnCardNames: []string{}},
			wantAvailable: []string{"Card 0", "Card 1", "Card 2", "Card 3"},
		},
		{
			name: "unknown names dropped",
			snap: Snapshot{
				AvailableCardNames: []string{"Card 0", "Retired", "Card 2"},
				DrawnCardNames:     []string{"Card 3", "Gone", "Card 1"},
			},
			wantAvailable: []string{"Card 0", "Card 2"},
			wantDrawn:     []string{"Card 3", "Card 1"},
		},
		{
			name: "new deck cards return to the pool",
			snap: Snapshot{
				AvailableCardNames: []string{"Card 2"},
				DrawnCardNames:     []string{"Card 0"},
			},
			wantAvailable: []string{"Card 2", "Card 1", "Card 3"},
			wantDrawn:     []string{"Card 0"},
		},
		{
			name: "duplicates keep first occurrence",
			snap: Snapshot{
				AvailableCardNames: []string{"Card 1", "Card 1", "Card 2", "Card 3"},
				DrawnCardNames:     []string{"Card 0", "Card 2"},
			},
			wantAvailable: []string{"Card 1", "Card 2", "Card 3"},
			wantDrawn:     []string{"Card 0"},
		},
		{
			name: "pending card restored",
			snap: Snapshot{
				AvailableCardNames: []string{"Card 1", "Card 2", "Card 3"},
				DrawnCardNames:     []string{"Card 0"},
				CurrentCardName:    strPtr("Card 2"),
				AwaitingReveal:     true,
			},
			wantAvailable: []string{"Card 1", "Card 2", "Card 3"},
			wantDrawn:     []string{"Card 0"},
			wantCurrent:   "Card 2",
			wantAwaiting:  true,
		},
		{
			name: "face-up card restored",
			snap: Snapshot{
				AvailableCardNames: []string{"Card 1", "Card 2", "Card 3"},
				DrawnCardNames:     []string{"Card 0"},
				CurrentCardName:    strPtr("Card 0"),
			},
			wantAvailable: []string{"Card 1", "Card 2", "Card 3"},
			wantDrawn:     []string{"Card 0"},
			wantCurrent:   "Card 0",
		},
		{
			name: "pending card no longer in deck",
			snap: Snapshot{
				AvailableCardNames: []string{"Card 0", "Card 1", "Card 2", "Card 3"},
				DrawnCardNames:     []string{},
				CurrentCardName:    strPtr("Retired"),
				AwaitingReveal:     true,
			},
			wantAvailable: []string{"Card 0", "Card 1", "Card 2", "Card 3"},
		},
		{
			name: "pending card already drawn",
			snap: Snapshot{
				AvailableCardNames: []string{"Card 1", "Card 2", "Card 3"},
				DrawnCardNames:     []string{"Card 0"},
				CurrentCardName:    strPtr("Card 0"),
				AwaitingReveal:     true,
			},
			wantAvailable: []string{"Card 1", "Card 2", "Card 3"},
			wantDrawn:     []string{"Card 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Deserialize(tt.snap, all)

			equalNames(t, "available", g.Available, tt.wantAvailable)
			equalNames(t, "drawn", g.Drawn, tt.wantDrawn)

			gotCurrent := ""
			if g.Current != nil {
				gotCurrent = g.Current.Name
			}
			if gotCurrent != tt.wantCurrent {
				t.Errorf("current = %q, want %q", gotCurrent, tt.wantCurrent)
			}
			if g.AwaitingReveal != tt.wantAwaiting {
				t.Errorf("awaiting = %v, want %v", g.AwaitingReveal, tt.wantAwaiting)
			}
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	raw, err := Encode(Snapshot{})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"availableCardNames":[],"drawnCardNames":[],"currentCardName":null,"awaitingReveal":false}`
	if raw != want {
		t.Errorf("Encode = %s, want %s", raw, want)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "full", raw: `{"availableCardNames":["A"],"drawnCardNames":["B"],"currentCardName":"B","awaitingReveal":false}`},
		{name: "without awaiting flag", raw: `{"availableCardNames":["A"],"drawnCardNames":[],"currentCardName":null}`},
		{name: "not json", raw: `{not json`, wantErr: true},
		{name: "empty", raw: ``, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "missing drawn", raw: `{"availableCardNames":[]}`, wantErr: true},
		{name: "null list", raw: `{"availableCardNames":null,"drawnCardNames":[]}`, wantErr: true},
		{name: "trailing garbage", raw: `{"availableCardNames":[],"drawnCardNames":[]} x`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedSnapshot) {
					t.Errorf("Decode error = %v, want ErrMalformedSnapshot", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Decode: %v", err)
			}
		})
	}
}

func TestKey(t *testing.T) {
	if got := Key("emoji"); got != "tarotState_emoji" {
		t.Errorf("Key = %q", got)
	}
}

func TestSerializeEmptySession(t *testing.T) {
	snap := Serialize(New(testSource(), nil))
	if snap.CurrentCardName != nil || snap.AwaitingReveal {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	g := Deserialize(snap, []card.Card{})
	if len(g.Available) != 0 || len(g.Drawn) != 0 {
		t.Errorf("unexpected groups %+v", g)
	}
}
