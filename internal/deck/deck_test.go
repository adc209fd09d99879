package deck

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/arcanaland/tarotdraw/internal/card"
)

const sampleDeck = `
[deck]
name = "sample"
description = "A small deck"

[[cards]]
name = "The Fool"
symbol = "🃏"
meaning = "New beginnings"
interpretation = "A fresh start."

[[cards]]
name = "The Magician"
image = "images/magician.png"
meaning = "Manifestation"
interpretation = "Use your tools."
`

func writeDeck(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DeckFile), []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadDeck(t *testing.T) {
	dir := writeDeck(t, sampleDeck)

	d, err := LoadDeck(dir)
	if err != nil {
		t.Fatalf("LoadDeck: %v", err)
	}

	if d.Name != "sample" || d.Description != "A small deck" || d.Path != dir {
		t.Errorf("unexpected deck header %+v", d)
	}
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
	if names := d.Names(); names[0] != "The Fool" || names[1] != "The Magician" {
		t.Errorf("Names = %v", names)
	}

	want := card.Card{
		Name:           "The Magician",
		Image:          "images/magician.png",
		Meaning:        "Manifestation",
		Interpretation: "Use your tools.",
	}
	got, err := d.Card("The Magician")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Card = %+v, want %+v", got, want)
	}
	if !got.HasImage() {
		t.Error("HasImage should be true")
	}
}

func TestLoadDeckErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  error
		wantText string
	}{
		{name: "bad toml", contents: "[deck\nname=", wantText: "error parsing"},
		{name: "no cards", contents: "[deck]\nname = \"x\"\n", wantErr: ErrNoCards},
		{
			name:     "duplicate names",
			contents: "[[cards]]\nname = \"A\"\n[[cards]]\nname = \"A\"\n",
			wantErr:  ErrDuplicateCard,
		},
		{name: "blank name", contents: "[[cards]]\nname = \" \"\n", wantText: "has no name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDeck(writeDeck(t, tt.contents))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantText)
			}
		})
	}
}

func TestLoadDeckMissingFile(t *testing.T) {
	if _, err := LoadDeck(t.TempDir()); err == nil {
		t.Fatal("expected an error for a directory without deck.toml")
	}
}

func TestLoadDeckFS(t *testing.T) {
	fsys := fstest.MapFS{
		"decks/sample/deck.toml": {Data: []byte(sampleDeck)},
	}

	d, err := LoadDeckFS(fsys, "decks/sample")
	if err != nil {
		t.Fatalf("LoadDeckFS: %v", err)
	}
	if d.Path != "" {
		t.Errorf("Path = %q, want empty for in-memory decks", d.Path)
	}
	if d.Len() != 2 {
		t.Errorf("Len = %d, want 2", d.Len())
	}
}

func TestDeckCardNotFound(t *testing.T) {
	d, err := New("x", "", []card.Card{{Name: "A"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Card("B"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("Card error = %v, want ErrCardNotFound", err)
	}
}

func TestNewCopiesCards(t *testing.T) {
	cards := []card.Card{{Name: "A"}, {Name: "B"}}
	d, err := New("x", "", cards)
	if err != nil {
		t.Fatal(err)
	}
	cards[0].Name = "changed"
	if d.Cards[0].Name != "A" {
		t.Error("deck shares its card slice with the caller")
	}
}
