package deck

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// ErrDeckNotFound is returned when no source knows the requested deck
var ErrDeckNotFound = errors.New("deck not found")

//go:embed builtin/*/deck.toml
var builtinFS embed.FS

const builtinRoot = "builtin"

// LoadError reports a deck that could not be fetched or was malformed.
// No partial deck is ever returned alongside it.
type LoadError struct {
	Deck string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load deck %q: %v", e.Deck, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source resolves deck names to decks
type Source interface {
	Load(ctx context.Context, name string) (*Deck, error)
}

// LibrarySource loads decks from the deck library directory, falling back to
// treating the name as a path.
type LibrarySource struct {
	Root string
}

func (s LibrarySource) Load(ctx context.Context, name string) (*Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Deck: name, Err: err}
	}

	deckPath, err := s.resolve(name)
	if err != nil {
		return nil, &LoadError{Deck: name, Err: err}
	}

	d, err := LoadDeck(deckPath)
	if err != nil {
		return nil, &LoadError{Deck: name, Err: err}
	}
	if d.Name == "" {
		d.Name = name
	}
	return d, nil
}

func (s LibrarySource) resolve(name string) (string, error) {
	if s.Root != "" {
		deckPath := filepath.Join(s.Root, name)
		if _, err := os.Stat(filepath.Join(deckPath, DeckFile)); err == nil {
			return deckPath, nil
		}
	}

	if _, err := os.Stat(filepath.Join(name, DeckFile)); err == nil {
		return name, nil
	}

	return "", ErrDeckNotFound
}

// List returns the names of the deck directories in the library
func (s LibrarySource) List() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		// Resolve symbolic links the same way the deck loader does
		info, err := os.Stat(filepath.Join(s.Root, entry.Name()))
		if err != nil || !info.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// EmbeddedSource serves the decks compiled into the binary
type EmbeddedSource struct{}

func (EmbeddedSource) Load(ctx context.Context, name string) (*Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Deck: name, Err: err}
	}

	dir := path.Join(builtinRoot, name)
	if !fs.ValidPath(dir) {
		return nil, &LoadError{Deck: name, Err: ErrDeckNotFound}
	}
	if _, err := fs.Stat(builtinFS, path.Join(dir, DeckFile)); err != nil {
		return nil, &LoadError{Deck: name, Err: ErrDeckNotFound}
	}

	d, err := LoadDeckFS(builtinFS, dir)
	if err != nil {
		return nil, &LoadError{Deck: name, Err: err}
	}
	if d.Name == "" {
		d.Name = name
	}
	return d, nil
}

// List returns the built-in deck names, sorted
func (EmbeddedSource) List() []string {
	entries, err := fs.ReadDir(builtinFS, builtinRoot)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// ChainSource tries each source in order. A deck that exists but fails to
// load stops the chain; only ErrDeckNotFound moves on to the next source.
type ChainSource []Source

func (c ChainSource) Load(ctx context.Context, name string) (*Deck, error) {
	for _, src := range c {
		d, err := src.Load(ctx, name)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, ErrDeckNotFound) {
			return nil, err
		}
	}
	return nil, &LoadError{Deck: name, Err: ErrDeckNotFound}
}

// Install copies a built-in deck into the library directory. Existing decks
// are left alone.
func Install(libraryPath, name string) (bool, error) {
	src := path.Join(builtinRoot, name, DeckFile)
	data, err := fs.ReadFile(builtinFS, src)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrDeckNotFound, name)
	}

	deckPath := filepath.Join(libraryPath, name)
	target := filepath.Join(deckPath, DeckFile)
	if _, err := os.Stat(target); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(deckPath, 0755); err != nil {
		return false, fmt.Errorf("error creating deck directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return false, fmt.Errorf("error writing %s: %w", DeckFile, err)
	}
	return true, nil
}
