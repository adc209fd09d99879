package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotdraw/internal/config"
	"github.com/arcanaland/tarotdraw/internal/deck"
	"github.com/arcanaland/tarotdraw/internal/render"
	"github.com/arcanaland/tarotdraw/internal/session"
	"github.com/arcanaland/tarotdraw/internal/store"
)

// activeDeckKey holds the deck chosen by switch. It lives beside the
// snapshots so that TAROT_DEFAULT_DECK cannot mask it.
const activeDeckKey = "activeDeck"

// app bundles what the session commands share
type app struct {
	cfg      *config.Config
	store    *store.SQLiteStore
	session  *session.Session
	renderer *render.Renderer
}

func (a *app) Close() error {
	return a.store.Close()
}

// deckSource looks in the deck library first, then the built-in decks
func deckSource() deck.Source {
	return deck.ChainSource{
		deck.LibrarySource{Root: config.GetDeckLibraryPath()},
		deck.EmbeddedSource{},
	}
}

// newApp opens the state database and builds an unloaded session
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	st, err := store.Open(cfg.StateDB)
	if err != nil {
		return nil, fmt.Errorf("error opening state: %w", err)
	}

	return &app{
		cfg:      cfg,
		store:    st,
		session:  session.New(deckSource(), st),
		renderer: render.New(cmd.OutOrStdout(), config.GetCacheDir()),
	}, nil
}

// openSession builds an app and loads the deck named by --deck, or the
// default deck when the flag is absent
func openSession(cmd *cobra.Command) (*app, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, err
	}

	deckName, _ := cmd.Flags().GetString("deck")
	if deckName == "" {
		deckName = a.activeDeck(cmd.Context())
	}

	if err := a.session.Load(cmd.Context(), deckName); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func addDeckFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("deck", "d", "", "Deck from your deck library, a built-in deck, or a path to a deck")
}

// activeDeck returns the deck last chosen by switch, or the configured
// default when none was chosen
func (a *app) activeDeck(ctx context.Context) string {
	name, ok, err := a.store.Get(ctx, activeDeckKey)
	if err != nil || !ok || name == "" {
		return a.cfg.DefaultDeck
	}
	return name
}

func (a *app) setActiveDeck(ctx context.Context, name string) error {
	return a.store.Put(ctx, activeDeckKey, name)
}
