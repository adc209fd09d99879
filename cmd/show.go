package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotdraw/internal/config"
	"github.com/arcanaland/tarotdraw/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show [card_name]",
	Short: "Display a card from a deck without drawing it",
	Long: `Show displays a card face up with its meaning and interpretation. Image
decks are rendered as ANSI art; symbol decks show the card's glyph.

You can specify a deck using the --deck flag, which will look for the deck
in your deck library (XDG_DATA_HOME/tarot/decks), among the built-in decks, or
as a relative path. If no deck is specified, the active deck is used.

Examples:
  tarotdraw show "The Fool"
  tarotdraw show --deck rider-waite "The Empress"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardName := strings.Join(args, " ")

		deckName, _ := cmd.Flags().GetString("deck")
		if deckName == "" {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			deckName = a.activeDeck(cmd.Context())
			a.Close()
		}

		d, err := deckSource().Load(cmd.Context(), deckName)
		if err != nil {
			return err
		}

		c, err := d.Card(cardName)
		if err != nil {
			return fmt.Errorf("error getting card: %w", err)
		}

		render.New(cmd.OutOrStdout(), config.GetCacheDir()).Card(d, deckName, c)
		return nil
	},
}

func init() {
	addDeckFlag(showCmd)
	RootCmd.AddCommand(showCmd)
}
