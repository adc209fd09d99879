package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// switchCmd changes the active deck
var switchCmd = &cobra.Command{
	Use:   "switch [deck_name]",
	Short: "Switch the active deck",
	Long: `Switch makes another deck the active one. Progress on both decks is kept.

If a card is face down on the current deck you must decide what happens to
it: --keep reveals it into the drawn cards before switching, --discard puts it
back into the deck.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		keep, _ := cmd.Flags().GetBool("keep")
		discard, _ := cmd.Flags().GetBool("discard")

		a, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s := a.session
		if s.AwaitingReveal() && !keep && !discard {
			return fmt.Errorf("a card is face down on %s; pass --keep or --discard", s.DeckName())
		}

		previous := s.DeckName()
		if err := s.SwitchDeck(cmd.Context(), target, keep); err != nil {
			return err
		}

		if err := a.setActiveDeck(cmd.Context(), target); err != nil {
			return fmt.Errorf("error saving active deck: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Switched from %s to %s.\n", previous, target)
		a.renderer.Session(s)
		return nil
	},
}

func init() {
	addDeckFlag(switchCmd)
	switchCmd.Flags().Bool("keep", false, "Reveal a face-down card into the drawn cards before switching")
	switchCmd.Flags().Bool("discard", false, "Return a face-down card to the deck before switching")
	switchCmd.MarkFlagsMutuallyExclusive("keep", "discard")
	RootCmd.AddCommand(switchCmd)
}
