package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotdraw/internal/session"
)

// drawCmd places a random card face down
var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw a card face down from the current deck",
	Long: `Draw picks a card at random from the cards not yet drawn and places it
face down. Run 'tarotdraw reveal' to turn it over.

Examples:
  tarotdraw draw
  tarotdraw draw --deck rider-waite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s := a.session
		_, ok, err := s.Draw(cmd.Context())
		if err != nil {
			return fmt.Errorf("error saving draw: %w", err)
		}
		if !ok {
			explainIgnored(cmd, s, "draw")
		}

		a.renderer.Session(s)
		return nil
	},
}

// revealCmd turns the face-down card over
var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Reveal the face-down card",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s := a.session
		_, ok, err := s.Reveal(cmd.Context())
		if err != nil {
			return fmt.Errorf("error saving reveal: %w", err)
		}
		if !ok {
			explainIgnored(cmd, s, "reveal")
		}

		a.renderer.Session(s)
		return nil
	},
}

// shuffleCmd returns every card to the deck
var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Return all drawn cards to the deck and clear saved progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		force, _ := cmd.Flags().GetBool("force")

		s := a.session
		ok, err := s.Shuffle(cmd.Context(), force)
		if err != nil {
			return fmt.Errorf("error clearing saved progress: %w", err)
		}
		if !ok {
			explainIgnored(cmd, s, "shuffle")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Shuffled %s.\n", s.DeckName())
		}

		a.renderer.Session(s)
		return nil
	},
}

// statusCmd shows the current deck without changing it
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current deck, the card on the table and the cards drawn so far",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.renderer.Session(a.session)
		return nil
	},
}

// explainIgnored tells the user why an action did nothing. Ignored actions
// are not errors.
func explainIgnored(cmd *cobra.Command, s *session.Session, action string) {
	var msg string
	switch {
	case action == "draw" && s.State() == session.AwaitingReveal:
		msg = "A card is already face down. Run 'tarotdraw reveal' first."
	case action == "draw" && s.Remaining() == 0:
		msg = "The deck is empty. Run 'tarotdraw shuffle' to start over."
	case action == "reveal":
		msg = "There is no face-down card. Run 'tarotdraw draw' first."
	case action == "shuffle" && s.State() == session.AwaitingReveal:
		msg = "A card is face down. Reveal it first or pass --force to discard it."
	default:
		msg = fmt.Sprintf("Nothing to %s.", action)
	}
	fmt.Fprintln(cmd.OutOrStdout(), colorize.YellowString("%s", msg))
}

func init() {
	for _, c := range []*cobra.Command{drawCmd, revealCmd, shuffleCmd, statusCmd} {
		addDeckFlag(c)
		RootCmd.AddCommand(c)
	}
	shuffleCmd.Flags().BoolP("force", "f", false, "Discard a face-down card instead of refusing to shuffle")
}
