package cmd

import (
	"fmt"
	"os"

	"github.com/arcanaland/tarotdraw/internal/config"
	"github.com/arcanaland/tarotdraw/internal/deck"
	"github.com/spf13/cobra"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage tarot decks in your deck library",
	Long:  `Commands for managing tarot decks in your deck library.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List decks in your deck library and the built-in decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defaultDeck := a.activeDeck(cmd.Context())
		a.Close()

		marker := func(name string) string {
			if name == defaultDeck {
				return "* "
			}
			return "  "
		}

		library := deck.LibrarySource{Root: libraryPath}
		names, err := library.List()
		switch {
		case os.IsNotExist(err):
			fmt.Fprintf(out, "Deck library at %s does not exist.\n", libraryPath)
			fmt.Fprintln(out, "Run 'tarotdraw deck init' to create it.")
		case err != nil:
			return fmt.Errorf("error reading deck library: %w", err)
		}

		seen := make(map[string]bool)
		for _, name := range names {
			d, err := library.Load(cmd.Context(), name)
			if err != nil {
				// Not a valid deck, skip
				continue
			}
			seen[name] = true
			fmt.Fprintf(out, "%s%s (%d cards)\n", marker(name), name, d.Len())
		}

		for _, name := range (deck.EmbeddedSource{}).List() {
			if seen[name] {
				continue
			}
			d, err := (deck.EmbeddedSource{}).Load(cmd.Context(), name)
			if err != nil {
				continue
			}
			fmt.Fprintf(out, "%s%s (%d cards) [BUILT-IN]\n", marker(name), name, d.Len())
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckName := args[0]

		// Try to load the deck to make sure it's valid
		if _, err := deckSource().Load(cmd.Context(), deckName); err != nil {
			return fmt.Errorf("not a valid deck: %w", err)
		}

		if err := config.SetDefaultDeck(deckName); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		// A deck chosen earlier with switch would otherwise keep precedence
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.store.Delete(cmd.Context(), activeDeckKey); err != nil {
			return fmt.Errorf("error resetting active deck: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default deck set to: %s\n", deckName)
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library with the built-in decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}
		fmt.Fprintln(out, "Deck library initialized at:", libraryPath)

		for _, name := range (deck.EmbeddedSource{}).List() {
			installed, err := deck.Install(libraryPath, name)
			if err != nil {
				return fmt.Errorf("error installing %s: %w", name, err)
			}
			if installed {
				fmt.Fprintf(out, "Installed deck: %s\n", name)
			}
		}

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
}
