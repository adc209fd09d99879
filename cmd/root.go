package cmd

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotdraw/internal/config"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tarotdraw",
	Short: "Draw tarot cards one at a time from your deck library",
	Long: `Tarotdraw deals tarot cards in the terminal. Shuffle a deck, draw a card
face down, reveal it, and keep track of every card drawn so far. Progress is
saved per deck, so each command picks up where the last one left off.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()

		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			log.SetOutput(os.Stderr)
		} else {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")
	RootCmd.AddCommand(validateCmd)
}

// Execute runs the root command with ctx available to every subcommand
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}
