package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotdraw/internal/session"
)

// stateCmd groups commands over saved progress
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or clear saved progress",
}

var stateListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List decks with saved progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.store.Keys(cmd.Context(), session.KeyPrefix)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No saved progress.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%-24s %s\n",
				strings.TrimPrefix(e.Key, session.KeyPrefix),
				e.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var stateClearCmd = &cobra.Command{
	Use:   "clear [deck_name...]",
	Short: "Forget saved progress for the given decks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		for _, name := range args {
			if err := a.store.Delete(cmd.Context(), session.Key(name)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s.\n", name)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateListCmd)
	stateCmd.AddCommand(stateClearCmd)
}
