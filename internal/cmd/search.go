package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search movies and TV shows",
	Long: `Search movies and TV shows by title.

Examples:
  plexstream search batman
  plexstream search breaking bad`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results, err := a.gateway.Search(cmd.Context(), query)
	if err != nil {
		return err
	}

	printMediaList("Results for "+query, results)
	return nil
}
