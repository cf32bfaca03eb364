package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexstream/plexstream/internal/media"
)

var detailsCmd = &cobra.Command{
	Use:   "details <movie|tv> <id>",
	Short: "Show full details for one title",
	Long: `Show full details for one title, along with recommendations and a
trailer link.

Examples:
  plexstream details movie 27205
  plexstream details tv tt1475582`,
	Args: cobra.ExactArgs(2),
	RunE: runDetailsCmd,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
}

func runDetailsCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	mediaType, err := media.ParseType(args[0])
	if err != nil {
		return err
	}
	id := args[1]

	details, err := a.gateway.Details(ctx, mediaType, id)
	if err != nil {
		return err
	}
	fmt.Print(formatDetails(details))

	trailer, err := a.gateway.TrailerURL(ctx, mediaType, id)
	if err == nil && trailer != "" {
		fmt.Printf("\nTrailer:  %s\n", trailer)
	}

	recommendations, err := a.gateway.Recommendations(ctx, mediaType, id)
	if err != nil {
		return err
	}
	if len(recommendations) > 0 {
		fmt.Println()
		printMediaList("You might also like", recommendations)
	}
	return nil
}
