package cmd

import (
	"github.com/spf13/cobra"

	"github.com/plexstream/plexstream/internal/media"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the storefront rows",
	Long: `Browse the storefront rows: trending, popular movies, popular TV
shows, and top rated titles.`,
	Args: cobra.NoArgs,
	RunE: runBrowseCmd,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	trending, err := a.gateway.Trending(ctx)
	if err != nil {
		return err
	}
	printMediaList("Trending Now", trending)

	popularMovies, err := a.gateway.Popular(ctx, media.TypeMovie)
	if err != nil {
		return err
	}
	printMediaList("Popular Movies", popularMovies)

	popularTV, err := a.gateway.Popular(ctx, media.TypeTV)
	if err != nil {
		return err
	}
	printMediaList("Popular TV Shows", popularTV)

	topMovies, err := a.gateway.TopRated(ctx, media.TypeMovie)
	if err != nil {
		return err
	}
	printMediaList("Top Rated Movies", topMovies)

	topTV, err := a.gateway.TopRated(ctx, media.TypeTV)
	if err != nil {
		return err
	}
	printMediaList("Top Rated TV Shows", topTV)

	return nil
}
