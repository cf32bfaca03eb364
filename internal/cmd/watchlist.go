package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexstream/plexstream/internal/media"
	"github.com/plexstream/plexstream/internal/store"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Manage the watch list",
}

var watchlistAddCmd = &cobra.Command{
	Use:   "add <movie|tv> <id>",
	Short: "Save a title to the watch list",
	Args:  cobra.ExactArgs(2),
	RunE:  runWatchlistAddCmd,
}

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a title from the watch list",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistRemoveCmd,
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the watch list",
	Args:  cobra.NoArgs,
	RunE:  runWatchlistListCmd,
}

var watchlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the watch list",
	Args:  cobra.NoArgs,
	RunE:  runWatchlistClearCmd,
}

func init() {
	watchlistCmd.AddCommand(watchlistAddCmd, watchlistRemoveCmd, watchlistListCmd, watchlistClearCmd)
	rootCmd.AddCommand(watchlistCmd)
}

func runWatchlistAddCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	mediaType, err := media.ParseType(args[0])
	if err != nil {
		return err
	}
	id := args[1]

	details, err := a.gateway.Details(cmd.Context(), mediaType, id)
	if err != nil {
		return err
	}

	item := store.WatchListItem{
		MediaID:    details.ID,
		Type:       details.Type,
		Title:      details.DisplayTitle(),
		PosterPath: details.PosterPath,
	}
	if !a.store.AddToWatchList(a.user, item) {
		fmt.Printf("%s is already on the watch list\n", item.Title)
		return nil
	}
	if err := a.store.Save(); err != nil {
		return err
	}
	fmt.Printf("Added %s to the watch list\n", item.Title)
	return nil
}

func runWatchlistRemoveCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if !a.store.RemoveFromWatchList(a.user, args[0]) {
		return fmt.Errorf("%s is not on the watch list", args[0])
	}
	if err := a.store.Save(); err != nil {
		return err
	}
	fmt.Printf("Removed %s from the watch list\n", args[0])
	return nil
}

func runWatchlistListCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	items := a.store.WatchList(a.user)
	if len(items) == 0 {
		fmt.Println("The watch list is empty")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%-12s %s [%s]\n", item.MediaID, item.Title, item.Type)
	}
	return nil
}

func runWatchlistClearCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	a.store.ClearWatchList(a.user)
	if err := a.store.Save(); err != nil {
		return err
	}
	fmt.Println("Cleared the watch list")
	return nil
}
