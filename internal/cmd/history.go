package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexstream/plexstream/internal/media"
	"github.com/plexstream/plexstream/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the watch history",
}

var historyAddCmd = &cobra.Command{
	Use:   "add <movie|tv> <id>",
	Short: "Record that a title was watched",
	Args:  cobra.ExactArgs(2),
	RunE:  runHistoryAddCmd,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the watch history, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryListCmd,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the watch history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClearCmd,
}

func init() {
	historyCmd.AddCommand(historyAddCmd, historyListCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryAddCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	mediaType, err := media.ParseType(args[0])
	if err != nil {
		return err
	}

	details, err := a.gateway.Details(cmd.Context(), mediaType, args[1])
	if err != nil {
		return err
	}

	a.store.RecordWatch(a.user, store.HistoryItem{
		MediaID: details.ID,
		Type:    details.Type,
		Title:   details.DisplayTitle(),
	})
	if err := a.store.Save(); err != nil {
		return err
	}
	fmt.Printf("Recorded %s as watched\n", details.DisplayTitle())
	return nil
}

func runHistoryListCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	items := a.store.History(a.user)
	if len(items) == 0 {
		fmt.Println("The watch history is empty")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%s  %-12s %s [%s]\n", item.WatchedAt.Format("2006-01-02 15:04"), item.MediaID, item.Title, item.Type)
	}
	return nil
}

func runHistoryClearCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	a.store.ClearHistory(a.user)
	if err := a.store.Save(); err != nil {
		return err
	}
	fmt.Println("Cleared the watch history")
	return nil
}
