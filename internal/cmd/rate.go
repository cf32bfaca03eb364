package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/plexstream/plexstream/internal/media"
	"github.com/plexstream/plexstream/internal/store"
)

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Manage star ratings",
}

var rateSetCmd = &cobra.Command{
	Use:   "set <movie|tv> <id> <stars>",
	Short: "Rate a title from 1 to 5 stars",
	Args:  cobra.ExactArgs(3),
	RunE:  runRateSetCmd,
}

var rateListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every rating",
	Args:  cobra.NoArgs,
	RunE:  runRateListCmd,
}

var rateDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove the rating for a title",
	Args:  cobra.ExactArgs(1),
	RunE:  runRateDeleteCmd,
}

func init() {
	rateCmd.AddCommand(rateSetCmd, rateListCmd, rateDeleteCmd)
	rootCmd.AddCommand(rateCmd)
}

func runRateSetCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	mediaType, err := media.ParseType(args[0])
	if err != nil {
		return err
	}
	stars, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("stars must be a number from 1 to 5: %q", args[2])
	}

	rating := a.store.SetRating(a.user, store.Rating{
		MediaID: args[1],
		Type:    mediaType,
		Stars:   stars,
	})
	if err := a.store.Save(); err != nil {
		return err
	}
	fmt.Printf("Rated %s %d/5\n", rating.MediaID, rating.Stars)
	return nil
}

func runRateListCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ratings := a.store.Ratings(a.user)
	if len(ratings) == 0 {
		fmt.Println("No ratings yet")
		return nil
	}
	for _, rating := range ratings {
		fmt.Printf("%-12s %d/5 [%s]\n", rating.MediaID, rating.Stars, rating.Type)
	}
	return nil
}

func runRateDeleteCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if !a.store.DeleteRating(a.user, args[0]) {
		return fmt.Errorf("no rating for %s", args[0])
	}
	if err := a.store.Save(); err != nil {
		return err
	}
	fmt.Printf("Removed the rating for %s\n", args[0])
	return nil
}
