package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark [slug]",
	Short: "Toggle a comic's bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()

		added, err := repo.ToggleBookmark(args[0])
		if err != nil {
			return err
		}
		if added {
			fmt.Printf("Bookmarked %s\n", args[0])
		} else {
			fmt.Printf("Removed bookmark for %s\n", args[0])
		}
		return nil
	},
}

var readlistCmd = &cobra.Command{
	Use:   "readlist [slug]",
	Short: "Toggle a comic's readlist entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()

		added, err := repo.ToggleReadlist(args[0])
		if err != nil {
			return err
		}
		if added {
			fmt.Printf("Added %s to readlist\n", args[0])
		} else {
			fmt.Printf("Removed %s from readlist\n", args[0])
		}
		return nil
	},
}
