package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved comics",
	Long:  "Show the bookmark and readlist contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()

		bookmarks, err := repo.ListBookmarks()
		if err != nil {
			return err
		}
		readlist, err := repo.ListReadlist()
		if err != nil {
			return err
		}

		if len(bookmarks) == 0 && len(readlist) == 0 {
			fmt.Println("Nothing saved. Use 'komik bookmark <slug>' to start a collection.")
			return nil
		}

		columns := []table.Column{
			{Title: "Slug", Width: 40},
			{Title: "List", Width: 12},
		}

		rows := []table.Row{}
		for _, slug := range bookmarks {
			rows = append(rows, table.Row{truncateString(slug, 38), "bookmarks"})
		}
		for _, slug := range readlist {
			rows = append(rows, table.Row{truncateString(slug, 38), "readlist"})
		}

		fmt.Printf("\nLibrary (%d saved)\n\n", len(rows))
		fmt.Println(renderTable(columns, rows))
		return nil
	},
}
