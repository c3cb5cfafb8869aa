package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters [comic-slug]",
	Short: "List a comic's chapters",
	Long:  "Print a comic's chapters in reading order (oldest first)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chapters, title, err := newClient().Chapters(args[0])
		if err != nil {
			return fmt.Errorf("failed to fetch chapters: %w", err)
		}
		if len(chapters) == 0 {
			fmt.Println("No chapters found.")
			return nil
		}

		columns := []table.Column{
			{Title: "#", Width: 5},
			{Title: "Chapter", Width: 35},
			{Title: "Slug", Width: 40},
		}

		// The service sends newest first; print oldest first.
		rows := []table.Row{}
		for i := len(chapters) - 1; i >= 0; i-- {
			ch := chapters[i]
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", len(chapters)-i),
				truncateString(ch.Title, 33),
				truncateString(ch.Slug, 38),
			})
		}

		if title == "" {
			title = args[0]
		}
		fmt.Printf("\n%s (%d chapters)\n\n", title, len(chapters))
		fmt.Println(renderTable(columns, rows))
		return nil
	},
}
