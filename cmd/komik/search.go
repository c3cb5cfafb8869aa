package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for comics",
	Long:  "Search the comic service and print the matches as a table",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		results, err := newClient().Search(query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No results found.")
			return nil
		}

		columns := []table.Column{
			{Title: "Slug", Width: 30},
			{Title: "Title", Width: 40},
			{Title: "Type", Width: 10},
			{Title: "Rating", Width: 8},
		}

		rows := []table.Row{}
		for _, comic := range results {
			rows = append(rows, table.Row{
				truncateString(comic.Slug, 28),
				truncateString(comic.Title, 38),
				comic.Type,
				comic.Rating,
			})
		}

		fmt.Printf("\nFound %d comics\n\n", len(results))
		fmt.Println(renderTable(columns, rows))
		return nil
	},
}

func renderTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Bold(false)
	t.SetStyles(s)

	return t.View()
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
