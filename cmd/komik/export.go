package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Lemon199080/komikweb/pkg/services"
)

var exportCmd = &cobra.Command{
	Use:   "export [chapter-slug]",
	Short: "Export a chapter as an EPUB",
	Long:  "Download a chapter's pages and bundle them into an EPUB file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, _ := cmd.Flags().GetString("output")
		if outputDir == "" {
			homeDir, _ := os.UserHomeDir()
			outputDir = filepath.Join(homeDir, "Downloads")
		}
		highRes, _ := cmd.Flags().GetBool("hd")
		all, _ := cmd.Flags().GetBool("all")

		exporter := services.NewExporter(newClient(), outputDir, highRes)
		defer exporter.Close()

		go func() {
			for progress := range exporter.ProgressChannel() {
				if progress.Status == "downloading" && progress.TotalPages > 0 {
					fmt.Printf("  %s: %d/%d pages\n",
						progress.ChapterSlug, progress.CurrentPage, progress.TotalPages)
				}
			}
		}()

		if all {
			if err := exporter.ExportComic(args[0]); err != nil {
				return err
			}
			fmt.Printf("Exported all chapters to %s\n", outputDir)
			return nil
		}

		path, err := exporter.ExportChapter(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output directory (default ~/Downloads)")
	exportCmd.Flags().Bool("hd", false, "request high-resolution pages")
	exportCmd.Flags().Bool("all", false, "treat the argument as a comic slug and export every chapter")
}
