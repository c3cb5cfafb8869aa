package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Lemon199080/komikweb/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write a default config file",
	Long:  "Generate ~/.komikweb/config.toml with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path := filepath.Join(homeDir, ".komikweb", "config.toml")

		if _, err := os.Stat(path); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}

		if err := config.GenerateDefaultConfig(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.Flags().Bool("force", false, "overwrite an existing config file")
}
