package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Lemon199080/komikweb/pkg/api"
	"github.com/Lemon199080/komikweb/pkg/app"
	"github.com/Lemon199080/komikweb/pkg/config"
	"github.com/Lemon199080/komikweb/pkg/data"
	"github.com/Lemon199080/komikweb/pkg/logging"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "komik",
	Short: "A comic reader for your terminal",
	Long:  "Browse, read, and collect comics from the terminal with a TUI and CLI",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		level, err := zerolog.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = zerolog.InfoLevel
		}
		return logging.Setup(level, cfg.Log.Path)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApp(cfg)
		if err != nil {
			return err
		}
		return a.Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.komikweb/config.toml)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(bookmarkCmd)
	rootCmd.AddCommand(readlistCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

func newClient() *api.Client {
	return api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
}

func openRepo() (*data.Repository, error) {
	return data.OpenRepository(cfg.Database.Path, data.NewNotifier())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
