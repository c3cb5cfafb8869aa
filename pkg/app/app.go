package app

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lemon199080/komikweb/pkg/api"
	"github.com/Lemon199080/komikweb/pkg/app/screens"
	"github.com/Lemon199080/komikweb/pkg/config"
	"github.com/Lemon199080/komikweb/pkg/data"
	"github.com/Lemon199080/komikweb/pkg/services"
)

// App wires the repository, API client, and exporter together and
// runs the TUI.
type App struct {
	cfg      *config.Config
	repo     *data.Repository
	exporter *services.Exporter
}

func NewApp(cfg *config.Config) (*App, error) {
	repo, err := data.OpenRepository(cfg.Database.Path, data.NewNotifier())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	settings, err := repo.Settings()
	if err != nil {
		settings = data.DefaultSettings()
	}

	homeDir, _ := os.UserHomeDir()
	exportDir := filepath.Join(homeDir, "Downloads")
	exporter := services.NewExporter(client, exportDir, settings.Quality == "HQ")

	return &App{
		cfg:      cfg,
		repo:     repo,
		exporter: exporter,
	}, nil
}

func (a *App) Run() error {
	defer a.Close()

	model := screens.NewRootScreen(a.cfg, a.repo, a.exporter)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (a *App) Close() {
	a.exporter.Close()
	a.repo.Close()
}
