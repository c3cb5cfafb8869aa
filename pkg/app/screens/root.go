package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Lemon199080/komikweb/pkg/api"
	"github.com/Lemon199080/komikweb/pkg/app/styles"
	"github.com/Lemon199080/komikweb/pkg/config"
	"github.com/Lemon199080/komikweb/pkg/data"
	"github.com/Lemon199080/komikweb/pkg/logging"
	"github.com/Lemon199080/komikweb/pkg/services"
)

type screenType int

const (
	homeView screenType = iota
	searchView
	libraryView
	detailsView
	readerView
)

// SwitchScreenMsg asks the root screen to change the active view.
// Data carries the comic slug for "details" and the chapter slug for
// "reader".
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

// RootScreen owns the three top-level tabs and pushes details and
// reader views on top of them.
type RootScreen struct {
	repo     *data.Repository
	client   *api.Client
	fallback *api.Client
	exporter *services.Exporter
	cfg      *config.Config

	currentView screenType
	lastTab     screenType
	home        *HomeScreen
	search      *SearchScreen
	library     *LibraryScreen
	details     *DetailsScreen
	reader      *ReaderScreen

	fault  string // non-empty after a recovered screen panic
	width  int
	height int
}

func NewRootScreen(cfg *config.Config, repo *data.Repository, exporter *services.Exporter) *RootScreen {
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	var fallback *api.Client
	if cfg.API.FallbackURL != "" {
		fallback = api.NewClient(cfg.API.FallbackURL, cfg.API.Timeout)
	}

	return &RootScreen{
		repo:        repo,
		client:      client,
		fallback:    fallback,
		exporter:    exporter,
		cfg:         cfg,
		currentView: homeView,
		lastTab:     homeView,
		home:        NewHomeScreen(client),
		search:      NewSearchScreen(client),
		library:     NewLibraryScreen(client, fallback, repo),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.home.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	// Last-resort barrier: a panic anywhere in a screen must not take
	// the whole program down. The view flips to a recovery prompt.
	defer func() {
		if rec := recover(); rec != nil {
			logging.Logger().Error().Interface("panic", rec).Msg("screen fault")
			r.fault = fmt.Sprint(rec)
			model, cmd = r, nil
		}
	}()

	if r.fault != "" {
		return r.updateFault(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			// The reader and search input use plain keys themselves.
			if r.currentView == homeView || r.currentView == libraryView {
				return r, tea.Quit
			}
		case "tab":
			if r.currentView == detailsView || r.currentView == readerView {
				break
			}
			r.currentView = (r.currentView + 1) % 3
			r.lastTab = r.currentView
			return r, r.activeTabInit()
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "home":
			r.currentView = homeView
			r.lastTab = homeView
			cmd = r.home.Init()
		case "search":
			r.currentView = searchView
			r.lastTab = searchView
			cmd = r.search.Init()
		case "library":
			r.currentView = libraryView
			r.lastTab = libraryView
			cmd = r.library.Init()
		case "details":
			if slug, ok := msg.Data.(string); ok {
				r.details = NewDetailsScreen(r.client, r.repo, r.exporter, slug)
				r.currentView = detailsView
				cmd = r.details.Init()
				r.replaySize(r.details)
			}
		case "reader":
			if slug, ok := msg.Data.(string); ok {
				r.reader = NewReaderScreen(r.client, r.repo, r.cfg.Reader.AutoHideDelay, slug)
				r.currentView = readerView
				cmd = r.reader.Init()
				r.replaySize(r.reader)
			}
		case "back":
			switch r.currentView {
			case readerView:
				if r.details != nil {
					r.currentView = detailsView
					cmd = r.details.Init()
				} else {
					r.currentView = r.lastTab
					cmd = r.activeTabInit()
				}
			case detailsView:
				r.details = nil
				r.currentView = r.lastTab
				cmd = r.activeTabInit()
			}
		}
		return r, cmd

	case storeChangedMsg:
		// Preference toggles must reach the library even while another
		// view is up, or its listener never re-arms.
		newModel, newCmd := r.library.Update(msg)
		r.library = newModel.(*LibraryScreen)
		return r, newCmd
	}

	switch r.currentView {
	case homeView:
		newModel, newCmd := r.home.Update(msg)
		r.home = newModel.(*HomeScreen)
		return r, newCmd
	case searchView:
		newModel, newCmd := r.search.Update(msg)
		r.search = newModel.(*SearchScreen)
		return r, newCmd
	case libraryView:
		newModel, newCmd := r.library.Update(msg)
		r.library = newModel.(*LibraryScreen)
		return r, newCmd
	case detailsView:
		if r.details != nil {
			newModel, newCmd := r.details.Update(msg)
			r.details = newModel.(*DetailsScreen)
			return r, newCmd
		}
	case readerView:
		if r.reader != nil {
			newModel, newCmd := r.reader.Update(msg)
			r.reader = newModel.(*ReaderScreen)
			return r, newCmd
		}
	}

	return r, cmd
}

func (r *RootScreen) updateFault(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return r, tea.Quit
	case "r":
		// Reload: drop the pushed views and start over from home.
		r.fault = ""
		r.details = nil
		r.reader = nil
		r.currentView = homeView
		r.lastTab = homeView
		return r, r.home.Init()
	}
	return r, nil
}

func (r *RootScreen) faultView() string {
	return styles.ErrorStyle.Render("Something went wrong: "+r.fault) +
		"\n\n" + styles.HelpStyle.Render("r: reload · q: quit")
}

func (r *RootScreen) View() (view string) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Logger().Error().Interface("panic", rec).Msg("screen fault")
			r.fault = fmt.Sprint(rec)
			view = r.faultView()
		}
	}()

	if r.fault != "" {
		return r.faultView()
	}

	tabs := r.renderTabs()

	var content string
	switch r.currentView {
	case homeView:
		content = r.home.View()
	case searchView:
		content = r.search.View()
	case libraryView:
		content = r.library.View()
	case detailsView:
		if r.details != nil {
			content = r.details.View()
		}
	case readerView:
		if r.reader != nil {
			content = r.reader.View()
		}
	}

	if tabs == "" {
		return content
	}
	return fmt.Sprintf("%s\n\n%s", tabs, content)
}

// replaySize hands the last known terminal size to a view created
// after the initial WindowSizeMsg.
func (r *RootScreen) replaySize(m tea.Model) {
	if r.width > 0 {
		m.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
	}
}

func (r *RootScreen) activeTabInit() tea.Cmd {
	switch r.currentView {
	case searchView:
		return r.search.Init()
	case libraryView:
		return r.library.Init()
	default:
		return r.home.Init()
	}
}

func (r *RootScreen) renderTabs() string {
	if r.currentView == detailsView || r.currentView == readerView {
		return ""
	}

	labels := []string{"Home", "Search", "Library"}
	rendered := make([]string, len(labels))
	for i, label := range labels {
		if screenType(i) == r.currentView {
			rendered[i] = styles.ActiveTabStyle.Render(label)
		} else {
			rendered[i] = styles.InactiveTabStyle.Render(label)
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
