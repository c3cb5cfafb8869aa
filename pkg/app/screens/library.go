package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Lemon199080/komikweb/pkg/api"
	"github.com/Lemon199080/komikweb/pkg/app/components"
	"github.com/Lemon199080/komikweb/pkg/app/styles"
	"github.com/Lemon199080/komikweb/pkg/data"
	"github.com/Lemon199080/komikweb/pkg/logging"
)

type libraryTab int

const (
	bookmarksTab libraryTab = iota
	readlistTab
	historyTab
)

func (t libraryTab) String() string {
	switch t {
	case bookmarksTab:
		return "Bookmarks"
	case readlistTab:
		return "Readlist"
	default:
		return "History"
	}
}

// LibraryScreen shows the saved lists. Comic details come from the
// service, falling back to the mirror and then the durable cache when
// the primary is down. Toggles anywhere in the app refresh it through
// the store notifier.
type LibraryScreen struct {
	client   *api.Client
	fallback *api.Client
	repo     *data.Repository

	tab       libraryTab
	list      *components.ComicList
	events    <-chan data.Event
	cancel    func()
	listening bool
	loading   bool
	err       error
	width     int
	height    int
}

func NewLibraryScreen(client, fallback *api.Client, repo *data.Repository) *LibraryScreen {
	list := components.NewComicList()
	list.EmptyMessage = "Nothing saved yet"

	events, cancel := repo.Notifier().Subscribe()

	return &LibraryScreen{
		client:   client,
		fallback: fallback,
		repo:     repo,
		list:     list,
		events:   events,
		cancel:   cancel,
	}
}

func (l *LibraryScreen) Init() tea.Cmd {
	l.loading = true
	if l.listening {
		return l.fetchTab()
	}
	l.listening = true
	return tea.Batch(l.fetchTab(), l.waitForEvent())
}

func (l *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height
		l.list.Width = msg.Width
		l.list.Height = msg.Height - 6

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if l.tab > bookmarksTab {
				l.tab--
				l.loading = true
				return l, l.fetchTab()
			}
		case "right":
			if l.tab < historyTab {
				l.tab++
				l.loading = true
				return l, l.fetchTab()
			}
		case "enter":
			if comic := l.list.Selected(); comic != nil {
				slug := comic.Slug
				return l, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: slug}
				}
			}
		case "x":
			// Remove the selected comic from the current list.
			if comic := l.list.Selected(); comic != nil {
				return l, l.remove(comic.Slug)
			}
		case "v":
			l.list.ToggleMode()
		case "up", "k":
			l.list.PrevRow()
		case "down", "j":
			l.list.NextRow()
		}

	case libraryLoadedMsg:
		if msg.tab != l.tab {
			return l, nil
		}
		l.loading = false
		l.err = msg.err
		if msg.err == nil {
			l.list.SetItems(msg.comics)
		}

	case storeChangedMsg:
		// Re-arm the listener and refresh whatever tab is showing.
		return l, tea.Batch(l.fetchTab(), l.waitForEvent())
	}

	return l, nil
}

func (l *LibraryScreen) View() string {
	if l.width == 0 {
		return "Loading..."
	}

	tabs := l.renderTabs()

	var body string
	switch {
	case l.tab == historyTab:
		body = styles.MutedStyle.Render("Reading history is not recorded")
	case l.loading:
		body = styles.LoadingStyle.Render("Loading library...")
	case l.err != nil:
		body = styles.ErrorStyle.Render(fmt.Sprintf("Error: %s", l.err))
	default:
		body = l.list.View()
	}

	help := styles.HelpStyle.Render(
		"enter: open · x: remove · ←/→: lists · v: view · ↑/↓: navigate · tab: switch view · q: quit",
	)

	return fmt.Sprintf("%s\n\n%s\n\n%s", tabs, body, help)
}

func (l *LibraryScreen) renderTabs() string {
	rendered := make([]string, 0, 3)
	for _, tab := range []libraryTab{bookmarksTab, readlistTab, historyTab} {
		if tab == l.tab {
			rendered = append(rendered, styles.ActiveTabStyle.Render(tab.String()))
		} else {
			rendered = append(rendered, styles.InactiveTabStyle.Render(tab.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

type libraryLoadedMsg struct {
	tab    libraryTab
	comics []data.Comic
	err    error
}

type storeChangedMsg struct{}

func (l *LibraryScreen) fetchTab() tea.Cmd {
	tab := l.tab
	return func() tea.Msg {
		if tab == historyTab {
			return libraryLoadedMsg{tab: tab}
		}

		var slugs []string
		var err error
		if tab == bookmarksTab {
			slugs, err = l.repo.ListBookmarks()
		} else {
			slugs, err = l.repo.ListReadlist()
		}
		if err != nil {
			return libraryLoadedMsg{tab: tab, err: err}
		}

		comics := make([]data.Comic, 0, len(slugs))
		for _, slug := range slugs {
			comics = append(comics, l.loadComic(slug))
		}
		return libraryLoadedMsg{tab: tab, comics: comics}
	}
}

// loadComic tries the primary service, then the fallback mirror, then
// the durable cache. A comic nothing can resolve still shows up under
// its slug so it can be opened or removed.
func (l *LibraryScreen) loadComic(slug string) data.Comic {
	if cached, err := l.repo.CachedComic(slug); err == nil && cached != nil {
		return cached.Comic
	}

	if comic, err := l.client.Comic(slug); err == nil {
		return comic
	}
	if l.fallback != nil {
		if comic, err := l.fallback.Comic(slug); err == nil {
			return comic
		}
	}

	return data.Comic{Slug: slug, Title: slug}
}

func (l *LibraryScreen) remove(slug string) tea.Cmd {
	tab := l.tab
	return func() tea.Msg {
		var err error
		if tab == bookmarksTab {
			_, err = l.repo.ToggleBookmark(slug)
		} else if tab == readlistTab {
			_, err = l.repo.ToggleReadlist(slug)
		}
		if err != nil {
			logging.Logger().Error().Err(err).Str("slug", slug).
				Msg("failed to remove list entry")
			return libraryLoadedMsg{tab: tab, err: err}
		}
		// The notifier event triggers the refresh.
		return nil
	}
}

func (l *LibraryScreen) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-l.events; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}
