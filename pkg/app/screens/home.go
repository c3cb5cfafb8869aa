package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Lemon199080/komikweb/pkg/api"
	"github.com/Lemon199080/komikweb/pkg/app/components"
	"github.com/Lemon199080/komikweb/pkg/app/styles"
	"github.com/Lemon199080/komikweb/pkg/data"
)

type homeSource int

const (
	projectSource homeSource = iota
	mirrorSource
)

// HomeScreen browses the two listings the service offers: the
// in-house projects and the mirror catalog. Both are paged.
type HomeScreen struct {
	client *api.Client

	source  homeSource
	page    int
	list    *components.ComicList
	loading bool
	err     error
	width   int
	height  int
}

func NewHomeScreen(client *api.Client) *HomeScreen {
	list := components.NewComicList()
	list.EmptyMessage = "No comics on this page"
	return &HomeScreen{
		client: client,
		page:   1,
		list:   list,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if len(h.list.Items) == 0 && !h.loading {
		h.loading = true
		return h.fetchPage()
	}
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
		h.height = msg.Height
		h.list.Width = msg.Width
		h.list.Height = msg.Height - 6

	case tea.KeyMsg:
		if h.loading {
			return h, nil
		}
		switch msg.String() {
		case "enter":
			if comic := h.list.Selected(); comic != nil {
				slug := comic.Slug
				return h, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: slug}
				}
			}
		case "m":
			// Flip between the project and mirror listings.
			if h.source == projectSource {
				h.source = mirrorSource
			} else {
				h.source = projectSource
			}
			h.page = 1
			h.loading = true
			h.list.SetItems(nil)
			return h, h.fetchPage()
		case "v":
			h.list.ToggleMode()
		case "n", "right":
			h.page++
			h.loading = true
			return h, h.fetchPage()
		case "p", "left":
			if h.page > 1 {
				h.page--
				h.loading = true
				return h, h.fetchPage()
			}
		case "up", "k":
			h.list.PrevRow()
		case "down", "j":
			h.list.NextRow()
		}

	case homePageMsg:
		// A slow page fetch can land after the user flips source or
		// page; only the current request may apply.
		if msg.source != h.source || msg.page != h.page {
			return h, nil
		}
		h.loading = false
		h.err = msg.err
		if msg.err == nil {
			h.list.SetItems(msg.comics)
			h.list.SelectedIndex = 0
		}
	}

	return h, nil
}

func (h *HomeScreen) View() string {
	if h.width == 0 {
		return "Loading..."
	}

	header := h.renderSourceTabs()

	var body string
	switch {
	case h.loading:
		body = styles.LoadingStyle.Render("Loading comics...")
	case h.err != nil:
		body = styles.ErrorStyle.Render(fmt.Sprintf("Error: %s", h.err))
	default:
		body = h.list.View()
	}

	footer := components.PageIndicator(h.page, len(h.list.Items) > 0)
	help := styles.HelpStyle.Render(
		"enter: open · m: source · v: view · n/p: page · ↑/↓: navigate · tab: switch view · q: quit",
	)

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s", header, body, footer, help)
}

func (h *HomeScreen) renderSourceTabs() string {
	project := "Projects"
	mirror := "Mirror"
	if h.source == projectSource {
		project = styles.ActiveTabStyle.Render(project)
		mirror = styles.InactiveTabStyle.Render(mirror)
	} else {
		project = styles.InactiveTabStyle.Render(project)
		mirror = styles.ActiveTabStyle.Render(mirror)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, project, mirror)
}

type homePageMsg struct {
	source homeSource
	page   int
	comics []data.Comic
	err    error
}

func (h *HomeScreen) fetchPage() tea.Cmd {
	source := h.source
	page := h.page
	return func() tea.Msg {
		var comics []data.Comic
		var err error
		if source == projectSource {
			comics, err = h.client.Projects(page)
		} else {
			comics, err = h.client.Comics(page)
		}
		return homePageMsg{source: source, page: page, comics: comics, err: err}
	}
}
