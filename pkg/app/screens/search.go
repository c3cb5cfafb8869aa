package screens

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lemon199080/komikweb/pkg/api"
	"github.com/Lemon199080/komikweb/pkg/app/components"
	"github.com/Lemon199080/komikweb/pkg/app/styles"
	"github.com/Lemon199080/komikweb/pkg/data"
)

const searchDebounce = 500 * time.Millisecond

// SearchScreen queries the service as the user types, half a second
// after the last keystroke.
type SearchScreen struct {
	client *api.Client

	input     textinput.Model
	list      *components.ComicList
	version   int // bumped per keystroke; stale debounces are dropped
	searching bool
	searched  bool
	err       error
	width     int
	height    int
}

func NewSearchScreen(client *api.Client) *SearchScreen {
	ti := textinput.New()
	ti.Placeholder = "Search comics..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	list := components.NewComicList()
	list.EmptyMessage = "No results found"

	return &SearchScreen{
		client: client,
		input:  ti,
		list:   list,
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width
		s.list.Height = msg.Height - 8

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if !s.input.Focused() {
				if comic := s.list.Selected(); comic != nil {
					slug := comic.Slug
					return s, func() tea.Msg {
						return SwitchScreenMsg{Screen: "details", Data: slug}
					}
				}
				break
			}
			// Enter skips the debounce.
			if query := s.input.Value(); query != "" {
				s.searching = true
				return s, s.performSearch(query)
			}

		case "esc":
			if s.input.Focused() {
				s.input.Blur()
			} else {
				s.input.Focus()
				cmd = textinput.Blink
			}

		case "up", "k":
			if !s.input.Focused() {
				s.list.Prev()
				return s, nil
			}

		case "down", "j":
			if !s.input.Focused() {
				s.list.Next()
				return s, nil
			}
		}

		if s.input.Focused() {
			before := s.input.Value()
			s.input, cmd = s.input.Update(msg)
			if s.input.Value() != before {
				s.version++
				version := s.version
				return s, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
					return searchDebounceMsg{version: version}
				}))
			}
		}
		return s, cmd

	case searchDebounceMsg:
		// Only the debounce armed by the last keystroke fires.
		if msg.version != s.version {
			return s, nil
		}
		query := s.input.Value()
		if query == "" {
			s.list.SetItems(nil)
			s.searched = false
			return s, nil
		}
		s.searching = true
		return s, s.performSearch(query)

	case searchResultMsg:
		if msg.version != s.version {
			return s, nil
		}
		s.searching = false
		s.searched = true
		s.err = msg.err
		if msg.err == nil {
			s.list.SetItems(msg.results)
			s.list.SelectedIndex = 0
			if len(msg.results) > 0 {
				s.input.Blur()
			}
		}
	}

	if s.input.Focused() {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

func (s *SearchScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Search")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	var body string
	switch {
	case s.searching:
		body = styles.LoadingStyle.Render("Searching...")
	case s.err != nil:
		body = styles.ErrorStyle.Render(fmt.Sprintf("Error: %s", s.err))
	case s.searched:
		body = s.list.View()
	}

	help := styles.HelpStyle.Render(
		"type to search · enter: open · esc: switch focus · ↑/↓: navigate · tab: switch view",
	)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", header, inputView, body, help)
}

type searchDebounceMsg struct {
	version int
}

type searchResultMsg struct {
	version int
	results []data.Comic
	err     error
}

func (s *SearchScreen) performSearch(query string) tea.Cmd {
	version := s.version
	return func() tea.Msg {
		results, err := s.client.Search(query)
		return searchResultMsg{version: version, results: results, err: err}
	}
}
