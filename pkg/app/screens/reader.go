package screens

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lemon199080/komikweb/pkg/api"
	"github.com/Lemon199080/komikweb/pkg/app/styles"
	"github.com/Lemon199080/komikweb/pkg/data"
	"github.com/Lemon199080/komikweb/pkg/logging"
	"github.com/Lemon199080/komikweb/pkg/reader"
)

// Lines each page occupies in the scroll view.
const pageBlockHeight = 8

type readerInput int

const (
	inputNone readerInput = iota
	inputJump
	inputPicker
)

// ReaderScreen renders one chapter as a vertical strip of pages with
// an auto-hiding chrome overlay on top.
type ReaderScreen struct {
	client *api.Client
	repo   *data.Repository

	ctrl     *reader.Controller
	tracker  *reader.Tracker
	overlay  *reader.Overlay
	viewport viewport.Model
	settings data.Settings

	input     readerInput
	jumpField textinput.Model
	picker    textinput.Model
	pickIndex int

	width  int
	height int
	ready  bool
}

func NewReaderScreen(client *api.Client, repo *data.Repository, autoHide time.Duration, chapterSlug string) *ReaderScreen {
	jump := textinput.New()
	jump.Placeholder = "page"
	jump.CharLimit = 5
	jump.Width = 8

	picker := textinput.New()
	picker.Placeholder = "filter chapters..."
	picker.CharLimit = 50
	picker.Width = 30

	r := &ReaderScreen{
		client:    client,
		repo:      repo,
		ctrl:      reader.NewController(client, nil),
		tracker:   reader.NewTracker(),
		overlay:   reader.NewOverlay(autoHide),
		jumpField: jump,
		picker:    picker,
		settings:  data.DefaultSettings(),
	}
	r.ctrl.Open(chapterSlug)
	return r
}

func (r *ReaderScreen) Init() tea.Cmd {
	r.overlay.Reset(time.Now())
	return tea.Batch(
		r.fetchContent(r.ctrl.Slug()),
		r.fetchList(r.ctrl.ComicSlug()),
		r.fetchSettings(),
		r.tick(),
	)
}

func (r *ReaderScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		if !r.ready {
			r.viewport = viewport.New(msg.Width, msg.Height-2)
			r.ready = true
		} else {
			r.viewport.Width = msg.Width
			r.viewport.Height = msg.Height - 2
		}
		r.refreshContent()

	case tea.MouseMsg:
		r.overlay.PointerMoved(time.Now())
		return r, r.tick()

	case tea.KeyMsg:
		if r.input != inputNone {
			return r.updateInput(msg)
		}
		return r.updateKeys(msg)

	case chapterContentMsg:
		if r.ctrl.Resolve(msg.slug, msg.chapter, msg.err) && msg.err == nil {
			if ch := r.ctrl.Chapter(); ch != nil {
				r.tracker.Reset(len(ch.Images))
				r.refreshContent()
				r.viewport.GotoTop()
				r.overlay.Reset(time.Now())
			}
		}
		return r, r.tick()

	case chapterListMsg:
		r.ctrl.ResolveList(msg.comicSlug, msg.title, msg.chapters, msg.err)

	case settingsMsg:
		r.settings = msg.settings

	case overlayTickMsg:
		r.overlay.Tick(time.Now())
		if !r.overlay.Deadline().IsZero() {
			return r, r.tick()
		}
	}

	return r, nil
}

func (r *ReaderScreen) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return r, func() tea.Msg { return SwitchScreenMsg{Screen: "back"} }

	case "r":
		if r.ctrl.State() == reader.Error {
			return r, r.openChapter(r.ctrl.Slug())
		}

	case "o", " ":
		// Tap: toggle the overlay.
		r.overlay.Tap(time.Now())
		return r, r.tick()

	case "p", "left":
		if slug, ok := r.ctrl.PrevSlug(); ok {
			return r, r.openChapter(slug)
		}

	case "n", "right":
		if slug, ok := r.ctrl.NextSlug(); ok {
			return r, r.openChapter(slug)
		}
		if r.ctrl.AtLastChapter() {
			// Nothing newer; offer the way back to the comic.
			slug := r.ctrl.ComicSlug()
			return r, func() tea.Msg {
				return SwitchScreenMsg{Screen: "details", Data: slug}
			}
		}

	case "g":
		if r.ctrl.State() == reader.Ready {
			r.input = inputJump
			r.jumpField.SetValue("")
			r.jumpField.Focus()
			return r, textinput.Blink
		}

	case "c":
		if r.ctrl.Chapters() != nil {
			r.input = inputPicker
			r.picker.SetValue("")
			r.picker.Focus()
			r.pickIndex = 0
			return r, textinput.Blink
		}

	case "h":
		if r.settings.Quality == "HQ" {
			r.settings.Quality = "LQ"
		} else {
			r.settings.Quality = "HQ"
		}
		r.refreshContent()
		return r, r.saveSettings()

	case "+", "=":
		if r.settings.ScrollSpeed < 1.5 {
			r.settings.ScrollSpeed += 0.25
			return r, r.saveSettings()
		}

	case "-":
		if r.settings.ScrollSpeed > 0.5 {
			r.settings.ScrollSpeed -= 0.25
			return r, r.saveSettings()
		}

	case "down", "j", "pgdown":
		step := r.scrollStep()
		r.viewport.LineDown(step)
		r.observeScroll()
		// Reading on hides the chrome.
		r.overlay.Scrolled(r.viewport.YOffset)

	case "up", "k", "pgup":
		step := r.scrollStep()
		r.viewport.LineUp(step)
		r.observeScroll()
		r.overlay.Swipe(time.Now())
		return r, r.tick()
	}

	return r, nil
}

func (r *ReaderScreen) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		r.input = inputNone
		r.jumpField.Blur()
		r.picker.Blur()
		return r, nil

	case "enter":
		if r.input == inputJump {
			r.input = inputNone
			r.jumpField.Blur()
			page, err := strconv.Atoi(strings.TrimSpace(r.jumpField.Value()))
			if err != nil {
				return r, nil
			}
			if idx, ok := r.ctrl.JumpToPage(page); ok {
				r.viewport.SetYOffset(idx * pageBlockHeight)
				r.observeScroll()
			}
			return r, nil
		}

		filtered := r.ctrl.FilterChapters(r.picker.Value())
		if r.pickIndex < len(filtered) {
			slug := filtered[r.pickIndex].Slug
			r.input = inputNone
			r.picker.Blur()
			return r, r.openChapter(slug)
		}
		return r, nil

	case "up":
		if r.input == inputPicker && r.pickIndex > 0 {
			r.pickIndex--
		}
		return r, nil

	case "down":
		if r.input == inputPicker {
			if r.pickIndex < len(r.ctrl.FilterChapters(r.picker.Value()))-1 {
				r.pickIndex++
			}
		}
		return r, nil
	}

	var cmd tea.Cmd
	if r.input == inputJump {
		r.jumpField, cmd = r.jumpField.Update(msg)
	} else {
		before := r.picker.Value()
		r.picker, cmd = r.picker.Update(msg)
		if r.picker.Value() != before {
			r.pickIndex = 0
		}
	}
	return r, cmd
}

func (r *ReaderScreen) View() string {
	switch r.ctrl.State() {
	case reader.Loading:
		return styles.LoadingStyle.Render("Loading chapter...") +
			"\n\n" + styles.HelpStyle.Render("esc: back")
	case reader.Error:
		return styles.ErrorStyle.Render(fmt.Sprintf("Error: %s", r.ctrl.Err())) +
			"\n\n" + styles.HelpStyle.Render("r: reload · esc: back")
	}
	if !r.ready {
		return "Loading..."
	}

	view := r.viewport.View()

	if r.input == inputJump {
		return view + "\n" + styles.FocusedInputStyle.Render("Go to page: "+r.jumpField.View())
	}
	if r.input == inputPicker {
		return view + "\n" + r.renderPicker()
	}
	if r.overlay.Visible() {
		return view + "\n" + r.renderOverlay()
	}
	return view
}

func (r *ReaderScreen) renderOverlay() string {
	ch := r.ctrl.Chapter()
	if ch == nil {
		return ""
	}

	title := r.ctrl.ComicTitle()
	if title == "" {
		title = r.ctrl.ComicSlug()
	}
	number := reader.ChapterNumber(ch.Title, ch.Slug)
	if number != "" {
		title += "  ·  Chapter " + number
	}

	status := fmt.Sprintf("page %d/%d · %d%% loaded",
		r.tracker.Page(), r.tracker.Total(), r.tracker.Percent())

	var nav string
	if _, ok := r.ctrl.PrevSlug(); ok {
		nav += "p: prev · "
	}
	if _, ok := r.ctrl.NextSlug(); ok {
		nav += "n: next · "
	} else if r.ctrl.AtLastChapter() {
		nav += "n: back to comic · "
	}
	nav += "g: go to page · c: chapters · h: quality (" + r.settings.Quality + ") · +/-: speed · esc: back"

	return styles.OverlayStyle.Width(r.width - 2).Render(
		styles.TitleStyle.Render(title) + "\n" +
			styles.SubtitleStyle.Render(status) + "\n" +
			styles.HelpStyle.Render(nav),
	)
}

func (r *ReaderScreen) renderPicker() string {
	filtered := r.ctrl.FilterChapters(r.picker.Value())

	var b strings.Builder
	b.WriteString(styles.FocusedInputStyle.Render(r.picker.View()))
	b.WriteString("\n")

	max := 8
	if len(filtered) < max {
		max = len(filtered)
	}
	for i := 0; i < max; i++ {
		line := filtered[i].Title
		if i == r.pickIndex {
			b.WriteString(styles.ActiveTabStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + styles.TextStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(filtered) == 0 {
		b.WriteString(styles.MutedStyle.Render("no matching chapters"))
	}
	return b.String()
}

// refreshContent rebuilds the viewport content from the open chapter.
func (r *ReaderScreen) refreshContent() {
	ch := r.ctrl.Chapter()
	if ch == nil || !r.ready {
		return
	}

	var b strings.Builder
	for i, img := range ch.Images {
		if r.settings.Quality == "HQ" {
			img = api.HighRes(img)
		}
		block := fmt.Sprintf("── page %d/%d ──\n%s", i+1, len(ch.Images), styles.MutedStyle.Render(img))
		lines := strings.Count(block, "\n") + 1
		b.WriteString(block)
		b.WriteString(strings.Repeat("\n", pageBlockHeight-lines+1))
	}
	r.viewport.SetContent(b.String())
}

// observeScroll feeds the viewport position into the progress tracker.
func (r *ReaderScreen) observeScroll() {
	ch := r.ctrl.Chapter()
	if ch == nil {
		return
	}
	heights := make([]int, len(ch.Images))
	for i := range heights {
		heights[i] = pageBlockHeight
	}
	r.tracker.Observe(r.viewport.YOffset, r.viewport.Height, heights)
	// A page counts as loaded once it has been scrolled to.
	r.tracker.MarkLoaded(r.tracker.Page() - 1)
}

func (r *ReaderScreen) scrollStep() int {
	step := int(float64(3) * r.settings.ScrollSpeed)
	if step < 1 {
		step = 1
	}
	return step
}

type chapterContentMsg struct {
	slug    string
	chapter data.Chapter
	err     error
}

type chapterListMsg struct {
	comicSlug string
	title     string
	chapters  []data.ChapterSummary
	err       error
}

type settingsMsg struct {
	settings data.Settings
}

type overlayTickMsg struct{}

func (r *ReaderScreen) openChapter(chapterSlug string) tea.Cmd {
	r.ctrl.Open(chapterSlug)
	r.tracker.Reset(0)

	// The list fetch is a cache hit when staying within one comic.
	return tea.Batch(
		r.fetchContent(chapterSlug),
		r.fetchList(r.ctrl.ComicSlug()),
		r.tick(),
	)
}

func (r *ReaderScreen) fetchContent(chapterSlug string) tea.Cmd {
	return func() tea.Msg {
		ch, err := r.ctrl.LoadChapter(chapterSlug)
		return chapterContentMsg{slug: chapterSlug, chapter: ch, err: err}
	}
}

func (r *ReaderScreen) fetchList(comicSlug string) tea.Cmd {
	return func() tea.Msg {
		title, chapters, err := r.ctrl.LoadChapterList(comicSlug)
		return chapterListMsg{comicSlug: comicSlug, title: title, chapters: chapters, err: err}
	}
}

func (r *ReaderScreen) saveSettings() tea.Cmd {
	settings := r.settings
	return func() tea.Msg {
		if err := r.repo.SaveSettings(settings); err != nil {
			logging.Logger().Error().Err(err).Msg("failed to save settings")
		}
		return nil
	}
}

func (r *ReaderScreen) fetchSettings() tea.Cmd {
	return func() tea.Msg {
		settings, err := r.repo.Settings()
		if err != nil {
			settings = data.DefaultSettings()
		}
		return settingsMsg{settings: settings}
	}
}

func (r *ReaderScreen) tick() tea.Cmd {
	deadline := r.overlay.Deadline()
	if deadline.IsZero() {
		return nil
	}
	wait := time.Until(deadline)
	if wait < 0 {
		wait = 0
	}
	return tea.Tick(wait, func(time.Time) tea.Msg { return overlayTickMsg{} })
}
