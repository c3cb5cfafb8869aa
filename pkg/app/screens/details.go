package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Lemon199080/komikweb/pkg/api"
	"github.com/Lemon199080/komikweb/pkg/app/components"
	"github.com/Lemon199080/komikweb/pkg/app/styles"
	"github.com/Lemon199080/komikweb/pkg/data"
	"github.com/Lemon199080/komikweb/pkg/logging"
	"github.com/Lemon199080/komikweb/pkg/services"
)

type detailsTab int

const (
	chaptersTab detailsTab = iota
	infoTab
)

// DetailsScreen shows one comic: its chapter list, metadata, and a
// recommendations strip. Detail data is served from the durable cache
// when fresh, otherwise fetched and cached.
type DetailsScreen struct {
	client   *api.Client
	repo     *data.Repository
	exporter *services.Exporter
	slug     string

	comic      *data.Comic
	chapters   []data.ChapterSummary // newest first, as served
	recs       []data.Comic
	recIndex   int
	tab        detailsTab
	selected   int
	bookmarked bool
	readlisted bool
	loading    bool
	note       string
	exports    *components.ExportTracker
	err        error
	width      int
	height     int
}

func NewDetailsScreen(client *api.Client, repo *data.Repository, exporter *services.Exporter, slug string) *DetailsScreen {
	return &DetailsScreen{
		client:   client,
		repo:     repo,
		exporter: exporter,
		slug:     slug,
		loading:  true,
		exports:  components.NewExportTracker(40),
	}
}

func (d *DetailsScreen) Init() tea.Cmd {
	return tea.Batch(d.fetchComic(), d.fetchMembership(), d.fetchRecommendations())
}

func (d *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return d, func() tea.Msg { return SwitchScreenMsg{Screen: "back"} }
		case "tab", "i":
			if d.tab == chaptersTab {
				d.tab = infoTab
			} else {
				d.tab = chaptersTab
			}
		case "b":
			return d, d.toggle("bookmarks")
		case "l":
			return d, d.toggle("readlist")
		case "s":
			// Start reading from the oldest chapter.
			if len(d.chapters) > 0 {
				slug := d.chapters[len(d.chapters)-1].Slug
				return d, func() tea.Msg {
					return SwitchScreenMsg{Screen: "reader", Data: slug}
				}
			}
		case "enter":
			if d.tab == chaptersTab && d.selected < len(d.chapters) {
				slug := d.chapters[d.selected].Slug
				return d, func() tea.Msg {
					return SwitchScreenMsg{Screen: "reader", Data: slug}
				}
			}
		case "e":
			if d.tab == chaptersTab && d.selected < len(d.chapters) {
				d.note = "exporting..."
				return d, tea.Batch(
					d.exportChapter(d.chapters[d.selected].Slug),
					d.waitForExportProgress(),
				)
			}
		case "up", "k":
			if d.tab == chaptersTab && d.selected > 0 {
				d.selected--
			}
		case "down", "j":
			if d.tab == chaptersTab && d.selected < len(d.chapters)-1 {
				d.selected++
			}
		case "[":
			if d.recIndex > 0 {
				d.recIndex--
			}
		case "]":
			if d.recIndex < len(d.recs)-1 {
				d.recIndex++
			}
		case "o":
			if d.recIndex < len(d.recs) {
				slug := d.recs[d.recIndex].Slug
				return d, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: slug}
				}
			}
		}

	case comicDetailMsg:
		if msg.slug != d.slug {
			return d, nil
		}
		d.loading = false
		d.err = msg.err
		if msg.err == nil {
			d.comic = &msg.comic
			d.chapters = msg.chapters
			d.selected = 0
		}

	case membershipMsg:
		if msg.err != nil {
			d.note = fmt.Sprintf("could not update list: %s", msg.err)
			return d, nil
		}
		d.bookmarked = msg.bookmarked
		d.readlisted = msg.readlisted

	case recommendationsMsg:
		if msg.err == nil {
			d.recs = msg.comics
			d.recIndex = 0
		}

	case exportProgressMsg:
		d.exports.Update(msg.progress)
		if msg.progress.Status != "complete" && msg.progress.Status != "error" {
			return d, d.waitForExportProgress()
		}

	case exportDoneMsg:
		d.exports.Clear()
		if msg.err != nil {
			d.note = fmt.Sprintf("export failed: %s", msg.err)
		} else {
			d.note = "saved " + msg.path
		}
	}

	return d, nil
}

func (d *DetailsScreen) View() string {
	if d.loading {
		return styles.LoadingStyle.Render("Loading comic...")
	}
	if d.err != nil {
		return styles.ErrorStyle.Render(fmt.Sprintf("Error: %s", d.err)) +
			"\n\n" + styles.HelpStyle.Render("esc: back")
	}
	if d.comic == nil {
		return ""
	}

	header := styles.TitleStyle.Render(d.comic.Title) + d.renderMarks()
	tabs := d.renderTabs()

	var body string
	if d.tab == chaptersTab {
		body = d.renderChapters()
	} else {
		body = d.renderInfo()
	}

	var sections []string
	sections = append(sections, header, tabs, body)
	if recs := d.renderRecommendations(); recs != "" {
		sections = append(sections, recs)
	}
	if d.exports.HasActive() {
		sections = append(sections, d.exports.View())
	} else if d.note != "" {
		sections = append(sections, styles.SubtitleStyle.Render(d.note))
	}
	sections = append(sections, styles.HelpStyle.Render(
		"enter: read · s: start from first · b: bookmark · l: readlist · e: export · i: info · esc: back",
	))

	return strings.Join(sections, "\n\n")
}

func (d *DetailsScreen) renderMarks() string {
	var marks string
	if d.bookmarked {
		marks += " " + styles.SuccessStyle.Render("♥")
	}
	if d.readlisted {
		marks += " " + styles.SubtitleStyle.Render("⌘")
	}
	return marks
}

func (d *DetailsScreen) renderTabs() string {
	chapters := fmt.Sprintf("Chapters (%d)", len(d.chapters))
	info := "Info"
	if d.tab == chaptersTab {
		chapters = styles.ActiveTabStyle.Render(chapters)
		info = styles.InactiveTabStyle.Render(info)
	} else {
		chapters = styles.InactiveTabStyle.Render(chapters)
		info = styles.ActiveTabStyle.Render(info)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chapters, info)
}

func (d *DetailsScreen) renderChapters() string {
	if len(d.chapters) == 0 {
		return styles.MutedStyle.Render("No chapters available")
	}

	// Keep the selection visible in a window of the list.
	window := d.height - 14
	if window < 5 {
		window = 5
	}
	start := 0
	if d.selected >= window {
		start = d.selected - window + 1
	}
	end := start + window
	if end > len(d.chapters) {
		end = len(d.chapters)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		ch := d.chapters[i]
		line := ch.Title
		if ch.Uploaded != "" {
			line += styles.MutedStyle.Render("  " + ch.Uploaded)
		}
		if i == d.selected {
			line = styles.ActiveTabStyle.Render("▸ " + line)
		} else {
			line = "  " + styles.TextStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (d *DetailsScreen) renderInfo() string {
	rows := [][2]string{
		{"Alternative", d.comic.AltTitle},
		{"Author", d.comic.Author},
		{"Artist", d.comic.Artist},
		{"Type", d.comic.Type},
		{"Status", d.comic.Status},
		{"Released", d.comic.Released},
		{"Updated", d.comic.Updated},
		{"Rating", d.comic.Rating},
		{"Views", d.comic.Views},
		{"Genres", strings.Join(d.comic.Genres, ", ")},
	}

	var b strings.Builder
	if d.comic.Synopsis != "" {
		b.WriteString(styles.TextStyle.Render(d.comic.Synopsis))
		b.WriteString("\n\n")
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		b.WriteString(styles.MutedStyle.Render(row[0]+": ") + styles.TextStyle.Render(row[1]))
		b.WriteString("\n")
	}
	return b.String()
}

func (d *DetailsScreen) renderRecommendations() string {
	if len(d.recs) == 0 {
		return ""
	}

	var cells []string
	for i, rec := range d.recs {
		title := rec.Title
		if len(title) > 20 {
			title = title[:17] + "..."
		}
		if i == d.recIndex {
			cells = append(cells, styles.ActiveCellStyle.Render(title))
		} else {
			cells = append(cells, styles.CellStyle.Render(title))
		}
	}
	return styles.SubtitleStyle.Render("You may also like  ([/]: select · o: open)") + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

type comicDetailMsg struct {
	slug     string
	comic    data.Comic
	chapters []data.ChapterSummary
	err      error
}

type membershipMsg struct {
	bookmarked bool
	readlisted bool
	err        error
}

type recommendationsMsg struct {
	comics []data.Comic
	err    error
}

type exportProgressMsg struct {
	progress services.ExportProgress
}

type exportDoneMsg struct {
	path string
	err  error
}

func (d *DetailsScreen) fetchComic() tea.Cmd {
	slug := d.slug
	return func() tea.Msg {
		if cached, err := d.repo.CachedComic(slug); err == nil && cached != nil {
			return comicDetailMsg{slug: slug, comic: cached.Comic, chapters: cached.Chapters}
		}

		comic, err := d.client.Comic(slug)
		if err != nil {
			return comicDetailMsg{slug: slug, err: err}
		}
		chapters, _, err := d.client.Chapters(slug)
		if err != nil {
			return comicDetailMsg{slug: slug, err: err}
		}

		d.repo.SaveComic(comic, chapters)
		return comicDetailMsg{slug: slug, comic: comic, chapters: chapters}
	}
}

func (d *DetailsScreen) fetchMembership() tea.Cmd {
	slug := d.slug
	return func() tea.Msg {
		var msg membershipMsg
		if bookmarks, err := d.repo.ListBookmarks(); err == nil {
			msg.bookmarked = contains(bookmarks, slug)
		}
		if readlist, err := d.repo.ListReadlist(); err == nil {
			msg.readlisted = contains(readlist, slug)
		}
		return msg
	}
}

func (d *DetailsScreen) fetchRecommendations() tea.Cmd {
	return func() tea.Msg {
		if comics, err := d.repo.CachedRecommendations(); err == nil && comics != nil {
			return recommendationsMsg{comics: comics}
		}

		// The second mirror page doubles as the recommendations strip.
		comics, err := d.client.Comics(2)
		if err != nil {
			return recommendationsMsg{err: err}
		}
		if len(comics) > 8 {
			comics = comics[:8]
		}
		d.repo.SaveRecommendations(comics)
		return recommendationsMsg{comics: comics}
	}
}

func (d *DetailsScreen) toggle(store string) tea.Cmd {
	slug := d.slug
	return func() tea.Msg {
		var err error
		if store == "bookmarks" {
			_, err = d.repo.ToggleBookmark(slug)
		} else {
			_, err = d.repo.ToggleReadlist(slug)
		}
		if err != nil {
			logging.Logger().Error().Err(err).Str("store", store).Str("slug", slug).
				Msg("failed to toggle list entry")
			return membershipMsg{err: err}
		}

		var msg membershipMsg
		if bookmarks, err := d.repo.ListBookmarks(); err == nil {
			msg.bookmarked = contains(bookmarks, slug)
		}
		if readlist, err := d.repo.ListReadlist(); err == nil {
			msg.readlisted = contains(readlist, slug)
		}
		return msg
	}
}

func (d *DetailsScreen) exportChapter(chapterSlug string) tea.Cmd {
	return func() tea.Msg {
		path, err := d.exporter.ExportChapter(chapterSlug)
		return exportDoneMsg{path: path, err: err}
	}
}

func (d *DetailsScreen) waitForExportProgress() tea.Cmd {
	return func() tea.Msg {
		progress, ok := <-d.exporter.ProgressChannel()
		if !ok {
			return nil
		}
		return exportProgressMsg{progress: progress}
	}
}

func contains(slugs []string, slug string) bool {
	for _, s := range slugs {
		if s == slug {
			return true
		}
	}
	return false
}
