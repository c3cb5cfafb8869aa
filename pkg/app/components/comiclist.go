package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lemon199080/komikweb/pkg/app/styles"
	"github.com/Lemon199080/komikweb/pkg/data"
)

// ViewMode is how a listing is laid out.
type ViewMode int

const (
	ListMode ViewMode = iota
	GridMode
)

const gridColumns = 3

// ComicList renders a browsable listing of comics in either a
// detailed list or a compact grid.
type ComicList struct {
	Items         []data.Comic
	SelectedIndex int
	Mode          ViewMode
	Width         int
	Height        int
	EmptyMessage  string
}

func NewComicList() *ComicList {
	return &ComicList{
		Width:        80,
		Height:       20,
		EmptyMessage: "Nothing here yet",
	}
}

func (c *ComicList) SetItems(items []data.Comic) {
	c.Items = items
	if c.SelectedIndex >= len(items) {
		c.SelectedIndex = 0
	}
}

func (c *ComicList) ToggleMode() {
	if c.Mode == ListMode {
		c.Mode = GridMode
	} else {
		c.Mode = ListMode
	}
}

func (c *ComicList) Next() {
	if len(c.Items) == 0 {
		return
	}
	c.SelectedIndex++
	if c.SelectedIndex >= len(c.Items) {
		c.SelectedIndex = 0
	}
}

func (c *ComicList) Prev() {
	if len(c.Items) == 0 {
		return
	}
	c.SelectedIndex--
	if c.SelectedIndex < 0 {
		c.SelectedIndex = len(c.Items) - 1
	}
}

// NextRow moves selection one grid row down; in list mode it is Next.
func (c *ComicList) NextRow() {
	if c.Mode != GridMode {
		c.Next()
		return
	}
	if len(c.Items) == 0 {
		return
	}
	if c.SelectedIndex+gridColumns < len(c.Items) {
		c.SelectedIndex += gridColumns
	}
}

// PrevRow moves selection one grid row up; in list mode it is Prev.
func (c *ComicList) PrevRow() {
	if c.Mode != GridMode {
		c.Prev()
		return
	}
	if c.SelectedIndex-gridColumns >= 0 {
		c.SelectedIndex -= gridColumns
	}
}

func (c *ComicList) Selected() *data.Comic {
	if len(c.Items) == 0 || c.SelectedIndex >= len(c.Items) {
		return nil
	}
	return &c.Items[c.SelectedIndex]
}

func (c *ComicList) View() string {
	if len(c.Items) == 0 {
		empty := styles.MutedStyle.Render(c.EmptyMessage)
		return lipgloss.Place(c.Width, c.Height, lipgloss.Center, lipgloss.Center, empty)
	}
	if c.Mode == GridMode {
		return c.viewGrid()
	}
	return c.viewList()
}

func (c *ComicList) viewList() string {
	var b strings.Builder

	for i, comic := range c.Items {
		cardStyle := styles.CardStyle
		if i == c.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TitleStyle.Render(comic.Title) + badges(comic)

		var meta []string
		if comic.Type != "" {
			meta = append(meta, comic.Type)
		}
		if comic.Status != "" {
			meta = append(meta, comic.Status)
		}
		if comic.Rating != "" {
			meta = append(meta, "★ "+comic.Rating)
		}
		metaLine := styles.MutedStyle.Render(strings.Join(meta, " · "))

		desc := comic.Synopsis
		if len(desc) > 100 {
			desc = desc[:97] + "..."
		}

		lines := []string{title}
		if desc != "" {
			lines = append(lines, styles.TextStyle.Render(desc))
		}
		if metaLine != "" {
			lines = append(lines, metaLine)
		}
		if len(comic.LatestChapters) > 0 {
			lines = append(lines, styles.SubtitleStyle.Render("Latest: "+comic.LatestChapters[0].Title))
		}

		card := cardStyle.Width(c.Width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
		b.WriteString(card)
		b.WriteString("\n")
	}

	return b.String()
}

func (c *ComicList) viewGrid() string {
	cellWidth := c.Width/gridColumns - 4
	if cellWidth < 10 {
		cellWidth = 10
	}

	var rows []string
	for start := 0; start < len(c.Items); start += gridColumns {
		end := start + gridColumns
		if end > len(c.Items) {
			end = len(c.Items)
		}

		var cells []string
		for i := start; i < end; i++ {
			comic := c.Items[i]
			cellStyle := styles.CellStyle
			if i == c.SelectedIndex {
				cellStyle = styles.ActiveCellStyle
			}

			title := comic.Title
			if len(title) > cellWidth {
				title = title[:cellWidth-3] + "..."
			}
			content := styles.TextStyle.Render(title) + badges(comic)
			if comic.Rating != "" {
				content += "\n" + styles.MutedStyle.Render("★ "+comic.Rating)
			}
			cells = append(cells, cellStyle.Width(cellWidth).Render(content))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return strings.Join(rows, "\n")
}

func badges(comic data.Comic) string {
	var b string
	if comic.IsHot {
		b += " " + styles.HotBadgeStyle.Render("HOT")
	}
	if comic.IsUp {
		b += " " + styles.UpBadgeStyle.Render("UP")
	}
	return b
}

// PageIndicator renders "page N" footers for paged listings.
func PageIndicator(page int, hasMore bool) string {
	s := fmt.Sprintf("page %d", page)
	if hasMore {
		s += " ›"
	}
	return styles.MutedStyle.Render(s)
}
