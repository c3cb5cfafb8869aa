package components

import (
	"fmt"
	"strings"

	"github.com/Lemon199080/komikweb/pkg/app/styles"
	"github.com/Lemon199080/komikweb/pkg/services"
)

// ExportTracker aggregates export progress per chapter for display.
type ExportTracker struct {
	exports map[string]*services.ExportProgress
	width   int
}

func NewExportTracker(width int) *ExportTracker {
	return &ExportTracker{
		exports: make(map[string]*services.ExportProgress),
		width:   width,
	}
}

func (t *ExportTracker) Update(progress services.ExportProgress) {
	key := progress.ChapterSlug
	if progress.Status == "complete" {
		delete(t.exports, key)
		return
	}
	prog := progress
	t.exports[key] = &prog
}

func (t *ExportTracker) Clear() {
	t.exports = make(map[string]*services.ExportProgress)
}

func (t *ExportTracker) HasActive() bool {
	return len(t.exports) > 0
}

func (t *ExportTracker) View() string {
	if len(t.exports) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Exports"))
	b.WriteString("\n\n")

	for _, progress := range t.exports {
		b.WriteString(styles.TextStyle.Render(progress.ChapterSlug))
		b.WriteString("\n")

		statusText := progress.Status
		if progress.TotalPages > 0 {
			statusText = fmt.Sprintf("%s (%d/%d pages)",
				progress.Status, progress.CurrentPage, progress.TotalPages)
			b.WriteString(renderProgressBar(progress.CurrentPage, progress.TotalPages, t.width-4))
			b.WriteString("\n")
		}
		if progress.Error != nil {
			statusText = fmt.Sprintf("error: %s", progress.Error)
		}

		b.WriteString(styles.StatusStyle(progress.Status).Render(statusText))
		b.WriteString("\n\n")
	}

	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := current * width / total
	if filled > width {
		filled = width
	}
	bar := styles.ProgressBarStyle.Render(strings.Repeat("█", filled))
	bar += styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
	return bar
}
