package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/Lemon199080/komikweb/pkg/services"
)

func TestExportTrackerUpdate(t *testing.T) {
	tracker := NewExportTracker(40)

	if tracker.HasActive() {
		t.Error("Expected no active exports initially")
	}

	tracker.Update(services.ExportProgress{
		ChapterSlug: "foo-chapter-1",
		CurrentPage: 2,
		TotalPages:  10,
		Status:      "downloading",
	})

	if !tracker.HasActive() {
		t.Error("Expected active export after update")
	}
}

func TestExportTrackerRemovesCompleted(t *testing.T) {
	tracker := NewExportTracker(40)

	tracker.Update(services.ExportProgress{ChapterSlug: "foo-chapter-1", Status: "downloading"})
	tracker.Update(services.ExportProgress{ChapterSlug: "foo-chapter-1", Status: "complete"})

	if tracker.HasActive() {
		t.Error("Expected completed export to be removed")
	}
}

func TestExportTrackerClear(t *testing.T) {
	tracker := NewExportTracker(40)

	tracker.Update(services.ExportProgress{ChapterSlug: "a", Status: "downloading"})
	tracker.Update(services.ExportProgress{ChapterSlug: "b", Status: "downloading"})
	tracker.Clear()

	if tracker.HasActive() {
		t.Error("Expected no active exports after clear")
	}
}

func TestExportTrackerView(t *testing.T) {
	tracker := NewExportTracker(40)

	if tracker.View() != "" {
		t.Error("Expected empty view with no exports")
	}

	tracker.Update(services.ExportProgress{
		ChapterSlug: "foo-chapter-1",
		CurrentPage: 5,
		TotalPages:  10,
		Status:      "downloading",
	})

	view := tracker.View()
	if !strings.Contains(view, "foo-chapter-1") {
		t.Error("Expected chapter slug in view")
	}
	if !strings.Contains(view, "5/10") {
		t.Error("Expected page counter in view")
	}
}

func TestExportTrackerViewShowsError(t *testing.T) {
	tracker := NewExportTracker(40)

	tracker.Update(services.ExportProgress{
		ChapterSlug: "foo-chapter-1",
		Status:      "error",
		Error:       errors.New("fetch failed"),
	})

	if !strings.Contains(tracker.View(), "fetch failed") {
		t.Error("Expected error message in view")
	}
}

func TestRenderProgressBar(t *testing.T) {
	bar := renderProgressBar(5, 10, 10)
	if bar == "" {
		t.Fatal("Expected non-empty bar")
	}
	if strings.Count(bar, "█") != 5 {
		t.Errorf("Expected 5 filled cells, got %d", strings.Count(bar, "█"))
	}
	if strings.Count(bar, "░") != 5 {
		t.Errorf("Expected 5 empty cells, got %d", strings.Count(bar, "░"))
	}

	if renderProgressBar(1, 0, 10) != "" {
		t.Error("Expected empty bar for zero total")
	}
}
