package data

// Comic is the canonical comic record used across the application.
// The remote API exposes the same concepts under several field names;
// pkg/api normalizes all of them into this shape.
type Comic struct {
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	AltTitle  string   `json:"alt_title,omitempty"`
	Thumbnail string   `json:"thumbnail"`
	Synopsis  string   `json:"synopsis,omitempty"`
	Rating    string   `json:"rating,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	Type      string   `json:"type,omitempty"`
	Status    string   `json:"status,omitempty"` // "Ongoing", "Completed", or ""
	Author    string   `json:"author,omitempty"`
	Artist    string   `json:"artist,omitempty"`
	Released  string   `json:"released,omitempty"`
	Updated   string   `json:"updated,omitempty"`
	Views     string   `json:"views,omitempty"`
	Bookmarks string   `json:"bookmarks,omitempty"`

	// Listing-only extras.
	Link           string           `json:"link,omitempty"`
	IsHot          bool             `json:"is_hot,omitempty"`
	IsUp           bool             `json:"is_up,omitempty"`
	LatestChapters []ChapterSummary `json:"latest_chapters,omitempty"`
}

// ChapterSummary is a chapter without its page images, as returned by
// the chapter-list endpoint. The service returns these newest-first.
type ChapterSummary struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Uploaded string `json:"uploaded,omitempty"`
}

// Chapter is a fully loaded chapter. Images is immutable once fetched.
type Chapter struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title,omitempty"`
	Images   []string `json:"images"`
	Uploaded string   `json:"uploaded,omitempty"`
}

// Settings are the persisted reader preferences.
type Settings struct {
	Quality     string  `json:"quality"`      // "HQ" or "LQ"
	ScrollSpeed float64 `json:"scroll_speed"` // 0.5 - 1.5
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{Quality: "HQ", ScrollSpeed: 1.0}
}
