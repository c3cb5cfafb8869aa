package data

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// CacheTTL is the staleness window for durable comic and
// recommendation caches. Entries older than this are re-fetched.
const CacheTTL = 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS prefs (
	list     VARCHAR NOT NULL,
	slug     VARCHAR NOT NULL,
	added_at TIMESTAMP NOT NULL,
	PRIMARY KEY (list, slug)
);
CREATE TABLE IF NOT EXISTS comic_cache (
	slug      VARCHAR PRIMARY KEY,
	payload   VARCHAR NOT NULL,
	cached_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS recommendations (
	id        INTEGER PRIMARY KEY,
	payload   VARCHAR NOT NULL,
	cached_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key   VARCHAR PRIMARY KEY,
	value VARCHAR NOT NULL
);
`

// InitDuckDB opens (creating if needed) the database at path and
// ensures the schema exists.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// CachedComic is a durable detail-page cache entry: the comic, its
// chapter list as served (newest-first), and when it was stored.
type CachedComic struct {
	Comic    Comic            `json:"data"`
	Chapters []ChapterSummary `json:"chapters"`
	CachedAt time.Time        `json:"cached_at"`
}

// Repository is the durable store for bookmarks, the readlist, the
// 24-hour detail cache, and reader settings. It is safe for use from
// concurrent bubbletea commands (database/sql serializes access).
type Repository struct {
	db       *sql.DB
	notifier *Notifier
	now      func() time.Time
}

// NewRepository wraps an already-open database. Mutations to the
// preference lists are published on notifier.
func NewRepository(db *sql.DB, notifier *Notifier) *Repository {
	return &Repository{db: db, notifier: notifier, now: time.Now}
}

// OpenRepository opens the database at path and wraps it.
func OpenRepository(path string, notifier *Notifier) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return NewRepository(db, notifier), nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Notifier returns the change notifier shared by this repository.
func (r *Repository) Notifier() *Notifier {
	return r.notifier
}

func (r *Repository) ListBookmarks() ([]string, error) {
	return r.listSlugs("bookmarks")
}

func (r *Repository) ListReadlist() ([]string, error) {
	return r.listSlugs("readlist")
}

// ToggleBookmark flips membership of slug in the bookmark set and
// reports whether the slug ended up added (true) or removed (false).
func (r *Repository) ToggleBookmark(slug string) (bool, error) {
	return r.toggle("bookmarks", slug)
}

// ToggleReadlist flips membership of slug in the readlist.
func (r *Repository) ToggleReadlist(slug string) (bool, error) {
	return r.toggle("readlist", slug)
}

func (r *Repository) listSlugs(list string) ([]string, error) {
	rows, err := r.db.Query(
		`SELECT slug FROM prefs WHERE list = ? ORDER BY added_at`, list)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", list, err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

func (r *Repository) toggle(list, slug string) (bool, error) {
	if slug == "" {
		return false, fmt.Errorf("slug cannot be empty")
	}

	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM prefs WHERE list = ? AND slug = ?`, list, slug).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check %s membership: %w", list, err)
	}

	added := count == 0
	if added {
		_, err = r.db.Exec(
			`INSERT INTO prefs (list, slug, added_at) VALUES (?, ?, ?)`,
			list, slug, r.now())
	} else {
		_, err = r.db.Exec(
			`DELETE FROM prefs WHERE list = ? AND slug = ?`, list, slug)
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle %s entry: %w", list, err)
	}

	if r.notifier != nil {
		r.notifier.Publish(Event{Store: list, Slug: slug})
	}
	return added, nil
}

// CachedComic returns the durable detail cache for slug, or nil when
// the entry is missing or older than CacheTTL.
func (r *Repository) CachedComic(slug string) (*CachedComic, error) {
	var payload string
	err := r.db.QueryRow(
		`SELECT payload FROM comic_cache WHERE slug = ?`, slug).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read comic cache: %w", err)
	}

	var cached CachedComic
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		return nil, fmt.Errorf("failed to decode comic cache: %w", err)
	}
	if r.now().Sub(cached.CachedAt) >= CacheTTL {
		return nil, nil
	}
	return &cached, nil
}

// SaveComic stores a fresh detail cache entry, replacing any previous
// one for the same slug.
func (r *Repository) SaveComic(comic Comic, chapters []ChapterSummary) error {
	cached := CachedComic{Comic: comic, Chapters: chapters, CachedAt: r.now()}
	payload, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to encode comic cache: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT OR REPLACE INTO comic_cache (slug, payload, cached_at) VALUES (?, ?, ?)`,
		comic.Slug, string(payload), cached.CachedAt)
	if err != nil {
		return fmt.Errorf("failed to save comic cache: %w", err)
	}
	return nil
}

type cachedComics struct {
	Comics   []Comic   `json:"data"`
	CachedAt time.Time `json:"cached_at"`
}

// CachedRecommendations returns the recommendations strip saved within
// the staleness window, or nil when absent or stale.
func (r *Repository) CachedRecommendations() ([]Comic, error) {
	var payload string
	err := r.db.QueryRow(
		`SELECT payload FROM recommendations WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recommendations: %w", err)
	}

	var cached cachedComics
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}
	if r.now().Sub(cached.CachedAt) >= CacheTTL {
		return nil, nil
	}
	return cached.Comics, nil
}

func (r *Repository) SaveRecommendations(comics []Comic) error {
	cached := cachedComics{Comics: comics, CachedAt: r.now()}
	payload, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT OR REPLACE INTO recommendations (id, payload, cached_at) VALUES (1, ?, ?)`,
		string(payload), cached.CachedAt)
	if err != nil {
		return fmt.Errorf("failed to save recommendations: %w", err)
	}
	return nil
}

// Settings returns the persisted reader settings, falling back to
// defaults when nothing was saved yet.
func (r *Repository) Settings() (Settings, error) {
	var value string
	err := r.db.QueryRow(
		`SELECT value FROM settings WHERE key = 'reader'`).Scan(&value)
	if err == sql.ErrNoRows {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

func (r *Repository) SaveSettings(s Settings) error {
	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = r.db.Exec(
		`INSERT OR REPLACE INTO settings (key, value) VALUES ('reader', ?)`,
		string(value))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
