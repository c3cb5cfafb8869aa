package data

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := OpenRepository(filepath.Join(t.TempDir(), "test.db"), NewNotifier())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestToggleBookmark(t *testing.T) {
	repo := testRepo(t)

	added, err := repo.ToggleBookmark("naruto")
	require.NoError(t, err)
	assert.True(t, added)

	slugs, err := repo.ListBookmarks()
	require.NoError(t, err)
	assert.Equal(t, []string{"naruto"}, slugs)

	added, err = repo.ToggleBookmark("naruto")
	require.NoError(t, err)
	assert.False(t, added, "second toggle removes")

	slugs, err = repo.ListBookmarks()
	require.NoError(t, err)
	assert.Empty(t, slugs)
}

func TestBookmarksAndReadlistAreSeparate(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.ToggleBookmark("naruto")
	require.NoError(t, err)
	_, err = repo.ToggleReadlist("bleach")
	require.NoError(t, err)

	bookmarks, err := repo.ListBookmarks()
	require.NoError(t, err)
	assert.Equal(t, []string{"naruto"}, bookmarks)

	readlist, err := repo.ListReadlist()
	require.NoError(t, err)
	assert.Equal(t, []string{"bleach"}, readlist)
}

func TestToggleEmptySlug(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.ToggleBookmark("")
	assert.Error(t, err)
	_, err = repo.ToggleReadlist("")
	assert.Error(t, err)
}

func TestListOrderFollowsInsertion(t *testing.T) {
	repo := testRepo(t)
	base := time.Now()
	for i, slug := range []string{"c", "a", "b"} {
		offset := time.Duration(i) * time.Minute
		repo.now = func() time.Time { return base.Add(offset) }
		_, err := repo.ToggleBookmark(slug)
		require.NoError(t, err)
	}

	slugs, err := repo.ListBookmarks()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, slugs)
}

func TestToggleNotifies(t *testing.T) {
	repo := testRepo(t)
	events, cancel := repo.Notifier().Subscribe()
	defer cancel()

	_, err := repo.ToggleBookmark("naruto")
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "bookmarks", ev.Store)
		assert.Equal(t, "naruto", ev.Slug)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestComicCacheRoundTrip(t *testing.T) {
	repo := testRepo(t)

	comic := Comic{Slug: "naruto", Title: "Naruto", Rating: "8.5"}
	chapters := []ChapterSummary{{Slug: "naruto-chapter-1", Title: "Chapter 1"}}
	require.NoError(t, repo.SaveComic(comic, chapters))

	cached, err := repo.CachedComic("naruto")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "Naruto", cached.Comic.Title)
	require.Len(t, cached.Chapters, 1)
	assert.Equal(t, "naruto-chapter-1", cached.Chapters[0].Slug)
}

func TestComicCacheMiss(t *testing.T) {
	repo := testRepo(t)

	cached, err := repo.CachedComic("missing")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestComicCacheExpires(t *testing.T) {
	repo := testRepo(t)

	require.NoError(t, repo.SaveComic(Comic{Slug: "naruto"}, nil))

	repo.now = func() time.Time { return time.Now().Add(CacheTTL + time.Hour) }
	cached, err := repo.CachedComic("naruto")
	require.NoError(t, err)
	assert.Nil(t, cached, "stale entries read as misses")
}

func TestComicCacheOverwrite(t *testing.T) {
	repo := testRepo(t)

	require.NoError(t, repo.SaveComic(Comic{Slug: "naruto", Title: "old"}, nil))
	require.NoError(t, repo.SaveComic(Comic{Slug: "naruto", Title: "new"}, nil))

	cached, err := repo.CachedComic("naruto")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "new", cached.Comic.Title)
}

func TestRecommendationsRoundTrip(t *testing.T) {
	repo := testRepo(t)

	comics := []Comic{{Slug: "a", Title: "A"}, {Slug: "b", Title: "B"}}
	require.NoError(t, repo.SaveRecommendations(comics))

	got, err := repo.CachedRecommendations()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Slug)

	repo.now = func() time.Time { return time.Now().Add(CacheTTL + time.Hour) }
	got, err = repo.CachedRecommendations()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettingsDefaultsWhenUnset(t *testing.T) {
	repo := testRepo(t)

	s, err := repo.Settings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSettingsRoundTrip(t *testing.T) {
	repo := testRepo(t)

	want := Settings{Quality: "LQ", ScrollSpeed: 1.5}
	require.NoError(t, repo.SaveSettings(want))

	got, err := repo.Settings()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
