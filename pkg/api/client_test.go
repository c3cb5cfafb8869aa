package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, routes map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestComic(t *testing.T) {
	c := jsonServer(t, map[string]string{
		"/comics/naruto": `{
			"success": true,
			"data": {
				"title": "Naruto",
				"thumb": "https://img.test/naruto.jpg",
				"sinopsis": "A ninja story.",
				"rating": 8.5,
				"genres": ["Action"],
				"info": {
					"alternative_title": "NARUTO",
					"author": "Kishimoto",
					"status": "Completed"
				},
				"chapters": [
					{"slug": "naruto-chapter-2", "title": "Chapter 2"},
					{"slug": "naruto-chapter-1", "title": "Chapter 1"}
				]
			}
		}`,
	})

	comic, err := c.Comic("naruto")
	require.NoError(t, err)
	assert.Equal(t, "Naruto", comic.Title)
	// Slug is absent in the payload and falls back to the request slug.
	assert.Equal(t, "naruto", comic.Slug)
	assert.Equal(t, "https://img.test/naruto.jpg", comic.Thumbnail)
	assert.Equal(t, "A ninja story.", comic.Synopsis)
	assert.Equal(t, "8.5", comic.Rating, "numeric rating reads as string")
	assert.Equal(t, "Kishimoto", comic.Author)
	assert.Equal(t, "Completed", comic.Status)
	require.Len(t, comic.LatestChapters, 2)
	assert.Equal(t, "naruto-chapter-2", comic.LatestChapters[0].Slug)
}

func TestComicSuccessFalse(t *testing.T) {
	c := jsonServer(t, map[string]string{
		"/comics/naruto": `{"success": false, "message": "comic unavailable"}`,
	})

	_, err := c.Comic("naruto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comic unavailable")
}

func TestComicNotFound(t *testing.T) {
	c := jsonServer(t, nil)

	_, err := c.Comic("missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "status: 404")
}

func TestChaptersKeepServiceOrder(t *testing.T) {
	c := jsonServer(t, map[string]string{
		"/comics/naruto/chapters": `{
			"title": "Naruto",
			"chapters": [
				{"slug": "naruto-chapter-3", "title": "Chapter 3"},
				{"slug": "naruto-chapter-2", "title": "Chapter 2"},
				{"slug": "naruto-chapter-1", "title": "Chapter 1"}
			]
		}`,
	})

	chapters, title, err := c.Chapters("naruto")
	require.NoError(t, err)
	assert.Equal(t, "Naruto", title)
	require.Len(t, chapters, 3)
	// Newest first, exactly as served.
	assert.Equal(t, "naruto-chapter-3", chapters[0].Slug)
	assert.Equal(t, "naruto-chapter-1", chapters[2].Slug)
}

func TestChapterSummaryFallbacks(t *testing.T) {
	c := jsonServer(t, map[string]string{
		"/comics/naruto/chapters": `{
			"chapters": [{"slug": "naruto-chapter-1", "number": "1", "timeAgo": "2 days ago"}]
		}`,
	})

	chapters, _, err := c.Chapters("naruto")
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "1", chapters[0].Title)
	assert.Equal(t, "2 days ago", chapters[0].Uploaded)
}

func TestChapterEmptyImagesNotAnError(t *testing.T) {
	c := jsonServer(t, map[string]string{
		"/read/naruto-chapter-1": `{"title": "Chapter 1", "images": []}`,
	})

	ch, err := c.Chapter("naruto-chapter-1")
	require.NoError(t, err)
	assert.Equal(t, "naruto-chapter-1", ch.Slug)
	assert.Empty(t, ch.Images)
}

func TestChapter(t *testing.T) {
	c := jsonServer(t, map[string]string{
		"/read/naruto-chapter-1": `{"title": "Chapter 1", "images": ["p1.jpg", "p2.jpg"]}`,
	})

	ch, err := c.Chapter("naruto-chapter-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1.jpg", "p2.jpg"}, ch.Images)
	assert.Equal(t, "Chapter 1", ch.Title)
}

func TestSearch(t *testing.T) {
	c := jsonServer(t, map[string]string{
		"/search": `{"results": [{"slug": "naruto", "title": "Naruto"}]}`,
	})

	comics, err := c.Search("naruto")
	require.NoError(t, err)
	require.Len(t, comics, 1)
	assert.Equal(t, "naruto", comics[0].Slug)
}

func TestProjectsBareArray(t *testing.T) {
	c := jsonServer(t, map[string]string{
		"/project": `[{"slug": "a"}, {"slug": "b"}]`,
	})

	comics, err := c.Projects(1)
	require.NoError(t, err)
	assert.Len(t, comics, 2)
}

func TestComicsAcceptsBothShapes(t *testing.T) {
	wrapped := jsonServer(t, map[string]string{
		"/comics": `{"comics": [{"slug": "a"}]}`,
	})
	comics, err := wrapped.Comics(1)
	require.NoError(t, err)
	require.Len(t, comics, 1)
	assert.Equal(t, "a", comics[0].Slug)

	bare := jsonServer(t, map[string]string{
		"/comics": `[{"slug": "a"}, {"slug": "b"}]`,
	})
	comics, err = bare.Comics(2)
	require.NoError(t, err)
	assert.Len(t, comics, 2)
}

func TestNonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>maintenance</html>"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Comic("naruto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response")
}

func TestServerErrorMessagePreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "database down"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Comic("naruto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database down")
	assert.Contains(t, err.Error(), "status: 500")
}
