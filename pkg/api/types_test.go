package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	var v struct {
		Rating flexString `json:"rating"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"rating": "8.5"}`), &v))
	assert.Equal(t, flexString("8.5"), v.Rating)

	require.NoError(t, json.Unmarshal([]byte(`{"rating": 8.5}`), &v))
	assert.Equal(t, flexString("8.5"), v.Rating)

	require.NoError(t, json.Unmarshal([]byte(`{"rating": 120}`), &v))
	assert.Equal(t, flexString("120"), v.Rating)

	require.NoError(t, json.Unmarshal([]byte(`{"rating": null}`), &v))
	assert.Equal(t, flexString(""), v.Rating)
}

func TestNormalizeThumbnailFallbacks(t *testing.T) {
	dto := comicDTO{Thumbnail: "thumb.jpg", Cover: "cover.jpg"}
	assert.Equal(t, "thumb.jpg", dto.normalize().Thumbnail)

	dto = comicDTO{Cover: "cover.jpg", Image: "image.jpg"}
	assert.Equal(t, "cover.jpg", dto.normalize().Thumbnail)

	dto = comicDTO{Thumb: "first.jpg", Image: "last.jpg"}
	assert.Equal(t, "first.jpg", dto.normalize().Thumbnail)
}

func TestNormalizeSlugFromLink(t *testing.T) {
	dto := comicDTO{Link: "https://host.test/comic/archmage-restaurant/"}
	assert.Equal(t, "archmage-restaurant", dto.normalize().Slug)

	// An explicit slug wins over the link.
	dto = comicDTO{Slug: "explicit", Link: "https://host.test/comic/other"}
	assert.Equal(t, "explicit", dto.normalize().Slug)
}

func TestSlugFromLink(t *testing.T) {
	assert.Equal(t, "foo", slugFromLink("https://host.test/comic/foo"))
	assert.Equal(t, "foo", slugFromLink("https://host.test/foo/"))
	assert.Equal(t, "", slugFromLink(""))
	assert.Equal(t, "", slugFromLink("https://host.test/"))
}

func TestNormalizeInfoMerge(t *testing.T) {
	dto := comicDTO{Type: "manga"}
	dto.Info = &struct {
		AlternativeTitle string `json:"alternative_title"`
		Author           string `json:"author"`
		Artist           string `json:"artist"`
		Type             string `json:"type"`
		Status           string `json:"status"`
		Released         string `json:"released"`
		Updated          string `json:"updated"`
	}{
		Author: "Author",
		Status: "Ongoing",
	}

	comic := dto.normalize()
	assert.Equal(t, "Author", comic.Author)
	assert.Equal(t, "Author", comic.Artist, "artist falls back to author")
	assert.Equal(t, "manga", comic.Type, "outer type kept when info omits it")
	assert.Equal(t, "Ongoing", comic.Status)
}

func TestHighRes(t *testing.T) {
	assert.Equal(t, "https://img.test/p.jpg?quality=hd", HighRes("https://img.test/p.jpg"))
	assert.Equal(t, "https://img.test/p.jpg?w=100&quality=hd", HighRes("https://img.test/p.jpg?w=100"))
	// Already high-res URLs are left alone.
	assert.Equal(t, "https://img.test/p.jpg?quality=hd", HighRes("https://img.test/p.jpg?quality=hd"))
	assert.Equal(t, "https://img.test/p.jpg?size=large", HighRes("https://img.test/p.jpg?size=large"))
	assert.Equal(t, "", HighRes(""))
}
