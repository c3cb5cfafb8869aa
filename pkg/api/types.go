package api

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/Lemon199080/komikweb/pkg/data"
)

// flexString tolerates servers that send a number where a string is
// expected (ratings and counters vary between endpoints).
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// comicDTO covers every field-name variant the service uses for a
// comic. normalize is the single place that resolves the fallbacks.
type comicDTO struct {
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Thumb     string     `json:"thumb"`
	Thumbnail string     `json:"thumbnail"`
	Cover     string     `json:"cover"`
	Image     string     `json:"image"`
	Sinopsis  string     `json:"sinopsis"`
	Synopsis  string     `json:"synopsis"`
	Desc      string     `json:"description"`
	Rating    flexString `json:"rating"`
	Genres    []string   `json:"genres"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	Views     flexString `json:"views"`
	Bookmarks flexString `json:"bookmarks"`
	Link      string     `json:"link"`
	IsUP      bool       `json:"isUP"`
	IsHot     bool       `json:"isHot"`

	Info *struct {
		AlternativeTitle string `json:"alternative_title"`
		Author           string `json:"author"`
		Artist           string `json:"artist"`
		Type             string `json:"type"`
		Status           string `json:"status"`
		Released         string `json:"released"`
		Updated          string `json:"updated"`
	} `json:"info"`

	Chapters []chapterSummaryDTO `json:"chapters"`
}

func (d *comicDTO) normalize() data.Comic {
	comic := data.Comic{
		Slug:      d.Slug,
		Title:     d.Title,
		Thumbnail: firstNonEmpty(d.Thumb, d.Thumbnail, d.Cover, d.Image),
		Synopsis:  firstNonEmpty(d.Sinopsis, d.Synopsis, d.Desc),
		Rating:    string(d.Rating),
		Genres:    d.Genres,
		Type:      d.Type,
		Status:    d.Status,
		Views:     string(d.Views),
		Bookmarks: string(d.Bookmarks),
		Link:      d.Link,
		IsHot:     d.IsHot,
		IsUp:      d.IsUP,
	}

	if d.Info != nil {
		comic.AltTitle = d.Info.AlternativeTitle
		comic.Author = d.Info.Author
		comic.Artist = firstNonEmpty(d.Info.Artist, d.Info.Author)
		comic.Type = firstNonEmpty(d.Info.Type, comic.Type)
		comic.Status = firstNonEmpty(d.Info.Status, comic.Status)
		comic.Released = d.Info.Released
		comic.Updated = d.Info.Updated
	}

	if comic.Slug == "" {
		comic.Slug = slugFromLink(d.Link)
	}

	for _, ch := range d.Chapters {
		comic.LatestChapters = append(comic.LatestChapters, ch.normalize())
	}
	return comic
}

type chapterSummaryDTO struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Number   string `json:"number"`
	Uploaded string `json:"uploaded"`
	TimeAgo  string `json:"timeAgo"`
}

func (d *chapterSummaryDTO) normalize() data.ChapterSummary {
	return data.ChapterSummary{
		Slug:     d.Slug,
		Title:    firstNonEmpty(d.Title, d.Number),
		Uploaded: firstNonEmpty(d.Uploaded, d.TimeAgo),
	}
}

// slugFromLink extracts the trailing path segment of a listing link
// such as "https://host/comic/archmage-restaurant".
func slugFromLink(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return ""
	}
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// HighRes rewrites a thumbnail URL to request the HD rendition, unless
// the URL already asks for one.
func HighRes(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	if strings.Contains(imageURL, "quality=hd") || strings.Contains(imageURL, "size=large") {
		return imageURL
	}
	if strings.Contains(imageURL, "?") {
		return imageURL + "&quality=hd"
	}
	return imageURL + "?quality=hd"
}
