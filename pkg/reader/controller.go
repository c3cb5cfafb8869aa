package reader

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Lemon199080/komikweb/pkg/data"
)

// State is the reader view's lifecycle.
type State int

const (
	// Loading covers the window between opening a chapter and the
	// content fetch resolving. Chapter content and the comic's chapter
	// list load independently; Ready only requires content.
	Loading State = iota
	Ready
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// ErrNoImages marks a chapter whose content fetch succeeded but
// carried zero page images. It is terminal for the view, same as a
// failed fetch.
var ErrNoImages = errors.New("no pages found for this chapter")

// Service is the slice of the API client the controller needs.
type Service interface {
	Chapter(chapterSlug string) (data.Chapter, error)
	Chapters(comicSlug string) ([]data.ChapterSummary, string, error)
}

// chapterList is the cached form of a comic's chapter list, already
// reversed into reading order (oldest first).
type chapterList struct {
	Title    string
	Chapters []data.ChapterSummary
}

// Controller drives a single reader view: which chapter is open, its
// lifecycle state, and where it sits inside the parent comic's
// chapter list. Fetches run in goroutines and land back through
// Resolve/ResolveList, which discard results for any chapter other
// than the one currently open.
type Controller struct {
	svc   Service
	cache *Cache

	slug       string
	comicSlug  string
	comicTitle string
	state      State
	err        error
	chapter    *data.Chapter
	chapters   []data.ChapterSummary
	index      int
}

func NewController(svc Service, cache *Cache) *Controller {
	if cache == nil {
		cache = NewCache(DefaultCacheSize)
	}
	return &Controller{svc: svc, cache: cache, index: -1}
}

// Open resets the controller for a new chapter. All per-view state is
// discarded; the shared cache is not.
func (c *Controller) Open(chapterSlug string) {
	c.slug = chapterSlug
	c.comicSlug = ParentSlug(chapterSlug)
	c.state = Loading
	c.err = nil
	c.chapter = nil
	c.chapters = nil
	c.comicTitle = ""
	c.index = -1
}

// LoadChapter returns the chapter's content, serving from the cache
// when possible. State-free so it can run in a goroutine; feed the
// result to Resolve.
func (c *Controller) LoadChapter(chapterSlug string) (data.Chapter, error) {
	if cached, ok := c.cache.Get(chapterSlug); ok {
		if ch, ok := cached.(data.Chapter); ok {
			return ch, nil
		}
	}
	ch, err := c.svc.Chapter(chapterSlug)
	if err != nil {
		return data.Chapter{}, err
	}
	c.cache.Put(chapterSlug, ch)
	return ch, nil
}

// LoadChapterList returns the comic's chapters in reading order
// (oldest first), serving from the cache when possible. The service
// reports newest first; the reversal happens here, once, before the
// list is cached. Feed the result to ResolveList.
func (c *Controller) LoadChapterList(comicSlug string) (string, []data.ChapterSummary, error) {
	if cached, ok := c.cache.Get(ListKey(comicSlug)); ok {
		if list, ok := cached.(chapterList); ok {
			return list.Title, list.Chapters, nil
		}
	}
	chapters, title, err := c.svc.Chapters(comicSlug)
	if err != nil {
		return "", nil, err
	}
	reversed := make([]data.ChapterSummary, len(chapters))
	for i, ch := range chapters {
		reversed[len(chapters)-1-i] = ch
	}
	c.cache.Put(ListKey(comicSlug), chapterList{Title: title, Chapters: reversed})
	return title, reversed, nil
}

// Resolve applies a finished content fetch. Returns false when the
// result belongs to a chapter that is no longer open, in which case
// nothing changes.
func (c *Controller) Resolve(chapterSlug string, ch data.Chapter, err error) bool {
	if chapterSlug != c.slug {
		return false
	}
	if err != nil {
		c.state = Error
		c.err = err
		return true
	}
	if len(ch.Images) == 0 {
		c.state = Error
		c.err = ErrNoImages
		return true
	}
	c.chapter = &ch
	if c.state != Error {
		c.state = Ready
	}
	c.locate()
	return true
}

// ResolveList applies a finished chapter-list fetch. Returns false
// when the result belongs to a different comic than the open chapter.
func (c *Controller) ResolveList(comicSlug, title string, chapters []data.ChapterSummary, err error) bool {
	if comicSlug != c.comicSlug {
		return false
	}
	if err != nil {
		c.state = Error
		c.err = err
		return true
	}
	c.comicTitle = title
	c.chapters = chapters
	c.locate()
	return true
}

// locate finds the open chapter inside the loaded list.
func (c *Controller) locate() {
	c.index = -1
	for i, ch := range c.chapters {
		if ch.Slug == c.slug {
			c.index = i
			return
		}
	}
}

func (c *Controller) State() State            { return c.state }
func (c *Controller) Err() error              { return c.err }
func (c *Controller) Slug() string            { return c.slug }
func (c *Controller) ComicSlug() string       { return c.comicSlug }
func (c *Controller) ComicTitle() string      { return c.comicTitle }
func (c *Controller) Chapter() *data.Chapter  { return c.chapter }
func (c *Controller) Index() int              { return c.index }

// Chapters is the parent comic's list in reading order, or nil while
// the list fetch has not resolved.
func (c *Controller) Chapters() []data.ChapterSummary { return c.chapters }

// PrevSlug reports the previous chapter in reading order. ok is false
// at the first chapter or while the list is unknown.
func (c *Controller) PrevSlug() (string, bool) {
	if c.index <= 0 {
		return "", false
	}
	return c.chapters[c.index-1].Slug, true
}

// NextSlug reports the next chapter in reading order. ok is false at
// the last chapter or while the list is unknown.
func (c *Controller) NextSlug() (string, bool) {
	if c.index < 0 || c.index >= len(c.chapters)-1 {
		return "", false
	}
	return c.chapters[c.index+1].Slug, true
}

// AtLastChapter reports whether the open chapter is the newest one,
// so the view can offer a way back to the comic instead of "next".
func (c *Controller) AtLastChapter() bool {
	return len(c.chapters) > 0 && c.index == len(c.chapters)-1
}

// JumpToPage converts a 1-based page number into an image index.
// ok is false for out-of-range pages or while content is not loaded.
func (c *Controller) JumpToPage(page int) (int, bool) {
	if c.chapter == nil || page < 1 || page > len(c.chapter.Images) {
		return 0, false
	}
	return page - 1, true
}

// FilterChapters narrows the loaded list by a case-insensitive title
// match, for the reader's chapter picker.
func (c *Controller) FilterChapters(text string) []data.ChapterSummary {
	if text == "" {
		return c.chapters
	}
	needle := strings.ToLower(text)
	var out []data.ChapterSummary
	for _, ch := range c.chapters {
		if strings.Contains(strings.ToLower(ch.Title), needle) {
			out = append(out, ch)
		}
	}
	return out
}

var (
	chapterMarkerRe = regexp.MustCompile(`-chapter`)
	titleNumberRe   = regexp.MustCompile(`(?i)chapter\s+(\d+(?:\.\d+)?)`)
	slugNumberRe    = regexp.MustCompile(`-chapter-(\d+(?:-\d+)?)`)
)

// ParentSlug derives the comic slug from a chapter slug: everything
// before the first "-chapter" marker. A slug without the marker is
// returned unchanged.
func ParentSlug(chapterSlug string) string {
	loc := chapterMarkerRe.FindStringIndex(chapterSlug)
	if loc == nil {
		return chapterSlug
	}
	return chapterSlug[:loc[0]]
}

// ChapterNumber extracts a display number like "12" or "12.5" from a
// chapter's title, falling back to the slug. Empty when neither
// carries one.
func ChapterNumber(title, slug string) string {
	if m := titleNumberRe.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	if m := slugNumberRe.FindStringSubmatch(slug); m != nil {
		return strings.ReplaceAll(m[1], "-", ".")
	}
	return ""
}
