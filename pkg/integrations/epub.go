package integrations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
)

// ImageData is a fetched page image, ready to stream into a book.
type ImageData struct {
	Content     []byte
	ContentType string
	Index       int
}

// EPubBuilder assembles a chapter into an EPUB, one page at a time:
// Init, then AddPage per image in order, then Done.
type EPubBuilder struct {
	outputDir string
	workDir   string
	book      *epub.Epub
	pages     []string // internal image paths, in page order
	title     string
	filename  string
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	return &EPubBuilder{outputDir: outputDir}
}

// Init starts a new book for one chapter of a comic.
func (b *EPubBuilder) Init(comicTitle, chapterTitle string) error {
	title := comicTitle
	if chapterTitle != "" {
		title = fmt.Sprintf("%s - %s", comicTitle, chapterTitle)
	}

	book, err := epub.NewEpub(title)
	if err != nil {
		return fmt.Errorf("failed to create epub: %w", err)
	}
	book.SetAuthor(comicTitle)
	book.SetLang("en")

	workDir, err := os.MkdirTemp("", "komik-epub-*")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}

	b.book = book
	b.workDir = workDir
	b.pages = nil
	b.title = title
	b.filename = sanitizeFilename(title) + ".epub"
	return nil
}

// AddPage streams one page image into the book. Pages must arrive in
// reading order.
func (b *EPubBuilder) AddPage(img ImageData) error {
	if b.book == nil {
		return fmt.Errorf("builder not initialized")
	}

	name := fmt.Sprintf("page-%04d%s", img.Index, extensionFor(img.ContentType))
	path := filepath.Join(b.workDir, name)
	if err := os.WriteFile(path, img.Content, 0o644); err != nil {
		return fmt.Errorf("failed to stage page %d: %w", img.Index, err)
	}

	internal, err := b.book.AddImage(path, name)
	if err != nil {
		return fmt.Errorf("failed to add page %d: %w", img.Index, err)
	}
	b.pages = append(b.pages, internal)
	return nil
}

// Done writes the finished book and returns its path.
func (b *EPubBuilder) Done() (string, error) {
	if b.book == nil {
		return "", fmt.Errorf("builder not initialized")
	}
	defer os.RemoveAll(b.workDir)

	if len(b.pages) == 0 {
		return "", fmt.Errorf("no pages added")
	}

	var html strings.Builder
	html.WriteString(fmt.Sprintf("<h1>%s</h1>\n", b.title))
	for i, internal := range b.pages {
		html.WriteString(fmt.Sprintf(
			`<div class="page"><img src="%s" alt="Page %d" style="width:100%%;height:auto;"/></div>%s`,
			internal, i+1, "\n",
		))
	}
	if _, err := b.book.AddSection(html.String(), b.title, "", ""); err != nil {
		return "", fmt.Errorf("failed to add section: %w", err)
	}

	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(b.outputDir, b.filename)
	if err := b.book.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write epub: %w", err)
	}

	b.book = nil
	return outputPath, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// sanitizeFilename replaces characters that are invalid in filenames.
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	return strings.Trim(result, ".")
}
