package services

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Lemon199080/komikweb/pkg/api"
	"github.com/Lemon199080/komikweb/pkg/data"
	"github.com/Lemon199080/komikweb/pkg/integrations"
	"github.com/Lemon199080/komikweb/pkg/logging"
	"github.com/Lemon199080/komikweb/pkg/reader"
)

// ExportProgress reports how far a chapter export has gotten.
type ExportProgress struct {
	ComicSlug   string
	ChapterSlug string
	CurrentPage int
	TotalPages  int
	Status      string // "fetching", "downloading", "processing", "complete", "error"
	Error       error
	Path        string
}

// Service is the slice of the API client the exporter needs.
type Service interface {
	Chapter(chapterSlug string) (data.Chapter, error)
	Chapters(comicSlug string) ([]data.ChapterSummary, string, error)
}

// Exporter turns fetched chapters into EPUB files, streaming page
// images straight into the book as they download.
type Exporter struct {
	svc          Service
	outputDir    string
	client       *http.Client
	rateLimiter  *time.Ticker
	progressChan chan ExportProgress
	highRes      bool

	closeOnce sync.Once
}

func NewExporter(svc Service, outputDir string, highRes bool) *Exporter {
	return &Exporter{
		svc:          svc,
		outputDir:    outputDir,
		client:       http.DefaultClient,
		rateLimiter:  time.NewTicker(200 * time.Millisecond),
		progressChan: make(chan ExportProgress, 100),
		highRes:      highRes,
	}
}

// ProgressChannel delivers export progress updates.
func (e *Exporter) ProgressChannel() <-chan ExportProgress {
	return e.progressChan
}

// ExportChapter fetches one chapter and writes it as an EPUB,
// returning the output path.
func (e *Exporter) ExportChapter(chapterSlug string) (string, error) {
	comicSlug := reader.ParentSlug(chapterSlug)

	e.sendProgress(ExportProgress{
		ComicSlug:   comicSlug,
		ChapterSlug: chapterSlug,
		Status:      "fetching",
	})

	ch, err := e.svc.Chapter(chapterSlug)
	if err != nil {
		e.sendError(comicSlug, chapterSlug, err)
		return "", fmt.Errorf("failed to fetch chapter: %w", err)
	}
	if len(ch.Images) == 0 {
		err := fmt.Errorf("no pages found for chapter")
		e.sendError(comicSlug, chapterSlug, err)
		return "", err
	}

	_, comicTitle, err := e.svc.Chapters(comicSlug)
	if err != nil || comicTitle == "" {
		comicTitle = comicSlug
	}

	builder := integrations.NewEPubBuilder(e.outputDir)
	if err := builder.Init(comicTitle, ch.Title); err != nil {
		e.sendError(comicSlug, chapterSlug, err)
		return "", err
	}

	for i, pageURL := range ch.Images {
		e.sendProgress(ExportProgress{
			ComicSlug:   comicSlug,
			ChapterSlug: chapterSlug,
			CurrentPage: i + 1,
			TotalPages:  len(ch.Images),
			Status:      "downloading",
		})

		if e.highRes {
			pageURL = api.HighRes(pageURL)
		}
		img, err := e.downloadImage(pageURL, i)
		if err != nil {
			e.sendError(comicSlug, chapterSlug, err)
			return "", fmt.Errorf("failed to download page %d: %w", i+1, err)
		}
		if err := builder.AddPage(img); err != nil {
			e.sendError(comicSlug, chapterSlug, err)
			return "", err
		}

		<-e.rateLimiter.C
	}

	e.sendProgress(ExportProgress{
		ComicSlug:   comicSlug,
		ChapterSlug: chapterSlug,
		TotalPages:  len(ch.Images),
		Status:      "processing",
	})

	path, err := builder.Done()
	if err != nil {
		e.sendError(comicSlug, chapterSlug, err)
		return "", err
	}

	e.sendProgress(ExportProgress{
		ComicSlug:   comicSlug,
		ChapterSlug: chapterSlug,
		TotalPages:  len(ch.Images),
		Status:      "complete",
		Path:        path,
	})
	return path, nil
}

// ExportComic exports every chapter of a comic, a few at a time.
// Failed chapters are reported through the progress channel; the
// returned error aggregates them.
func (e *Exporter) ExportComic(comicSlug string) error {
	chapters, _, err := e.svc.Chapters(comicSlug)
	if err != nil {
		return fmt.Errorf("failed to fetch chapters: %w", err)
	}
	if len(chapters) == 0 {
		return fmt.Errorf("no chapters found")
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 3)
	errorChan := make(chan error, len(chapters))

	for _, ch := range chapters {
		wg.Add(1)
		go func(slug string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if _, err := e.ExportChapter(slug); err != nil {
				errorChan <- fmt.Errorf("%s: %w", slug, err)
			}
		}(ch.Slug)
	}

	wg.Wait()
	close(errorChan)

	var failed int
	for range errorChan {
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d chapters failed", failed, len(chapters))
	}
	return nil
}

func (e *Exporter) downloadImage(url string, index int) (integrations.ImageData, error) {
	resp, err := e.client.Get(url)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return integrations.ImageData{}, fmt.Errorf("bad status: %s", resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to read image: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return integrations.ImageData{
		Content:     content,
		ContentType: contentType,
		Index:       index,
	}, nil
}

func (e *Exporter) sendError(comicSlug, chapterSlug string, err error) {
	logging.Logger().Error().Err(err).Str("chapter", chapterSlug).Msg("export failed")
	e.sendProgress(ExportProgress{
		ComicSlug:   comicSlug,
		ChapterSlug: chapterSlug,
		Status:      "error",
		Error:       err,
	})
}

// sendProgress never blocks; a full channel drops the update.
func (e *Exporter) sendProgress(p ExportProgress) {
	select {
	case e.progressChan <- p:
	default:
	}
}

func (e *Exporter) Close() {
	e.closeOnce.Do(func() {
		e.rateLimiter.Stop()
		close(e.progressChan)
	})
}
