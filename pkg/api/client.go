// Package api is the client for the remote comic service. Every call
// is a single GET with no automatic retries; failures come back as a
// *StatusError or a wrapped decode error.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Lemon199080/komikweb/pkg/data"
	"github.com/Lemon199080/komikweb/pkg/logging"
)

// StatusError is a non-success response from the comic service. Code
// is zero when the failure happened before a status was received.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Code == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status: %d)", e.Message, e.Code)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	se, ok := err.(*StatusError)
	return ok && se.Code == http.StatusNotFound
}

type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// get issues a single GET and decodes the JSON body into v. A non-JSON
// body or a non-2xx status becomes a *StatusError carrying the
// server's message when one is present.
func (c *Client) get(path string, params url.Values, v any) error {
	full := c.baseURL + path
	if len(params) > 0 {
		full += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, full, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logging.Logger().Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("api request")

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return &StatusError{
			Code:    resp.StatusCode,
			Message: "server returned an invalid response",
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := "request failed"
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			if body.Error != "" {
				msg = body.Error
			} else if body.Message != "" {
				msg = body.Message
			}
		}
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Comic fetches the detail record for one comic.
func (c *Client) Comic(slug string) (data.Comic, error) {
	var resp struct {
		Success bool     `json:"success"`
		Data    comicDTO `json:"data"`
		Message string   `json:"message"`
	}
	if err := c.get("/comics/"+url.PathEscape(slug), nil, &resp); err != nil {
		return data.Comic{}, err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "failed to load comic data"
		}
		return data.Comic{}, &StatusError{Message: msg}
	}

	comic := resp.Data.normalize()
	if comic.Slug == "" {
		comic.Slug = slug
	}
	return comic, nil
}

// Chapters fetches a comic's chapter list. The service returns the
// chapters newest-first; callers that need reading order reverse it.
// The second return value is the comic title when the service sends it.
func (c *Client) Chapters(comicSlug string) ([]data.ChapterSummary, string, error) {
	var resp struct {
		Chapters []chapterSummaryDTO `json:"chapters"`
		Title    string              `json:"title"`
	}
	if err := c.get("/comics/"+url.PathEscape(comicSlug)+"/chapters", nil, &resp); err != nil {
		return nil, "", err
	}

	chapters := make([]data.ChapterSummary, len(resp.Chapters))
	for i, ch := range resp.Chapters {
		chapters[i] = ch.normalize()
	}
	return chapters, resp.Title, nil
}

// Chapter fetches a chapter's content. A chapter with zero images is
// returned as-is; deciding that this is an error is the reader's call.
func (c *Client) Chapter(chapterSlug string) (data.Chapter, error) {
	var resp struct {
		Images []string `json:"images"`
		Title  string   `json:"title"`
	}
	if err := c.get("/read/"+url.PathEscape(chapterSlug), nil, &resp); err != nil {
		return data.Chapter{}, err
	}

	return data.Chapter{
		Slug:   chapterSlug,
		Title:  resp.Title,
		Images: resp.Images,
	}, nil
}

// Search queries the service for comics matching q.
func (c *Client) Search(q string) ([]data.Comic, error) {
	var resp struct {
		Results []comicDTO `json:"results"`
	}
	params := url.Values{"q": {q}}
	if err := c.get("/search", params, &resp); err != nil {
		return nil, err
	}
	return normalizeAll(resp.Results), nil
}

// Projects fetches one page of the in-house listing, which the service
// serves as a bare array.
func (c *Client) Projects(page int) ([]data.Comic, error) {
	var dtos []comicDTO
	params := url.Values{"page": {fmt.Sprint(page)}}
	if err := c.get("/project", params, &dtos); err != nil {
		return nil, err
	}
	return normalizeAll(dtos), nil
}

// Comics fetches one page of the mirror listing. The service has been
// observed to answer both `{comics: [...]}` and a bare array, so both
// shapes are accepted.
func (c *Client) Comics(page int) ([]data.Comic, error) {
	var raw json.RawMessage
	params := url.Values{"page": {fmt.Sprint(page)}}
	if err := c.get("/comics", params, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		Comics []comicDTO `json:"comics"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Comics != nil {
		return normalizeAll(wrapped.Comics), nil
	}

	var dtos []comicDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("failed to decode comic listing: %w", err)
	}
	return normalizeAll(dtos), nil
}

func normalizeAll(dtos []comicDTO) []data.Comic {
	comics := make([]data.Comic, len(dtos))
	for i, dto := range dtos {
		comics[i] = dto.normalize()
	}
	return comics
}
