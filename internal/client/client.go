// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the Go binding for the Riwayati REST API.

It is a thin transport: every method maps to exactly one HTTP call and
returns the decoded body. Non-2xx answers become an [*APIError] carrying the
server's error code, so callers can branch with [IsNotFound] and friends
instead of parsing messages.
*/
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/taibuivan/riwayati/internal/core/draft"
	"github.com/taibuivan/riwayati/internal/core/novel"
	"github.com/taibuivan/riwayati/internal/platform/apperr"
	"github.com/taibuivan/riwayati/internal/platform/constants"
)

const (
	defaultTimeout = 30 * time.Second

	// draftTimeout must outlive the server's generation deadline.
	draftTimeout = constants.DraftRequestTimeout + 5*time.Second
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int                 `json:"-"`
	Code    string              `json:"code"`
	Message string              `json:"error"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("riwayati api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("riwayati api: %s (%d): %s", e.Code, e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsConflict reports whether err is a 409 from the API.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

// Options configures a [Client].
type Options struct {
	// Timeout applies to CRUD calls. Draft calls use a longer fixed deadline.
	Timeout time.Duration

	// UserAgent is sent on every request.
	UserAgent string
}

// Client talks to one Riwayati API server.
type Client struct {
	http *resty.Client

	// drafting has no client timeout; each call carries a context deadline.
	drafting *resty.Client
}

// New creates a [Client] for the server at baseURL (e.g. http://localhost:3000).
func New(baseURL string, options Options) *Client {
	if options.Timeout <= 0 {
		options.Timeout = defaultTimeout
	}
	if options.UserAgent == "" {
		options.UserAgent = "riwayati-client/" + constants.AppVersion
	}

	build := func() *resty.Client {
		return resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetLogger(discardLogger{}).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", options.UserAgent)
	}

	return &Client{
		http:     build().SetTimeout(options.Timeout),
		drafting: build(),
	}
}

// request starts a call with the shared error decoding wired in.
func (c *Client) request(ctx context.Context, failure *APIError) *resty.Request {
	return c.http.R().SetContext(ctx).SetError(failure)
}

// check turns a transport error or non-2xx response into an error.
func check(response *resty.Response, err error, failure *APIError, action string) error {
	if err != nil {
		return fmt.Errorf("riwayati api: %s: %w", action, err)
	}
	if !response.IsError() {
		return nil
	}

	failure.Status = response.StatusCode()
	if failure.Message == "" {
		failure.Message = http.StatusText(response.StatusCode())
	}
	return failure
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, strconv.FormatInt(id, 10))
}

// # Novels

// ListNovels returns the library, newest first, without chapters.
func (c *Client) ListNovels(ctx context.Context) ([]novel.Novel, error) {
	var (
		result  []novel.Novel
		failure APIError
	)

	response, err := c.request(ctx, &failure).SetResult(&result).Get("/api/novels")
	if err := check(response, err, &failure, "list novels"); err != nil {
		return nil, err
	}
	if result == nil {
		result = []novel.Novel{}
	}
	return result, nil
}

// GetNovel returns a novel with its ordered chapters.
func (c *Client) GetNovel(ctx context.Context, id int64) (*novel.Detail, error) {
	var (
		result  novel.Detail
		failure APIError
	)

	response, err := c.request(ctx, &failure).SetResult(&result).Get(idPath("/api/novels/%s", id))
	if err := check(response, err, &failure, "get novel"); err != nil {
		return nil, err
	}
	if result.Chapters == nil {
		result.Chapters = []*novel.Chapter{}
	}
	return &result, nil
}

// CreateNovel stores a novel and returns its ID.
func (c *Client) CreateNovel(ctx context.Context, input novel.CreateNovelInput) (int64, error) {
	var (
		result  novel.CreatedResponse
		failure APIError
	)

	response, err := c.request(ctx, &failure).SetBody(input).SetResult(&result).Post("/api/novels")
	if err := check(response, err, &failure, "create novel"); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// DeleteNovel removes a novel and its chapters, returning the row count.
func (c *Client) DeleteNovel(ctx context.Context, id int64) (int64, error) {
	var (
		result  novel.DeletedResponse
		failure APIError
	)

	response, err := c.request(ctx, &failure).SetResult(&result).Delete(idPath("/api/novels/%s", id))
	if err := check(response, err, &failure, "delete novel"); err != nil {
		return 0, err
	}
	return result.Changes, nil
}

// # Chapters

// GetChapter returns one chapter.
func (c *Client) GetChapter(ctx context.Context, id int64) (*novel.Chapter, error) {
	var (
		result  novel.Chapter
		failure APIError
	)

	response, err := c.request(ctx, &failure).SetResult(&result).Get(idPath("/api/chapters/%s", id))
	if err := check(response, err, &failure, "get chapter"); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateChapter adds a chapter to a novel and returns its ID.
func (c *Client) CreateChapter(ctx context.Context, novelID int64, input novel.CreateChapterInput) (int64, error) {
	var (
		result  novel.CreatedResponse
		failure APIError
	)

	response, err := c.request(ctx, &failure).SetBody(input).SetResult(&result).
		Post(idPath("/api/novels/%s/chapters", novelID))
	if err := check(response, err, &failure, "create chapter"); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// UpdateChapter overwrites a chapter's title and content.
func (c *Client) UpdateChapter(ctx context.Context, id int64, input novel.UpdateChapterInput) error {
	var failure APIError

	response, err := c.request(ctx, &failure).SetBody(input).Put(idPath("/api/chapters/%s", id))
	return check(response, err, &failure, "update chapter")
}

// DeleteChapter removes a chapter, returning the row count.
func (c *Client) DeleteChapter(ctx context.Context, id int64) (int64, error) {
	var (
		result  novel.DeletedResponse
		failure APIError
	)

	response, err := c.request(ctx, &failure).SetResult(&result).Delete(idPath("/api/chapters/%s", id))
	if err := check(response, err, &failure, "delete chapter"); err != nil {
		return 0, err
	}
	return result.Changes, nil
}

// # Drafting

// Draft asks the server to expand the given buffers into a full chapter.
// The result is not saved.
func (c *Client) Draft(ctx context.Context, chapterID int64, input draft.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, draftTimeout)
	defer cancel()

	var (
		result  draft.Response
		failure APIError
	)

	response, err := c.drafting.R().
		SetContext(ctx).
		SetError(&failure).
		SetBody(input).
		SetResult(&result).
		Post(idPath("/api/chapters/%s/draft", chapterID))
	if err := check(response, err, &failure, "draft chapter"); err != nil {
		return "", err
	}
	return result.Content, nil
}

// discardLogger keeps resty quiet; errors are returned to the caller.
type discardLogger struct{}

func (discardLogger) Errorf(string, ...any) {}
func (discardLogger) Warnf(string, ...any)  {}
func (discardLogger) Debugf(string, ...any) {}
