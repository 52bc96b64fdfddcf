// Package fetcher retrieves pages so their first table can be converted
// straight from a URL.
package fetcher

import (
	"context"
	"errors"
	"time"
)

// Fetcher retrieves a page's HTML.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts Options) (Content, error)
	Close() error

	// Type names the fetcher in logs, e.g. "static".
	Type() string
}

var _ Fetcher = (*StaticFetcher)(nil)

// Options override the fetcher config for one call.
type Options struct {
	UserAgent   string
	Timeout     time.Duration
	Headers     map[string]string
	MaxBodySize int // bytes, 0 keeps the fetcher default
}

// Content is a fetched page.
type Content struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
	Tables      int // <table> elements in the page, nested ones included
}

var (
	// ErrHTTPStatus indicates the server answered with a 4xx or 5xx status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrNotHTML indicates a response whose content type is not HTML.
	ErrNotHTML = errors.New("response is not HTML")
)
