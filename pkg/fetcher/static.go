package fetcher

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/tablemd/internal/logger"
)

const defaultUserAgent = "tablemd/1.0 (+https://github.com/jmylchreest/tablemd)"

// StaticConfig holds configuration for the static fetcher.
type StaticConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// DefaultStaticConfig returns the config NewStatic fills gaps from.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
	}
}

// StaticFetcher fetches server-rendered HTML with colly. Pages that build
// their tables in JavaScript come back without them.
type StaticFetcher struct {
	config StaticConfig
}

// NewStatic creates a static fetcher. Zero fields take their defaults.
func NewStatic(cfg StaticConfig) *StaticFetcher {
	def := DefaultStaticConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &StaticFetcher{config: cfg}
}

// Fetch retrieves one page. A 4xx or 5xx answer returns ErrHTTPStatus and
// a non-HTML content type returns ErrNotHTML; Content still carries the
// status in both cases.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	content := Content{URL: targetURL, FetchedAt: time.Now()}
	c := f.collector(ctx, opts)

	var fetchErr error
	c.OnResponse(func(r *colly.Response) {
		content.StatusCode = r.StatusCode
		content.ContentType = r.Headers.Get("Content-Type")
		content.HTML = string(r.Body)
		logger.Debug("static fetch response",
			"url", targetURL,
			"status", r.StatusCode,
			"content_type", content.ContentType,
			"body_size", len(r.Body))
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode >= 400 {
			content.StatusCode = r.StatusCode
			fetchErr = fmt.Errorf("%w: %d from %s", ErrHTTPStatus, r.StatusCode, targetURL)
			return
		}
		fetchErr = fmt.Errorf("fetch %s: %w", targetURL, err)
	})

	if err := c.Visit(targetURL); err != nil && fetchErr == nil {
		return content, fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		logger.Debug("static fetch failed", "url", targetURL, "error", fetchErr)
		return content, fetchErr
	}
	if !isHTML(content.ContentType) {
		return content, fmt.Errorf("%w: %s", ErrNotHTML, content.ContentType)
	}

	if err := inspect(&content); err != nil {
		return content, fmt.Errorf("failed to parse content: %w", err)
	}
	logger.Debug("static fetch complete", "url", targetURL, "title", content.Title, "tables", content.Tables)
	return content, nil
}

// collector builds a single-use collector; per-call options win over the
// fetcher config.
func (f *StaticFetcher) collector(ctx context.Context, opts Options) *colly.Collector {
	userAgent := coalesce(opts.UserAgent, f.config.UserAgent)
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = f.config.Timeout
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(timeout)
	if opts.MaxBodySize > 0 {
		c.MaxBodySize = opts.MaxBodySize
	}
	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}
	return c
}

// isHTML accepts HTML media types and, for servers that send none, an empty
// content type.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return media == "text/html" || media == "application/xhtml+xml"
}

// inspect fills the title and the table count from the body.
func inspect(content *Content) error {
	if strings.TrimSpace(content.HTML) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.HTML))
	if err != nil {
		return err
	}
	content.Title = strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
	content.Tables = doc.Find("table").Length()
	return nil
}

// Close releases resources. Collectors are per call, so there is nothing
// to release.
func (f *StaticFetcher) Close() error { return nil }

// Type returns "static".
func (f *StaticFetcher) Type() string { return "static" }

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
