package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tablemd/internal/logger"
	"github.com/jmylchreest/tablemd/pkg/fetcher"
)

var (
	errEmptyInput    = errors.New("empty input")
	errInputTooLarge = errors.New("input exceeds max input size")
)

// input is what a command reads before converting.
type input struct {
	Source    string
	Text      string
	Title     string
	FetchedAt time.Time
}

// parseSize parses a humanized size. Empty or "0" means unlimited.
func parseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid max input size %q: %w", s, err)
	}
	return int(n), nil
}

func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// readLocal reads stdin for "" and "-", a file otherwise.
func readLocal(stdin io.Reader, arg string, limit int) (input, error) {
	if arg == "" || arg == "-" {
		text, err := readLimited(stdin, limit)
		if err != nil {
			return input{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return checkInput(input{Source: "stdin", Text: text})
	}

	f, err := os.Open(arg) //#nosec G304 -- CLI tool reads the user-specified input file
	if err != nil {
		return input{}, err
	}
	defer func() { _ = f.Close() }()

	text, err := readLimited(f, limit)
	if err != nil {
		return input{}, fmt.Errorf("failed to read %s: %w", arg, err)
	}
	return checkInput(input{Source: arg, Text: text})
}

// fetchInput retrieves a page with the static fetcher.
func fetchInput(ctx context.Context, url string, cfg fetcher.StaticConfig, limit int) (input, error) {
	f := fetcher.NewStatic(cfg)
	defer func() { _ = f.Close() }()

	opts := fetcher.Options{}
	if limit > 0 {
		// one byte over the limit so oversized pages are detected, not truncated
		opts.MaxBodySize = limit + 1
	}

	content, err := f.Fetch(ctx, url, opts)
	if err != nil {
		return input{}, err
	}
	logger.Debug("page fetched",
		"url", content.URL,
		"status", content.StatusCode,
		"size", humanize.Bytes(uint64(len(content.HTML))),
		"tables", content.Tables)
	if content.Tables > 1 {
		logger.Info("page has several tables, converting the first", "url", content.URL, "tables", content.Tables)
	}

	in := input{
		Source:    content.URL,
		Text:      content.HTML,
		Title:     content.Title,
		FetchedAt: content.FetchedAt,
	}
	if limit > 0 && len(in.Text) > limit {
		return input{}, fmt.Errorf("%w (%s)", errInputTooLarge, humanize.Bytes(uint64(limit)))
	}
	return checkInput(in)
}

func readLimited(r io.Reader, limit int) (string, error) {
	if limit > 0 {
		r = io.LimitReader(r, int64(limit)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if limit > 0 && len(data) > limit {
		return "", fmt.Errorf("%w (%s)", errInputTooLarge, humanize.Bytes(uint64(limit)))
	}
	return string(data), nil
}

func checkInput(in input) (input, error) {
	if strings.TrimSpace(in.Text) == "" {
		return input{}, fmt.Errorf("%w: %s", errEmptyInput, in.Source)
	}
	return in, nil
}
