package tablemd

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var previewRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderHTML renders Markdown as HTML with GitHub-Flavored Markdown
// extensions, so pipe tables come back as <table> elements.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := previewRenderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
