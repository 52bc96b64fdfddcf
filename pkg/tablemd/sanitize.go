package tablemd

import (
	"regexp"
	"strings"
)

var (
	headerCellRe = regexp.MustCompile(`(?i)<th\b[^>]*>`)
	cellRe       = regexp.MustCompile(`(?is)<t[hd]\b[^>]*>(.*?)</t[hd]>`)
	paragraphRe  = regexp.MustCompile(`(?i)</?p\b[^>]*>`)
)

// DefaultPlaceholder stands in for a cell with no text. Some renderers drop
// a column when a cell is truly empty.
const DefaultPlaceholder = " "

// isCellSpace reports whether r separates words in cell text: ASCII
// whitespace, the Unicode space separators, line and paragraph separators
// and the byte order mark. U+0085 is not a separator.
func isCellSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680',
		'\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// isHeaderRow reports whether a row fragment carries a <th> cell.
func isHeaderRow(row string) bool {
	return headerCellRe.MatchString(row)
}

// sanitizeRow extracts the cleaned cells of one row fragment, in order.
func sanitizeRow(row, placeholder string) []string {
	matches := cellRe.FindAllStringSubmatch(row, -1)
	if len(matches) == 0 {
		return nil
	}
	cells := make([]string, 0, len(matches))
	for _, m := range matches {
		cells = append(cells, sanitizeCell(paragraphRe.ReplaceAllString(m[1], ""), placeholder))
	}
	return cells
}

// sanitizeCell collapses whitespace, trims, escapes pipes and substitutes
// the placeholder for empty text. Markup other than <p> has already been
// removed or is kept verbatim by the caller.
func sanitizeCell(text, placeholder string) string {
	text = strings.Join(strings.FieldsFunc(text, isCellSpace), " ")
	text = strings.ReplaceAll(text, "|", `\|`)
	if text == "" {
		return placeholder
	}
	return text
}

// foldRows sanitizes row fragments into the kept row sequence. The header
// index refers to the kept sequence, so rows dropped for having no cells
// never shift it; it is -1 when no kept row has a <th> cell.
func foldRows(fragments []string, placeholder string) (rows [][]string, header, dropped int) {
	header = -1
	for _, frag := range fragments {
		cells := sanitizeRow(frag, placeholder)
		if len(cells) == 0 {
			dropped++
			continue
		}
		if header == -1 && isHeaderRow(frag) {
			header = len(rows)
		}
		rows = append(rows, cells)
	}
	return rows, header, dropped
}
