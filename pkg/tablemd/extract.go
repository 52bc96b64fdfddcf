package tablemd

import (
	"regexp"
	"strings"
)

var (
	tableRe     = regexp.MustCompile(`(?is)<table\b[^>]*>(.*?)</table>`)
	tableOpenRe = regexp.MustCompile(`(?i)<table\b[^>]*>`)
)

// extractTable returns the inner text of the first table in raw.
// Everything after the first closing </table> is ignored.
func extractTable(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	m := tableRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// countTableMarkers counts opening table markers, nested ones included.
func countTableMarkers(raw string) int {
	return len(tableOpenRe.FindAllStringIndex(raw, -1))
}
