package tablemd

import "regexp"

var (
	theadRe = regexp.MustCompile(`(?is)<thead\b[^>]*>(.*?)</thead>`)
	tbodyRe = regexp.MustCompile(`(?is)<tbody\b[^>]*>(.*?)</tbody>`)
	rowRe   = regexp.MustCompile(`(?is)<tr\b[^>]*>.*?</tr>`)
)

// rowSource picks the text rows are read from. When a thead or tbody is
// present the first of each is used, header section first, whatever their
// order in the fragment.
func rowSource(fragment string) string {
	head := theadRe.FindStringSubmatch(fragment)
	body := tbodyRe.FindStringSubmatch(fragment)
	if head == nil && body == nil {
		return fragment
	}

	var src string
	if head != nil {
		src += head[1]
	}
	if body != nil {
		src += body[1]
	}
	return src
}

// segmentRows splits a table fragment into row fragments, markers included.
func segmentRows(fragment string) []string {
	return rowRe.FindAllString(rowSource(fragment), -1)
}
