package tablemd

import "strings"

const separatorToken = "---"

// serialize writes one "| a | b |" line per row and a separator line right
// after the header row. Rows are written as found; no padding to the
// header width is done.
func serialize(rows [][]string, header int) string {
	var sb strings.Builder
	for i, row := range rows {
		writeLine(&sb, row)
		if i == header {
			sep := make([]string, len(row))
			for j := range sep {
				sep[j] = separatorToken
			}
			writeLine(&sb, sep)
		}
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, cells []string) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(cells, " | "))
	sb.WriteString(" |\n")
}
