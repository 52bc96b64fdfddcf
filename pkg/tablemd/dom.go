package tablemd

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// scanDOM parses input with goquery and reads the first table's own rows.
// The HTML parser wraps bare rows in an implicit tbody, so the section
// rules of the pattern strategy still apply.
func scanDOM(input, placeholder string) scan {
	s := scan{header: -1}
	if strings.TrimSpace(input) == "" {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return s
	}

	tables := doc.Find("table")
	s.tables = tables.Length()
	if s.tables == 0 {
		return s
	}
	s.found = true

	for _, rows := range tableRows(tables.First()) {
		rows.Each(func(_ int, tr *goquery.Selection) {
			s.fragments++
			cells := tr.ChildrenFiltered("th, td")
			if cells.Length() == 0 {
				s.dropped++
				return
			}
			if s.header == -1 && cells.Filter("th").Length() > 0 {
				s.header = len(s.rows)
			}
			row := make([]string, 0, cells.Length())
			cells.Each(func(_ int, cell *goquery.Selection) {
				row = append(row, sanitizeCell(cell.Text(), placeholder))
			})
			s.rows = append(s.rows, row)
		})
	}
	return s
}

// tableRows returns the row groups of a table in output order: the first
// thead's rows, then the first tbody's rows. A table with neither yields
// its direct tr children.
func tableRows(table *goquery.Selection) []*goquery.Selection {
	head := table.ChildrenFiltered("thead").First()
	body := table.ChildrenFiltered("tbody").First()
	if head.Length() == 0 && body.Length() == 0 {
		return []*goquery.Selection{table.ChildrenFiltered("tr")}
	}
	return []*goquery.Selection{
		head.ChildrenFiltered("tr"),
		body.ChildrenFiltered("tr"),
	}
}
