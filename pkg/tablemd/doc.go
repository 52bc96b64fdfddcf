// Package tablemd converts an HTML table fragment into a GitHub-Flavored
// Markdown pipe table.
//
// The conversion is a four stage pipeline: the first <table> is extracted,
// its rows are segmented (thead rows first, then tbody rows), each row's
// cells are sanitized, and the rows are serialized with a "| --- |"
// separator after the first header row.
//
//	md := tablemd.Convert(`<table><tr><th>A</th></tr><tr><td>1</td></tr></table>`)
//	// | A |
//	// | --- |
//	// | 1 |
//
// Input that carries no extractable table is returned unchanged. Convert
// never fails and is safe for concurrent use.
package tablemd
