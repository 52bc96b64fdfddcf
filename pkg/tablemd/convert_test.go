package tablemd

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// --- Convert Tests ---

func TestConvert_Passthrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty_string", ""},
		{"blank", "  \n\t  "},
		{"plain_text", "Hello, World!"},
		{"html_without_table", "<html><body><h1>Title</h1></body></html>"},
		{"unclosed_table", "<table><tr><td>a</td></tr>"},
		{"table_without_rows", "<table><caption>c</caption></table>"},
		{"rows_without_cells", "<table><tr></tr><tr> </tr></table>"},
		{"markdown_table", "| a | b |\n| --- | --- |\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.input); got != tt.input {
				t.Errorf("Convert() = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "head_and_body",
			input: "<table><thead><tr><th>A</th><th>B</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>",
			want:  "| A | B |\n| --- | --- |\n| 1 | 2 |\n",
		},
		{
			name:  "pipe_without_header",
			input: "<table><tr><td>a|b</td></tr></table>",
			want:  "| a\\|b |\n",
		},
		{
			name:  "byte_order_mark_trimmed",
			input: "<table><tr><td>\ufeffx</td></tr></table>",
			want:  "| x |\n",
		},
		{
			name:  "body_before_head",
			input: "<table><tbody><tr><td>1</td></tr></tbody><thead><tr><th>H</th></tr></thead></table>",
			want:  "| H |\n| --- |\n| 1 |\n",
		},
		{
			name:  "first_table_only",
			input: "<table><tr><td>a</td></tr></table><p>between</p><table><tr><td>b</td></tr></table>trailing",
			want:  "| a |\n",
		},
		{
			name:  "surrounding_text_dropped",
			input: "intro <table><tr><th>A</th></tr></table> outro",
			want:  "| A |\n| --- |\n",
		},
		{
			name:  "empty_cells",
			input: "<table><tr><td></td><td>  </td><td>x</td></tr></table>",
			want:  "|   |   | x |\n",
		},
		{
			name:  "paragraphs_and_whitespace",
			input: "<table><tr><td><p class=\"x\">Hello</p>\n  <p>World</p></td></tr></table>",
			want:  "| Hello World |\n",
		},
		{
			name:  "attributes_and_case",
			input: `<TABLE border="1"><TR class="h"><TH scope="col">A</TH></TR></TABLE>`,
			want:  "| A |\n| --- |\n",
		},
		{
			name:  "header_not_first",
			input: "<table><tr><td>x</td></tr><tr><th>H</th></tr><tr><td>1</td></tr></table>",
			want:  "| x |\n| H |\n| --- |\n| 1 |\n",
		},
		{
			name:  "only_first_header_row_separated",
			input: "<table><tr><th>A</th></tr><tr><th>B</th></tr></table>",
			want:  "| A |\n| --- |\n| B |\n",
		},
		{
			name:  "dropped_row_before_header",
			input: "<table><tr></tr><tr><th>A</th></tr><tr><td>1</td></tr></table>",
			want:  "| A |\n| --- |\n| 1 |\n",
		},
		{
			name:  "irregular_rows_kept",
			input: "<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td><td>3</td></tr><tr><td>4</td></tr></table>",
			want:  "| A | B |\n| --- | --- |\n| 1 | 2 | 3 |\n| 4 |\n",
		},
		{
			name:  "head_without_body_ignores_loose_rows",
			input: "<table><thead><tr><th>A</th></tr></thead><tr><td>1</td></tr></table>",
			want:  "| A |\n| --- |\n",
		},
		{
			name:  "inline_markup_kept",
			input: "<table><tr><td><strong>b</strong></td></tr></table>",
			want:  "| <strong>b</strong> |\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.input); got != tt.want {
				t.Errorf("Convert() = %q, want %q", got, tt.want)
			}
		})
	}
}

// buildTable returns a thead/tbody table with m columns and n body rows.
func buildTable(m, n int) string {
	var sb strings.Builder
	sb.WriteString("<table><thead><tr>")
	for j := 0; j < m; j++ {
		fmt.Fprintf(&sb, "<th>h%d</th>", j)
	}
	sb.WriteString("</tr></thead><tbody>")
	for i := 0; i < n; i++ {
		sb.WriteString("<tr>")
		for j := 0; j < m; j++ {
			fmt.Fprintf(&sb, "<td>r%dc%d</td>", i, j)
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

func TestConvert_HeaderSeparatorShape(t *testing.T) {
	for _, size := range [][2]int{{1, 0}, {1, 1}, {3, 4}, {7, 20}} {
		m, n := size[0], size[1]
		t.Run(fmt.Sprintf("%dx%d", m, n), func(t *testing.T) {
			got := Convert(buildTable(m, n))
			lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

			if len(lines) != n+2 {
				t.Fatalf("got %d lines, want %d: %q", len(lines), n+2, got)
			}

			sep := "| " + strings.TrimSuffix(strings.Repeat("--- | ", m), " | ") + " |"
			if lines[1] != sep {
				t.Errorf("separator = %q, want %q", lines[1], sep)
			}
		})
	}
}

func TestConvert_PipeEscapeKeepsColumnCount(t *testing.T) {
	got := Convert("<table><tr><td>a|b</td><td>c</td></tr></table>")

	if !strings.Contains(got, `a\|b`) {
		t.Errorf("expected escaped pipe, got %q", got)
	}
	if n := strings.Count(got, " | "); n != 1 {
		t.Errorf("expected 1 column delimiter, got %d in %q", n, got)
	}
}

func TestConvert_Concurrent(t *testing.T) {
	input := buildTable(4, 10)
	want := Convert(input)

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Convert(input); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent Convert() = %q, want %q", got, want)
	}
}

// --- Converter Tests ---

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cfg := c.Config()
	if cfg.Strategy != StrategyPattern {
		t.Errorf("Strategy = %q, want %q", cfg.Strategy, StrategyPattern)
	}
	if cfg.Placeholder != DefaultPlaceholder {
		t.Errorf("Placeholder = %q, want %q", cfg.Placeholder, DefaultPlaceholder)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"unknown_strategy", []Option{WithStrategy("xml")}},
		{"empty_strategy", []Option{WithStrategy("")}},
		{"empty_placeholder", []Option{WithPlaceholder("")}},
		{"zero_config", []Option{WithConfig(Config{})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNew_WithPlaceholder(t *testing.T) {
	c, err := New(WithPlaceholder("-"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := c.Convert("<table><tr><td></td><td>x</td></tr></table>")
	if want := "| - | x |\n"; got != want {
		t.Errorf("Convert() = %q, want %q", got, want)
	}
}

func TestNew_WithConfigThenOption(t *testing.T) {
	c, err := New(WithConfig(DefaultConfig()), WithStrategy(StrategyDOM))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Config().Strategy != StrategyDOM {
		t.Errorf("Strategy = %q, want %q", c.Config().Strategy, StrategyDOM)
	}
}

// --- ConvertWithStats Tests ---

func TestConvertWithStats_Table(t *testing.T) {
	input := "<table><tr></tr><tr><th>A</th><th>B</th></tr><tr><td>1</td></tr></table><table></table>"

	result := defaultConverter.ConvertWithStats(input)

	if !result.Converted {
		t.Fatal("expected Converted = true")
	}

	s := result.Stats
	if s.InputBytes != len(input) {
		t.Errorf("InputBytes = %d, want %d", s.InputBytes, len(input))
	}
	if s.OutputBytes != len(result.Content) {
		t.Errorf("OutputBytes = %d, want %d", s.OutputBytes, len(result.Content))
	}
	if s.TablesFound != 2 {
		t.Errorf("TablesFound = %d, want 2", s.TablesFound)
	}
	if s.Rows != 2 {
		t.Errorf("Rows = %d, want 2", s.Rows)
	}
	if s.Columns != 2 {
		t.Errorf("Columns = %d, want 2", s.Columns)
	}
	if s.HeaderRow != 0 {
		t.Errorf("HeaderRow = %d, want 0", s.HeaderRow)
	}
	if s.DroppedRows != 1 {
		t.Errorf("DroppedRows = %d, want 1", s.DroppedRows)
	}
	if s.IrregularRows != 1 {
		t.Errorf("IrregularRows = %d, want 1", s.IrregularRows)
	}

	phases := map[string]int{}
	for _, w := range result.Warnings {
		phases[w.Phase]++
	}
	want := map[string]int{PhaseExtract: 1, PhaseSanitize: 1, PhaseSerialize: 1}
	for phase, n := range want {
		if phases[phase] != n {
			t.Errorf("warnings in phase %q = %d, want %d (%v)", phase, phases[phase], n, result.Warnings)
		}
	}
}

func TestConvertWithStats_Passthrough(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPhase string
	}{
		{"no_table", "<p>x</p>", PhaseExtract},
		{"no_rows", "<table></table>", PhaseSegment},
		{"no_cells", "<table><tr></tr></table>", PhaseSanitize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := defaultConverter.ConvertWithStats(tt.input)

			if result.Converted {
				t.Error("expected Converted = false")
			}
			if result.Content != tt.input {
				t.Errorf("Content = %q, want %q", result.Content, tt.input)
			}
			if !result.HasWarnings() {
				t.Fatal("expected a warning")
			}
			if got := result.Warnings[0].Phase; got != tt.wantPhase {
				t.Errorf("warning phase = %q, want %q", got, tt.wantPhase)
			}
			if result.Stats.HeaderRow != -1 {
				t.Errorf("HeaderRow = %d, want -1", result.Stats.HeaderRow)
			}
		})
	}
}

func TestConvertWithStats_ColumnsWithoutHeader(t *testing.T) {
	result := defaultConverter.ConvertWithStats("<table><tr><td>1</td><td>2</td><td>3</td></tr></table>")
	if result.Stats.Columns != 3 {
		t.Errorf("Columns = %d, want 3", result.Stats.Columns)
	}
	if result.HasWarnings() {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

// --- Stats / Warning Tests ---

func TestStats_String(t *testing.T) {
	result := defaultConverter.ConvertWithStats("<table><tr><th>A</th></tr></table>")
	out := result.Stats.String()

	for _, want := range []string{"Size:", "Tables: 1", "Rows: 1 kept", "Columns: 1", "Header row: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestStats_String_NoHeader(t *testing.T) {
	result := defaultConverter.ConvertWithStats("<table><tr><td>a</td></tr></table>")
	if out := result.Stats.String(); !strings.Contains(out, "Header row: none") {
		t.Errorf("expected no header in %q", out)
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Phase: PhaseSerialize, Message: "row has 3 cells, expected 2", Context: "row 1"}
	if got, want := w.String(), "[serialize] row has 3 cells, expected 2 (context: row 1)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	w.Context = ""
	if got, want := w.String(), "[serialize] row has 3 cells, expected 2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
