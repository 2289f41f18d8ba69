package ui

import (
	"strings"
	"testing"
)

func withViewportWidth(t *testing.T, width int) {
	t.Helper()
	original := tableViewportWidth
	tableViewportWidth = func() int { return width }
	t.Cleanup(func() { tableViewportWidth = original })
}

func TestTruncateTableCell(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "cyrillic at the limit",
			value: strings.Repeat("а", tableCellMaxWidth-8) + "Карусель",
			want:  strings.Repeat("а", tableCellMaxWidth-8) + "Карусель",
		},
		{
			name:  "line breaks become spaces",
			value: "Spring\nbanner\r\nfor\tCafe",
			want:  "Spring banner for Cafe",
		},
		{
			name:  "ansi codes are not counted",
			value: "\x1b[31m" + strings.Repeat("x", tableCellMaxWidth) + "\x1b[0m",
			want:  "\x1b[31m" + strings.Repeat("x", tableCellMaxWidth) + "\x1b[0m",
		},
		{
			name:  "long title gets an ellipsis",
			value: strings.Repeat("b", tableCellMaxWidth+10),
			want:  strings.Repeat("b", tableCellMaxWidth-len(tableCellEllipsis)) + tableCellEllipsis,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateTableCell(tc.value); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	withViewportWidth(t, 0)

	builder := NewTableBuilder([]string{"ID", "STATUS", "TITLE"}, 2)
	builder.AddRow([]string{"2", "in progress", "Reels script"})
	builder.AddRow([]string{"14", "\x1b[32mdone\x1b[0m", "Пост"})

	lines := strings.Split(strings.TrimSuffix(builder.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", lines)
	}
	col := strings.Index(lines[0], "TITLE")
	if col != strings.Index(lines[1], "Reels script") {
		t.Fatalf("title column misaligned:\n%s", strings.Join(lines, "\n"))
	}
	if got := displayWidth(lines[2][:strings.Index(lines[2], "Пост")]); got != col {
		t.Fatalf("expected coloured row to align at %d, got %d", col, got)
	}
}

func TestFormatTablePadsToViewport(t *testing.T) {
	withViewportWidth(t, 12)

	got := FormatTable([]string{"ID", "PRI"}, [][]string{{"1", "!"}})

	for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		if width := displayWidth(line); width != 12 {
			t.Fatalf("expected width 12, got %d in %q", width, line)
		}
	}
}
