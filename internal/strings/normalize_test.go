package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n\t ",
			want:  "",
		},
		{
			name:  "single token",
			input: "banner",
			want:  "banner",
		},
		{
			name:  "collapses spaces",
			input: "spring   promo    banner",
			want:  "spring promo banner",
		},
		{
			name:  "collapses newlines",
			input: "spring\n\n promo\tbanner",
			want:  "spring promo banner",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeWhitespace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeLowerTrimSpace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "mixed case", input: "  In_Progress ", want: "in_progress"},
		{name: "already normal", input: "done", want: "done"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeLowerTrimSpace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTrimSpace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \t\n ", want: ""},
		{name: "trimmed", input: "  note  ", want: "note"},
		{name: "inner whitespace preserved", input: "  one  two  ", want: "one  two"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TrimSpace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "empty", input: "", want: true},
		{name: "whitespace", input: " \t\n ", want: true},
		{name: "non-empty", input: "note", want: false},
		{name: "trimmed non-empty", input: "  note  ", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsBlank(tc.input)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "crlf", input: "one\r\ntwo", want: "one\ntwo"},
		{name: "bare cr", input: "one\rtwo", want: "one\ntwo"},
		{name: "lf untouched", input: "one\ntwo", want: "one\ntwo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeNewlines(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "none", input: "line", want: "line"},
		{name: "mixed", input: "line\r\n\n", want: "line"},
		{name: "inner kept", input: "one\ntwo\n", want: "one\ntwo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TrimTrailingNewlines(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIndentBlock(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		spaces int
		want   string
	}{
		{name: "no indent", input: "line", spaces: 0, want: "line"},
		{name: "single line", input: "line", spaces: 2, want: "  line"},
		{name: "multiline", input: "one\n\ntwo", spaces: 1, want: " one\n \n two"},
		{name: "empty", input: "", spaces: 3, want: "   "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IndentBlock(tc.input, tc.spaces)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" 1, 3 ,,5 ")
	if len(got) != 3 || got[0] != "1" || got[1] != "3" || got[2] != "5" {
		t.Fatalf("expected [1 3 5], got %q", got)
	}
	if got := SplitList("  "); got != nil {
		t.Fatalf("expected nil for blank input, got %q", got)
	}
}
