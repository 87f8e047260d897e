package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string // substrings that must appear
	}{
		{
			name:   "heading and paragraph",
			source: "# Restoration\n\nThe original façade was retained.",
			want:   []string{"<h1", "Restoration</h1>", "<p>The original façade was retained.</p>"},
		},
		{
			name:   "emphasis",
			source: "A *careful* intervention.",
			want:   []string{"<em>careful</em>"},
		},
		{
			name:   "gfm table",
			source: "| Year | Phase |\n|------|-------|\n| 1998 | Survey |\n",
			want:   []string{"<table>", "<td>1998</td>"},
		},
		{
			name:   "autolink",
			source: "See https://example.com for drawings.",
			want:   []string{`<a href="https://example.com"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
		})
	}
}

// TestToHTML_EscapesRawHTML verifies that embedded HTML is not passed
// through, since body text comes from form input.
func TestToHTML_EscapesRawHTML(t *testing.T) {
	got, err := ToHTML(`before <script>alert(1)</script> after`)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %s", got)
	}
}
