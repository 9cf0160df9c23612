package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/clustercolour/internal/colour"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"NAME", "KIND", "COLOURS"})
	table.AddRow([]string{"rainbow", "continuous", "12"})
	table.AddRow([]string{"glasbey", "categorical"})

	got := table.Render()
	want := "" +
		"NAME     KIND         COLOURS\n" +
		"-------  -----------  -------\n" +
		"rainbow  continuous   12\n" +
		"glasbey  categorical\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}

	got := NewTable([]string{"A", "B"}).Render()
	if got != "A  B\n-  -\n" {
		t.Errorf("Render() without rows = %q", got)
	}
}

func TestTableIgnoresANSIWidth(t *testing.T) {
	swatch := colour.Swatch(colour.RGB{R: 1}, 2)
	table := NewTable([]string{"PREVIEW", "NAME"})
	table.AddRow([]string{swatch, "red"})

	lines := strings.Split(table.Render(), "\n")
	if len(lines) < 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if got, want := displayWidth(lines[2]), len("PREVIEW  red"); got != want {
		t.Errorf("row width = %d, want %d (%q)", got, want, lines[2])
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain", "hello", 5},
		{"empty", "", 0},
		{"unicode", "→ ★", 3},
		{"swatch", colour.Swatch(colour.RGB{G: 1}, 4), 4},
		{"text swatch", colour.SwatchWithText(colour.RGB{B: 1}, "ab", 6), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayWidth(tt.in); got != tt.want {
				t.Errorf("displayWidth(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{"★", 3, "★  "},
	}

	for _, tt := range tests {
		result := padRight(tt.input, tt.width)
		if result != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
		}
	}
}
