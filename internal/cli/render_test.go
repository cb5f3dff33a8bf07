package cli

import (
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to pipeline", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
		{"png only", "png", []string{"png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		format   string
		multiple bool
		want     string
	}{
		{"single with extension", "map.svg", "svg", false, "map.svg"},
		{"single without extension", "out", "svg", false, "out.svg"},
		{"multiple always suffixed", "out", "png", true, "out.png"},
		{"multiple keeps base extension", "map.export", "json", true, "map.export.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.base, tt.format, tt.multiple); got != tt.want {
				t.Errorf("outputPath(%q, %q, %v) = %q, want %q", tt.base, tt.format, tt.multiple, got, tt.want)
			}
		})
	}
}
