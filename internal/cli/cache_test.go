package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kilobytes", 1024, "1.0 KB"},
		{"kilobytes fractional", 1536, "1.5 KB"},
		{"megabytes", 1024 * 1024, "1.0 MB"},
		{"gigabytes", 1024 * 1024 * 1024, "1.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatBytes(tt.input); got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCacheUsage(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "ab")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "one.json"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "two.json"), make([]byte, 50), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, size, err := cacheUsage(dir)
	if err != nil {
		t.Fatalf("cacheUsage: %v", err)
	}
	if entries != 2 {
		t.Errorf("entries = %d, want 2", entries)
	}
	if size != 150 {
		t.Errorf("size = %d, want 150", size)
	}
}

func TestCacheUsageMissingDir(t *testing.T) {
	entries, size, err := cacheUsage(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("cacheUsage on missing dir: %v", err)
	}
	if entries != 0 || size != 0 {
		t.Errorf("missing dir usage = %d entries, %d bytes, want empty", entries, size)
	}
}
