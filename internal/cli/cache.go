package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// newCacheCmd creates the cache command group for managing the render cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}
	cmd.AddCommand(newCacheInfoCmd())
	cmd.AddCommand(newCacheClearCmd())
	return cmd
}

// newCacheInfoCmd shows the cache location and size.
func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(cmd)
			if err != nil {
				return err
			}

			entries, size, err := cacheUsage(dir)
			if err != nil {
				return err
			}
			printKeyValue("location", dir)
			printKeyValue("entries", fmt.Sprintf("%d", entries))
			printKeyValue("size", formatBytes(size))
			return nil
		},
	}
}

// newCacheClearCmd removes all cached entries.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(cmd)
			if err != nil {
				return err
			}

			entries, size, err := cacheUsage(dir)
			if err != nil {
				return err
			}
			if entries == 0 {
				printInfo("Cache is already empty")
				return nil
			}
			if err := os.RemoveAll(dir); err != nil {
				return err
			}
			printSuccess("Cleared %d entries (%s)", entries, formatBytes(size))
			return nil
		},
	}
}

// cacheDir resolves the file cache directory from configuration. The cache
// subcommands only operate on the file backend; Redis is managed by its own
// tooling.
func cacheDir(cmd *cobra.Command) (string, error) {
	cfg := loadConfig(loggerFromContext(cmd.Context()))
	if cfg.Cache.Backend == "redis" {
		return "", fmt.Errorf("cache commands manage the file backend; the configured backend is redis")
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mindgrove"), nil
}

// cacheUsage counts entries and bytes under dir. A missing dir counts as
// empty.
func cacheUsage(dir string) (entries int, size int64, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries++
		size += info.Size()
		return nil
	})
	if os.IsNotExist(err) {
		err = nil
	}
	return entries, size, err
}

// formatBytes renders a byte count human-readably.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
