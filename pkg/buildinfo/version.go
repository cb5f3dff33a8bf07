// Package buildinfo exposes version metadata injected at build time.
//
// Release builds override these via ldflags:
//
//	go build -ldflags "\
//	  -X github.com/mindgrove/mindgrove/pkg/buildinfo.Version=v1.2.3 \
//	  -X github.com/mindgrove/mindgrove/pkg/buildinfo.Commit=abc1234 \
//	  -X github.com/mindgrove/mindgrove/pkg/buildinfo.Date=2026-08-25"
package buildinfo

import "fmt"

var (
	// Version is the semantic version of the build.
	Version = "dev"

	// Commit is the git commit hash of the build.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns a single-line version summary.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

// Template returns the version template for cobra's --version output.
func Template() string {
	return fmt.Sprintf("mindgrove %s\ncommit: %s\nbuilt:  %s\n", Version, Commit, Date)
}
