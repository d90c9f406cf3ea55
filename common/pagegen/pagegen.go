// Package pagegen holds version and build information about the binary.
package pagegen

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the semantic version, set via -ldflags.
	Version = "dev"

	// CommitHash and BuildDate are read from the Go build info when not
	// set via -ldflags.
	CommitHash string
	BuildDate  string
)

// Info contains information about the current binary.
type Info struct {
	Version    string
	CommitHash string
	BuildDate  string

	// version of go that the binary was built with
	GoVersion string
}

// NewInfo creates a new Info.
func NewInfo() Info {
	info := Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.CommitHash == "" {
					info.CommitHash = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			}
		}
	}

	return info
}

// String returns a one line version string, e.g.
//
//	pagegen v0.1.0-a1b2c3d linux/amd64 BuildDate=2024-01-02T03:04:05Z
func (i Info) String() string {
	var b strings.Builder
	b.WriteString("pagegen ")
	b.WriteString(i.Version)
	if i.CommitHash != "" {
		hash := i.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		b.WriteString("-" + strings.ToUpper(hash))
	}
	fmt.Fprintf(&b, " %s/%s", runtime.GOOS, runtime.GOARCH)
	if i.BuildDate != "" {
		b.WriteString(" BuildDate=" + i.BuildDate)
	}
	return b.String()
}
