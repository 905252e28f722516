// Package version reports build information stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/grovetools/niribar/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// Info is the build information printed by `niribar version`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo collects build information. When the binary was built without
// ldflags the commit falls back to the VCS revision recorded by the toolchain.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info.Commit == "" {
		info.Commit = vcsRevision()
	}
	return info
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}

// Short returns the version with the commit appended when known.
func (i Info) Short() string {
	if i.Commit == "" {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
}

// String returns the multi-line form.
func (i Info) String() string {
	var b strings.Builder
	line := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "%-11s %s\n", k+":", v)
		}
	}
	line("Version", i.Version)
	line("Commit", i.Commit)
	line("Built", i.BuildDate)
	line("Go", i.GoVersion)
	line("Platform", i.Platform)
	return strings.TrimSuffix(b.String(), "\n")
}
