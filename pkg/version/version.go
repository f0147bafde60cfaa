package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Name is the binary name reported by Full
const Name = "tiapp"

// Release stamps, overridden with
// -ldflags "-X github.com/quantmind-br/tiappxml/pkg/version.Version=v1.0.0"
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info describes the running tiapp build
type Info struct {
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version" yaml:"version"`
	Commit   string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`
	Go       string `json:"go" yaml:"go"`
	Platform string `json:"platform" yaml:"platform"`
}

// Get collects the release stamps. Stamps left unset fall back to what
// the Go toolchain embedded, so `go install` builds still report a version.
func Get() Info {
	info := Info{
		Name:     Name,
		Version:  Version,
		Commit:   Commit,
		Date:     Date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = shortCommit(s.Value)
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		}
	}
	return info
}

func (i Info) String() string {
	s := fmt.Sprintf("%s %s", i.Name, i.Version)
	switch {
	case i.Commit != "" && i.Date != "":
		s += fmt.Sprintf(" (%s, %s)", i.Commit, i.Date)
	case i.Commit != "":
		s += fmt.Sprintf(" (%s)", i.Commit)
	}
	return s + fmt.Sprintf(" %s %s", i.Go, i.Platform)
}

// Short returns the version alone, for cobra's --version
func Short() string {
	return Get().Version
}

// Full returns the one-line banner printed by `tiapp version`
func Full() string {
	return Get().String()
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
