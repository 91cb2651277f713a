package version

import "fmt"

// Build-time variables set via ldflags, e.g.
//
//	go build -ldflags "-X github.com/AidosNurbergen/Dos/internal/version.version=v0.2.0"
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version" example:"v0.2.0"`
	BuildDate string `json:"build_date" example:"2025-01-01T12:00:00Z"`
	GitCommit string `json:"git_commit" example:"abc123"`
}

func Get() Info {
	return Info{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
}

// String is the form shown by `dos --version`
func (i Info) String() string {
	return fmt.Sprintf("%s (built %s, commit %s)", i.Version, i.BuildDate, i.GitCommit)
}
