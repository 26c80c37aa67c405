package version

import "fmt"

// Set via build-time ldflags:
// go build -ldflags "-X git.home.luguber.info/inful/sitecake/internal/version.Version=v0.4.0".
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	if GitCommit == "unknown" && BuildTime == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
