// Package buildinfo carries the version stamped into siderail binaries.
//
// Set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/siderail/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/siderail/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/siderail/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

const name = "siderail"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// ShortCommit returns the first seven characters of Commit.
func ShortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// UserAgent identifies siderail in outgoing HTTP requests.
func UserAgent() string {
	if Version == "dev" {
		return fmt.Sprintf("%s/dev (%s)", name, ShortCommit())
	}
	return name + "/" + Version
}

// Info is the build information reported by the health endpoint.
func Info() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  ShortCommit(),
		"built":   Date,
	}
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s (%s, built %s)\n", Version, ShortCommit(), Date)
}
