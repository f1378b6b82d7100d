// Package version holds build information, set at build time with ldflags:
//
//	go build -ldflags "-X github.com/ramonehamilton/topcards/internal/version.Version=v1.2.3 \
//	  -X github.com/ramonehamilton/topcards/internal/version.Commit=abc1234"
package version

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = ""
)

// String returns the version, with the commit when known.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
