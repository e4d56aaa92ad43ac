package custody

// Release is the semantic version of this build. Untagged builds carry a
// pre-release suffix.
const Release = "v0.1.0-dev"

// GitCommit is set at build time:
//
//	go build -ldflags "-X github.com/iov-one/custody.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

// Version returns the release, followed by the commit when known.
func Version() string {
	if GitCommit == "" {
		return Release
	}
	return Release + " " + GitCommit
}
