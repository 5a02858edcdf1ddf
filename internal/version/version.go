package version

// Set at build time via -ldflags "-X github.com/neox5/acctstat/internal/version.version=...".
var version = "dev"

// String returns the build version.
func String() string {
	return version
}
