package buildinfo

// Set via -ldflags at build time:
//
//	-X 'github.com/baikal-tours/signup-bot/internal/buildinfo.Version=v1.0.0'
//	-X 'github.com/baikal-tours/signup-bot/internal/buildinfo.Commit=abcdef0'
//	-X 'github.com/baikal-tours/signup-bot/internal/buildinfo.Date=2026-01-01T00:00:00Z'
//
// Defaults cover local development.
var (
	// Version reports the semantic version or tag of the build.
	Version = "dev"
	// Commit reports the source control commit used for the build.
	Commit = "local"
	// Date reports the build timestamp in RFC3339 format.
	Date = ""
)
