package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/bub/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/bub/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/bub/internal/version.Date={{.Date}}
)
