package version

// BuildDate and GoVersion are stamped at build time via
// -ldflags "-X github.com/keshon/kindred/internal/version.BuildDate=...".
var (
	AppName        = "Kindred"
	AppDescription = "A tiny companion with a persistent affective core"
	BuildDate      = ""
	GoVersion      = ""
)
