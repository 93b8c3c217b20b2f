package version

const (
	AppName        = "Command Core"
	AppDescription = "A Discord bot with slash, prefix and context-menu commands sharing one command tree."
)

// Set at build time with -ldflags "-X github.com/keshon/command-core/internal/version.BuildDate=..."
var (
	BuildDate = ""
	GoVersion = ""
)
