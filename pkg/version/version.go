package version

// Set at build time with -ldflags "-X github.com/app-sre/ramp/pkg/version.version=...".
var version = "dev"

func Version() string {
	return version
}
