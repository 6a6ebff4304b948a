// Package misc keeps build time information.
package misc

// Set with -ldflags "-X htmlcoder/misc.version=... -X htmlcoder/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "htmlcoder"

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit the program was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}
