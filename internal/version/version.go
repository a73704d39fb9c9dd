// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/ndewijer/investment-tracker-backend/internal/version.Version=v1.2.3".
package version

// Version is the application version reported by /api/system/version.
var Version = "dev"
