// internal/version/version.go
package version

// Version is the pcrsim release string. Overridden at build time via
// -ldflags "-X pcrsim/internal/version.Version=v1.2.3".
var Version = "dev"
