// Package version exposes build-time version information and attaches
// a "version" subcommand to the root Cobra command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version, Commit, and BuildTime are populated at build time via -ldflags.
//
//nolint:gochecknoglobals // Overridden at build time with -ldflags "-X ...".
var (
	// Version is the semantic version of the build, e.g. "v1.2.3".
	Version = "v0.0.0-dev"
	// Commit is the VCS commit hash the build was produced from.
	Commit = "none"
	// BuildTime is the UTC timestamp the build was produced at.
	BuildTime = "unknown"
)

// Short returns the short version string.
func Short() string {
	return Version
}

// Full returns the full version string, including commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}

// AttachCobraVersionCommand attaches a "version" subcommand to the given root command.
func AttachCobraVersionCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(Full()) //nolint:forbidigo // Deliberate CLI output.
		},
	})
}
