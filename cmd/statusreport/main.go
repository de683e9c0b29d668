// Package main is the entry point for the statusreport CLI.
//
// statusreport polls a fleet of /status endpoints once, aggregates success
// rates by application and version, and writes a text summary plus a JSON
// report artifact.
//
// Usage:
//
//	statusreport servers.txt          # Run a report against a server list
//	statusreport serve-mock           # Run a mock fleet endpoint locally
//	statusreport version              # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd runs a single report when given a server list file.
var rootCmd = &cobra.Command{
	Use:   "statusreport <servers-file>",
	Short: "Point-in-time fleet health report",
	Long: `statusreport polls every endpoint in a server list file for its
/status payload, aggregates success rates by (application, version), and
produces a human-readable summary on stdout plus a JSON report file.

The server list is plain text: one endpoint per line, with blank lines
and #-comments ignored.

Configuration via environment variables:
  MAX_CONCURRENCY  maximum in-flight fetches (default 50)
  HTTP_TIMEOUT     per-fetch timeout in seconds (default 5)
  OUTPUT_FILE      report artifact path (default report.json)

Individual endpoint failures are logged and skipped; they never fail the
run. The exit code is non-zero only for configuration errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this statusreport binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("statusreport %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
