package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Release notes tooling for the OrgPulse changelog",
	Long: `Parses and validates CHANGELOG.md (Keep a Changelog format) and
extracts per-version release notes for the OrgPulse release pipeline.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
