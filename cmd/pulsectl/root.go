package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pulsectl",
	Short: "Manage the OrgPulse server",
	Long: `pulsectl manages the OrgPulse organizational climate server.

It runs the API server, migrates the database schema, loads the survey
template library and creates administrator accounts.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
