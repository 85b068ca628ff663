package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// templateCmd represents the template command
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage the survey template library",
	Long:  `Load and watch the YAML survey template library.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'template' requires a subcommand (load, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
