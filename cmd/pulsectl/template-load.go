package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orgpulse/orgpulse/pkg/config"
	"github.com/orgpulse/orgpulse/pkg/db"
	gormstore "github.com/orgpulse/orgpulse/pkg/server/store/gorm"
	"github.com/orgpulse/orgpulse/pkg/templatelib"
)

// templateLoadCmd represents the template load command
var templateLoadCmd = &cobra.Command{
	Use:   "load [dir]",
	Short: "Load the survey template library into the database",
	Long: `Load the survey template library into the database.

Reads every .yml/.yaml file under the given directory (default: the
configured template_library_path) and upserts the templates it finds.
Templates are matched by name, so reloading an edited file replaces the
existing template and its questions.

Example:
  pulsectl template load
  pulsectl template load ./templates`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := config.Get().TemplateLibraryPath
		if len(args) > 0 {
			dir = args[0]
		}

		count, err := loadTemplates(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load templates: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %d template(s) from %s\n", count, dir)
	},
}

func init() {
	templateCmd.AddCommand(templateLoadCmd)
}

func loadTemplates(dir string) (int, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return 0, err
	}

	return templatelib.LoadDir(gormstore.NewSurveysStore(database), dir)
}
