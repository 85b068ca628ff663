package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/orgpulse/orgpulse/pkg/config"
	"github.com/orgpulse/orgpulse/pkg/db"
	gormstore "github.com/orgpulse/orgpulse/pkg/server/store/gorm"
	"github.com/orgpulse/orgpulse/pkg/templatelib"
)

// templateWatchCmd represents the template watch command
var templateWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch the template library directory and reload on change",
	Long: `Watch the template library directory and reload templates when
files change.

Example:
  pulsectl template watch
  pulsectl template watch ./templates`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := config.Get().TemplateLibraryPath
		if len(args) > 0 {
			dir = args[0]
		}

		if err := watchTemplates(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch templates: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	templateCmd.AddCommand(templateWatchCmd)
}

func watchTemplates(dir string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	store := gormstore.NewSurveysStore(database)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	fmt.Printf("Watching %s for template changes\n", dir)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			ext := strings.ToLower(filepath.Ext(event.Name))
			if ext != ".yml" && ext != ".yaml" {
				continue
			}

			fmt.Printf("[%s] %s changed, reloading...\n", time.Now().Format(time.RFC3339), event.Name)
			count, err := templatelib.LoadFile(store, event.Name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", event.Name, err)
				continue
			}
			fmt.Printf("Loaded %d template(s) from %s\n", count, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)

		case <-sigChan:
			fmt.Println("Shutting down")
			return nil
		}
	}
}
