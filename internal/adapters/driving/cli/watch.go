package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-route the fixture whenever it changes",
	Long: `Watches the site fixture file and runs a routing pass on every change,
until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	a.close()

	path := fixturePath
	if path == "" {
		path = a.cfg.FixturePath
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace the file on save, which
	// drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	cmd.Printf("Watching %s; routing on change.\n", path)
	if err := runRoute(cmd, nil); err != nil {
		cmd.Printf("routing pass failed: %v\n", err)
	}

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cmd.Printf("%s changed; routing.\n", path)
			if err := runRoute(cmd, nil); err != nil {
				cmd.Printf("routing pass failed: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.Printf("watch error: %v\n", err)
		}
	}
}
