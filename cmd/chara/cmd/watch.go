package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	fsw "github.com/corey/chara/internal/adapters/fsnotify"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Analyze stdin titles, hot-reloading the roster on change",
	Long: "Reads titles from stdin, one per line, printing detections for each.\n" +
		"Requires --roster; edits to the roster file are picked up live —\n" +
		"the index is rebuilt off to the side and swapped in atomically.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if flagRoster == "" {
		return fmt.Errorf("watch requires --roster")
	}

	engine, store, err := buildEngine(true)
	if err != nil {
		return err
	}
	defer store.Close()

	watcher, err := fsw.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Stop()

	err = watcher.Watch(flagRoster, func() {
		// Reload triggers the roster change hook: async recompile,
		// atomic swap, cache invalidation. In-flight analyses keep
		// the snapshot they started with.
		if err := engine.ReloadRoster(flagRoster); err != nil {
			slog.Warn("roster reload failed, keeping current roster", "error", err)
		}
	})
	if err != nil {
		return err
	}

	slog.Info("watching roster", "path", flagRoster)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fmt.Print(formatResults(scanner.Text(), engine.Analyze(scanner.Text())))
	}
	return scanner.Err()
}
