package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corey/chara/internal/adapters/bbolt"
	"github.com/corey/chara/internal/app"
	"github.com/corey/chara/internal/domain/roster"
	rosterdata "github.com/corey/chara/roster"
)

var (
	flagRoster  string
	flagConfig  string
	flagDB      string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "chara",
	Short: "chara — character detection engine for video titles",
	Long:  "Tiered multi-pattern detection of known characters in free-text titles,\nwith confidence scoring, conflict resolution, and a result cache.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoster, "roster", "", "roster JSON file (overrides stored and embedded rosters)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "engine config YAML file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "bbolt database path (default .chara/chara.db)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(creatorsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

// dbPath returns the bbolt path, defaulting to .chara/chara.db under cwd.
func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return filepath.Join(dir, ".chara", "chara.db")
}

// openStore opens the bbolt store, creating its directory if needed.
func openStore() (*bbolt.Store, error) {
	path := dbPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return bbolt.NewStore(path)
}

// loadRoster builds the pattern database. Precedence: --roster file, then
// the snapshot stored in bbolt (nil store skips this), then the embedded
// default roster.
func loadRoster(store *bbolt.Store) (*roster.DB, error) {
	db := roster.New(slog.Default())

	if flagRoster != "" {
		if err := db.LoadFile(flagRoster); err != nil {
			return nil, err
		}
		return db, nil
	}

	if store != nil {
		doc, err := store.LoadRoster()
		if err != nil {
			return nil, err
		}
		if doc != nil {
			if err := db.Load(doc); err != nil {
				return nil, err
			}
			return db, nil
		}
	}

	if err := db.LoadFS(rosterdata.FS, "v1"); err != nil {
		return nil, err
	}
	return db, nil
}

// buildEngine constructs the engine from config + roster. The returned
// store may be nil when withStore is false.
func buildEngine(withStore bool) (*app.Engine, *bbolt.Store, error) {
	cfg, err := app.LoadConfig(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	var store *bbolt.Store
	if withStore {
		store, err = openStore()
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := loadRoster(store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}

	return app.New(db, cfg, slog.Default()), store, nil
}
