package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	hpos "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"

	"github.com/kittclouds/gonote/internal/config"
	"github.com/kittclouds/gonote/internal/notes"
	"github.com/kittclouds/gonote/internal/prefs"
	"github.com/kittclouds/gonote/internal/store"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gonote",
	Short: "A note-taking client with categories, search and AI assistance",
	Long: `Gonote keeps your notes in a local SQLite database and mirrors them
into a client-side state with optimistic updates, trash, favorites,
category views, full-text search and related-note suggestions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			fatal("failed to load config", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.config/gonote/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openStore opens the database, loads notes and categories into a
// client store and restores the persisted view preferences. The caller
// must call the returned cleanup function.
func openStore(ctx context.Context) (*notes.Store, func()) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		fatal("failed to create data directory", err)
	}

	source, err := store.NewSQLiteSourceWithDSN(cfg.Database.Path)
	if err != nil {
		fatal("failed to open database", err)
	}

	s := notes.NewStore(source, cfg.User.ID, slog.Default())
	s.LoadNotes(ctx)
	s.LoadCategories(ctx)
	if err := s.LastErr(); err != nil {
		source.Close()
		fatal("failed to load notes", err)
	}

	p, err := prefsStore().Load()
	if err != nil {
		slog.Warn("ignoring unreadable preferences", "error", err)
		p = prefs.Default()
	}
	s.SetFilter(notes.Filter(p.Filter))
	s.SetSearchQuery(p.SearchQuery)

	return s, func() {
		savePrefs(s)
		s.Close()
		source.Close()
	}
}

func prefsStore() *prefs.Store {
	fsys := hpos.NewFS()
	p, err := fsys.FromOSPath(cfg.Prefs.Path)
	if err != nil {
		fatal("failed to resolve preferences path", err)
	}
	return prefs.NewStore(fsys, p)
}

func savePrefs(s *notes.Store) {
	err := prefsStore().Save(prefs.Prefs{
		Filter:      string(s.Filter()),
		SearchQuery: s.SearchQuery(),
	})
	if err != nil {
		slog.Warn("failed to save preferences", "error", err)
	}
}
