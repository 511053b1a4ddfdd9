// Package ui implements the calgrid command line.
package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/calgrid/internal/config"
	"github.com/javiermolinar/calgrid/internal/db"
	"github.com/javiermolinar/calgrid/internal/debuglog"
	"github.com/javiermolinar/calgrid/internal/event"
	"github.com/javiermolinar/calgrid/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   event.Repository
	closer io.Closer
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging

	now  func() time.Time
	copy func(string) error
}

// NewApp creates a new CLI application. A nil repo is opened lazily from
// the configured database path by the commands that need it.
func NewApp(repo event.Repository, cfg *config.Config) *App {
	a := &App{
		repo:   repo,
		config: cfg,
		now:    time.Now,
		copy:   clipboard.WriteAll,
	}

	a.root = &cobra.Command{
		Use:   "calgrid",
		Short: "A terminal calendar",
		Long: `Calgrid lays out your calendar in the terminal.

Timed events are packed side by side on a time grid, and all-day or
multi-day events are drawn as bars across day, week and month views.
Run without a command to open the interactive viewer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return debuglog.Init(a.debug)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config, tui.WithNow(a.now))
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+debuglog.DefaultPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.dayCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.monthCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calgrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database unless a repository was given.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path, err := resolvePath(a.config.Storage.DBPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	store, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo, a.closer = store, store
	return nil
}

// Close releases the database opened by ensureRepo and the debug log.
func (a *App) Close() error {
	debuglog.Close()
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
