package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calgrid/internal/db"
	"github.com/javiermolinar/calgrid/internal/event"
	"github.com/javiermolinar/calgrid/internal/ics"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import events from an iCalendar file or another database",
		Long: `Import events from an .ics file, or every event from another calgrid
database when the path ends in .db.

Events whose UID is already stored are skipped.`,
		Example: `  calgrid import ~/Downloads/team.ics
  calgrid import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source path is a directory: %s", sourcePath)
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			var res importResult
			if strings.EqualFold(filepath.Ext(sourcePath), ".db") {
				destPath, err := resolvePath(a.config.Storage.DBPath)
				if err != nil {
					return err
				}
				if sourcePath == destPath {
					return fmt.Errorf("source database matches current database")
				}
				res, err = importDatabase(ctx, a.repo, sourcePath)
				if err != nil {
					return err
				}
			} else {
				res, err = importCalendar(ctx, a.repo, sourcePath)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s events from %s", formatStats(fmt.Sprint(res.imported)), sourcePath)
			if res.duplicates > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d already present)", res.duplicates)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	return cmd
}

type importResult struct {
	imported   int
	duplicates int
}

func importCalendar(ctx context.Context, dest event.Repository, path string) (importResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return importResult{}, fmt.Errorf("opening calendar: %w", err)
	}
	defer func() { _ = f.Close() }()

	events, err := ics.Parse(f)
	if err != nil {
		return importResult{}, err
	}
	return store(ctx, dest, events)
}

func importDatabase(ctx context.Context, dest event.Repository, path string) (importResult, error) {
	sourceRepo, err := db.New(path)
	if err != nil {
		return importResult{}, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	events, err := sourceRepo.ListAllEvents(ctx)
	if err != nil {
		return importResult{}, fmt.Errorf("listing source events: %w", err)
	}

	copies := make([]*event.Event, len(events))
	for i, e := range events {
		c := *e
		c.ID = 0
		copies[i] = &c
	}
	return store(ctx, dest, copies)
}

func store(ctx context.Context, dest event.Repository, events []*event.Event) (importResult, error) {
	inserted, err := dest.CreateEvents(ctx, events)
	if err != nil {
		return importResult{}, fmt.Errorf("importing events: %w", err)
	}
	return importResult{imported: inserted, duplicates: len(events) - inserted}, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
