package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/gwlsn/timepress/internal/dates"
	"github.com/gwlsn/timepress/internal/ffmpeg"
	"github.com/gwlsn/timepress/internal/logger"
	"github.com/gwlsn/timepress/internal/naming"
	"github.com/gwlsn/timepress/internal/platform"
	"github.com/gwlsn/timepress/internal/state"
)

// proposedRename pairs one unstamped media file with its resolved name.
type proposedRename struct {
	name     string
	newName  string
	earliest time.Time
}

func newRenameCommand(cc *commandContext) *cobra.Command {
	var dryRun, yes bool

	cmd := &cobra.Command{
		Use:   "rename DIRECTORY",
		Short: "Stamp unstamped media filenames with their earliest date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			resolver := dates.NewResolver(ffmpeg.NewProber(cfg.FFprobePath))
			proposals, err := collectRenames(cmd.Context(), dir, resolver)
			if err != nil {
				return err
			}
			if len(proposals) == 0 {
				fmt.Println("Nothing to rename: every media file already carries a stamp.")
				return nil
			}

			rows := make([][]string, 0, len(proposals))
			for _, p := range proposals {
				rows = append(rows, []string{p.name, p.newName, p.earliest.Format("2006-01-02 15:04:05")})
			}
			fmt.Println(renderTable([]string{"Current", "Proposed", "Earliest date"}, rows))

			if dryRun {
				fmt.Println("Dry run: no changes made.")
				return nil
			}
			if !confirm(fmt.Sprintf("Rename %d files?", len(proposals)), yes) {
				fmt.Println("Aborted.")
				return nil
			}

			caps := platform.Detect(cfg.SetFilePath, false)
			renamed := 0
			for _, p := range proposals {
				target := filepath.Join(dir, p.newName)
				if _, err := os.Stat(target); err == nil {
					logger.Warn("target exists, skipping", "file", p.name, "target", p.newName)
					continue
				}
				if err := os.Rename(filepath.Join(dir, p.name), target); err != nil {
					logger.Error("rename failed", "file", p.name, "error", err)
					continue
				}
				if err := dates.Apply(target, p.earliest, caps, cfg.SetFilePath); err != nil {
					logger.Warn("could not reapply dates", "file", p.newName, "error", err)
				}
				renamed++
			}
			fmt.Printf("Renamed %d of %d files.\n", renamed, len(proposals))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show proposed names only")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func collectRenames(ctx context.Context, dir string, resolver *dates.Resolver) ([]proposedRename, error) {
	names, err := mediaFiles(dir)
	if err != nil {
		return nil, err
	}

	var proposals []proposedRename
	for _, name := range names {
		if naming.Stamped(name) {
			continue
		}
		ts, err := resolver.Resolve(ctx, filepath.Join(dir, name))
		if err != nil {
			logger.Warn("cannot resolve dates", "file", name, "error", err)
			continue
		}
		earliest := ts.Earliest()
		proposals = append(proposals, proposedRename{
			name:     name,
			newName:  naming.OutputName(name, earliest),
			earliest: earliest,
		})
	}
	return proposals, nil
}

// mediaFiles lists regular image and video files in dir, dotfiles and
// the state file excluded, sorted by name.
func mediaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if name == state.FileName || name[0] == '.' {
			continue
		}
		if !dates.IsImage(name) && !dates.IsVideo(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
