package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gwlsn/timepress/internal/dates"
	"github.com/gwlsn/timepress/internal/ffmpeg"
	"github.com/gwlsn/timepress/internal/logger"
	"github.com/gwlsn/timepress/internal/platform"
)

// driftTolerance is how far a file's modified time may sit from its
// earliest established instant before fix-dates touches it.
const driftTolerance = 2 * time.Second

func newFixDatesCommand(cc *commandContext) *cobra.Command {
	var dryRun, yes bool

	cmd := &cobra.Command{
		Use:   "fix-dates DIRECTORY",
		Short: "Sync filesystem times to each file's earliest date",
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
			names, err := mediaFiles(dir)
			if err != nil {
				return err
			}

			type drifted struct {
				name     string
				modified time.Time
				earliest time.Time
			}
			var found []drifted
			for _, name := range names {
				path := filepath.Join(dir, name)
				ts, err := resolver.Resolve(cmd.Context(), path)
				if err != nil {
					logger.Warn("cannot resolve dates", "file", name, "error", err)
					continue
				}
				earliest := ts.Earliest()
				info, err := os.Stat(path)
				if err != nil {
					continue
				}
				drift := info.ModTime().Sub(earliest)
				if drift < 0 {
					drift = -drift
				}
				if drift <= driftTolerance {
					continue
				}
				found = append(found, drifted{name: name, modified: info.ModTime(), earliest: earliest})
			}

			if len(found) == 0 {
				fmt.Println("All media file times already match their earliest date.")
				return nil
			}

			rows := make([][]string, 0, len(found))
			for _, d := range found {
				rows = append(rows, []string{
					d.name,
					d.modified.Format("2006-01-02 15:04:05"),
					d.earliest.Format("2006-01-02 15:04:05"),
				})
			}
			fmt.Println(renderTable([]string{"File", "Modified", "Earliest date"}, rows))

			if dryRun {
				fmt.Println("Dry run: no changes made.")
				return nil
			}
			if !confirm(fmt.Sprintf("Rewrite times on %d files?", len(found)), yes) {
				fmt.Println("Aborted.")
				return nil
			}

			caps := platform.Detect(cfg.SetFilePath, false)
			fixed := 0
			for _, d := range found {
				if err := dates.Apply(filepath.Join(dir, d.name), d.earliest, caps, cfg.SetFilePath); err != nil {
					logger.Error("could not set dates", "file", d.name, "error", err)
					continue
				}
				fixed++
			}
			fmt.Printf("Fixed %d of %d files.\n", fixed, len(found))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show drifted files only")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
