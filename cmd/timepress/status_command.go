package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gwlsn/timepress/internal/history"
	"github.com/gwlsn/timepress/internal/logger"
	"github.com/gwlsn/timepress/internal/state"
)

func newStatusCommand(cc *commandContext) *cobra.Command {
	var runs int

	cmd := &cobra.Command{
		Use:   "status [DIRECTORY]",
		Short: "Show per-file progress for a directory and recent runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				dir, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				if err := printDirectoryStatus(dir); err != nil {
					return err
				}
			}

			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				logger.Warn("run history unavailable", "error", err)
				return nil
			}
			defer store.Close()
			return printRecentRuns(store, runs)
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 10, "How many recent runs to show")
	return cmd
}

func printDirectoryStatus(dir string) error {
	files, err := state.NewStore().Load(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No recorded progress in", dir)
		return nil
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rec := files[name]
		errText := rec.Error
		rows = append(rows, []string{
			name,
			string(rec.Status),
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			errText,
		})
	}
	fmt.Println(renderTable([]string{"File", "Status", "Recorded", "Error"}, rows))
	return nil
}

func printRecentRuns(store *history.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Directory,
			fmt.Sprintf("%d/%d", r.Done, r.Candidates),
			fmt.Sprintf("%d", r.Failed),
			humanize.IBytes(uint64(r.BytesIn)),
			humanize.IBytes(uint64(r.BytesOut)),
			r.FinishedAt.Sub(r.StartedAt).Truncate(1e9).String(),
		})
	}
	fmt.Println(renderTable(
		[]string{"Started", "Directory", "Done", "Failed", "In", "Out", "Elapsed"},
		rows, "Done", "Failed", "In", "Out", "Elapsed"))
	return nil
}
