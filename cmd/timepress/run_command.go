package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/gwlsn/timepress/internal/config"
	"github.com/gwlsn/timepress/internal/dates"
	"github.com/gwlsn/timepress/internal/ffmpeg"
	"github.com/gwlsn/timepress/internal/history"
	"github.com/gwlsn/timepress/internal/logger"
	"github.com/gwlsn/timepress/internal/pipeline"
	"github.com/gwlsn/timepress/internal/platform"
	"github.com/gwlsn/timepress/internal/state"
)

// lockFileName guards a directory against two concurrent runs racing
// the JSON state store.
const lockFileName = ".timepress.lock"

type encodeFlags struct {
	codec    string
	quality  int
	preset   string
	hardware bool
	dryRun   bool
	yes      bool
}

func (f *encodeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.codec, "codec", "", "Codec family: h264 or h265 (default from config)")
	cmd.Flags().IntVar(&f.quality, "quality", 0, "CRF quality, lower is better (default per codec)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "Encoder speed preset, software path only")
	cmd.Flags().BoolVar(&f.hardware, "hardware", false, "Use the hardware encoder where available")
}

func newRunCommand(cc *commandContext) *cobra.Command {
	var flags encodeFlags

	cmd := &cobra.Command{
		Use:   "run DIRECTORY",
		Short: "Transcode every remaining video in DIRECTORY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cc, cmd, args[0], flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Resolve and name only; mutate nothing")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newPlanCommand(cc *commandContext) *cobra.Command {
	var flags encodeFlags

	cmd := &cobra.Command{
		Use:   "plan DIRECTORY",
		Short: "Show what run would do, without doing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.dryRun = true
			return runBatch(cc, cmd, args[0], flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runBatch(cc *commandContext, cmd *cobra.Command, dir string, flags encodeFlags) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}

	dir, err = filepath.Abs(dir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	// The one fatal precondition: no encoder, no batch.
	if err := ffmpeg.LookPath(cfg.FFmpegPath); err != nil {
		return err
	}

	settings, caps, err := resolveSettings(cmd, cfg, flags)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Dir:         dir,
		Settings:    settings,
		Caps:        caps,
		SetFilePath: cfg.SetFilePath,
		Store:       state.NewStore(),
		Resolver:    dates.NewResolver(ffmpeg.NewProber(cfg.FFprobePath)),
		Reporter:    newConsoleReporter(),
	}
	enc := ffmpeg.NewEncoder(cfg.FFmpegPath)
	p.Encode = enc.Encode

	changes, err := p.Plan(cmd.Context())
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Println("Nothing to do: no unprocessed videos in", dir)
		return nil
	}

	printPlan(changes, settings)
	if flags.dryRun {
		fmt.Println("Dry run: no changes made.")
		return nil
	}

	if !confirm(fmt.Sprintf("Encode %d files and archive originals?", len(changes)), flags.yes) {
		fmt.Println("Aborted.")
		return nil
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another timepress run is active in %s", dir)
	}
	defer lock.Unlock()

	started := time.Now()
	sum, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	recordHistory(cfg, dir, started, sum)
	return nil
}

// resolveSettings merges flags over config and downgrades a hardware
// request the host cannot honor.
func resolveSettings(cmd *cobra.Command, cfg *config.Config, flags encodeFlags) (ffmpeg.Settings, platform.Capabilities, error) {
	merged := *cfg
	if flags.codec != "" {
		merged.Codec = flags.codec
	}
	if flags.quality != 0 {
		merged.Quality = flags.quality
	}
	if flags.preset != "" {
		merged.Preset = flags.preset
	}
	if err := merged.Validate(); err != nil {
		return ffmpeg.Settings{}, platform.Capabilities{}, err
	}

	codec := ffmpeg.Codec(merged.Codec)
	wantHardware := flags.hardware || merged.Hardware

	hardware := false
	if wantHardware {
		encoders := ffmpeg.DetectEncoders(cmd.Context(), merged.FFmpegPath)
		hardware = ffmpeg.HardwareAvailable(encoders, codec)
		if !hardware {
			logger.Warn("hardware encoder unavailable, using software path", "codec", codec)
		}
	}

	caps := platform.Detect(merged.SetFilePath, hardware)
	return ffmpeg.Settings{
		Codec:    codec,
		Quality:  merged.EffectiveQuality(),
		Preset:   merged.Preset,
		Hardware: hardware,
	}, caps, nil
}

func printPlan(changes []pipeline.Change, settings ffmpeg.Settings) {
	rows := make([][]string, 0, len(changes))
	for _, ch := range changes {
		rows = append(rows, []string{
			ch.Name,
			ch.NewName,
			ch.Earliest.Format("2006-01-02 15:04:05"),
			humanize.IBytes(uint64(ch.Size)),
		})
	}
	fmt.Println(renderTable([]string{"Source", "Output", "Earliest date", "Size"}, rows, "Size"))
	fmt.Printf("Encoder: %s, quality %d\n", settings.EncoderName(), settings.Quality)
}

func recordHistory(cfg *config.Config, dir string, started time.Time, sum pipeline.Summary) {
	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		return
	}
	defer store.Close()

	err = store.RecordRun(history.Run{
		Directory:  dir,
		StartedAt:  started,
		FinishedAt: started.Add(sum.Elapsed),
		Candidates: sum.Candidates,
		Done:       sum.Done,
		Failed:     sum.Failed,
		Skipped:    sum.Skipped,
		BytesIn:    sum.BytesIn,
		BytesOut:   sum.BytesOut,
	})
	if err != nil {
		logger.Warn("could not record run history", "error", err)
	}
}
