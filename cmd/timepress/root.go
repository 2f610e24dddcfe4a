package main

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gwlsn/timepress/internal/config"
	"github.com/gwlsn/timepress/internal/logger"
)

type commandContext struct {
	configFlag *string
	levelFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, levelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, levelFlag: levelFlag}
}

func defaultConfigPath() string {
	if env := os.Getenv("TIMEPRESS_CONFIG"); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "timepress.yaml"
	}
	return filepath.Join(base, "timepress", "config.yaml")
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(*c.configFlag)
		if path == "" {
			path = defaultConfigPath()
		}

		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}

		// Environment overrides, useful under launchd/cron.
		if env := os.Getenv("FFMPEG_PATH"); env != "" {
			cfg.FFmpegPath = env
		}
		if env := os.Getenv("FFPROBE_PATH"); env != "" {
			cfg.FFprobePath = env
		}
		if *c.levelFlag != "" {
			cfg.LogLevel = *c.levelFlag
		}

		logger.Init(cfg.LogLevel)
		c.config = cfg
	})
	return c.config, c.configErr
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var levelFlag string

	ctx := newCommandContext(&configFlag, &levelFlag)

	rootCmd := &cobra.Command{
		Use:           "timepress",
		Short:         "Batch-transcode media while preserving its true dates",
		Long: `timepress re-encodes a directory of videos with ffmpeg, names each
output after the earliest instant it can establish for the source
(filesystem times plus embedded metadata), reapplies that instant to
the output, and archives originals. Interrupted batches resume where
they stopped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&levelFlag, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newRenameCommand(ctx))
	rootCmd.AddCommand(newFixDatesCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}
