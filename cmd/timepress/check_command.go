package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gwlsn/timepress/internal/ffmpeg"
	"github.com/gwlsn/timepress/internal/platform"
)

func newCheckCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify external tools and host capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}

			type probe struct {
				name     string
				path     string
				required bool
			}
			probes := []probe{
				{"ffmpeg", cfg.FFmpegPath, true},
				{"ffprobe", cfg.FFprobePath, true},
			}
			if runtime.GOOS == "darwin" {
				probes = append(probes, probe{"SetFile", cfg.SetFilePath, false})
			}

			missingRequired := false
			rows := make([][]string, 0, len(probes))
			for _, p := range probes {
				resolved, err := exec.LookPath(p.path)
				status := "ok"
				if err != nil {
					resolved = ""
					if p.required {
						status = "missing"
						missingRequired = true
					} else {
						status = "missing (optional)"
					}
				}
				rows = append(rows, []string{p.name, resolved, status})
			}
			fmt.Println(renderTable([]string{"Tool", "Path", "Status"}, rows))

			caps := platform.Detect(cfg.SetFilePath, false)
			fmt.Printf("Creation-time reads supported: %v\n", caps.BirthTime)

			if !missingRequired {
				encoders := ffmpeg.DetectEncoders(cmd.Context(), cfg.FFmpegPath)
				names := make([]string, 0, len(encoders))
				for name, ok := range encoders {
					if ok {
						names = append(names, name)
					}
				}
				sort.Strings(names)
				fmt.Println("Available encoders:")
				for _, name := range names {
					fmt.Println("  " + name)
				}
			}

			if missingRequired {
				return fmt.Errorf("required tools are missing")
			}
			return nil
		},
	}
}
