// Package pipeline drives the per-file transcode state machine:
// resolve dates, encode to a stamped name, reapply the earliest
// instant, archive the original — recording every transition in the
// directory's state store and rolling back artifacts on failure.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gwlsn/timepress/internal/dates"
	"github.com/gwlsn/timepress/internal/ffmpeg"
	"github.com/gwlsn/timepress/internal/fileutil"
	"github.com/gwlsn/timepress/internal/logger"
	"github.com/gwlsn/timepress/internal/naming"
	"github.com/gwlsn/timepress/internal/platform"
	"github.com/gwlsn/timepress/internal/state"
)

// OriginalsDirName is where source files are archived once their
// encoded replacement is verified in place.
const OriginalsDirName = "originals"

// EncodeFunc performs one encode. *ffmpeg.Encoder.Encode matches after
// binding settings; tests substitute a stub.
type EncodeFunc func(ctx context.Context, inputPath, outputPath string, s ffmpeg.Settings, onLine ffmpeg.ProgressLineFunc) error

// Pipeline processes one directory, strictly sequentially. The external
// encoder saturates the machine on its own; parallel encodes would only
// fight it.
type Pipeline struct {
	Dir         string
	Settings    ffmpeg.Settings
	Caps        platform.Capabilities
	SetFilePath string
	Store       *state.Store
	Resolver    *dates.Resolver
	Encode      EncodeFunc
	Reporter    Reporter
}

// Change is one proposed encode, produced by Plan.
type Change struct {
	Name     string
	NewName  string
	Earliest time.Time
	Size     int64
}

// Candidates enumerates the video files still to be processed: regular
// files with a video extension, minus dotfiles (the state store lives
// in the directory), minus files already recorded done, and minus
// names that already carry a timestamp stamp — those are this tool's
// own outputs, and re-encoding them would stack a second stamp.
func (p *Pipeline) Candidates() ([]string, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.Dir, err)
	}

	records, err := p.Store.Load(p.Dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || name[0] == '.' || !dates.IsVideo(name) {
			continue
		}
		if naming.Stamped(name) {
			logger.Debug("skipping stamped file", "name", name)
			continue
		}
		if state.Done(records, name) {
			logger.Debug("skipping completed file", "name", name)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Plan performs resolution and naming for every candidate without any
// filesystem mutation or encode — the dry-run view the presentation
// layer shows before the confirmation gate.
func (p *Pipeline) Plan(ctx context.Context) ([]Change, error) {
	names, err := p.Candidates()
	if err != nil {
		return nil, err
	}

	changes := make([]Change, 0, len(names))
	for _, name := range names {
		path := filepath.Join(p.Dir, name)
		ts, err := p.Resolver.Resolve(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", name, err)
		}
		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		changes = append(changes, Change{
			Name:     name,
			NewName:  naming.OutputName(name, ts.Earliest()),
			Earliest: ts.Earliest(),
			Size:     size,
		})
	}
	return changes, nil
}

// Run processes every remaining candidate. One file's failure never
// aborts the batch; every outcome lands in the state store first and
// the reporter second.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	if p.Reporter == nil {
		p.Reporter = NopReporter{}
	}

	names, err := p.Candidates()
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Candidates: len(names)}
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		p.Reporter.FileStart(name, i+1, len(names))
		outcome := p.processFile(ctx, name)
		p.Reporter.FileDone(outcome)

		switch outcome.Status {
		case state.StatusDone:
			sum.Done++
			sum.BytesIn += outcome.InputSize
			sum.BytesOut += outcome.OutputSize
		case state.StatusSkippedExists:
			sum.Skipped++
		default:
			sum.Failed++
		}
	}

	sum.Elapsed = time.Since(start)
	p.Reporter.BatchDone(sum)
	return sum, nil
}

// processFile runs the state machine for one file. Transitions are
// recorded before the work they describe, so a crash mid-encode leaves
// a visible "processing" record for the next run.
func (p *Pipeline) processFile(ctx context.Context, name string) (outcome Outcome) {
	outcome = Outcome{Name: name}
	srcPath := filepath.Join(p.Dir, name)

	record := func(status state.Status, errText string) {
		outcome.Status = status
		if err := p.Store.Record(p.Dir, name, status, errText); err != nil {
			logger.Error("state write failed", "name", name, "error", err)
		}
	}

	var outPath string
	// The per-file boundary: anything unanticipated marks the file
	// error (with its artifact removed) and the batch moves on.
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			outcome.Err = err
			removeIfExists(outPath)
			record(state.StatusError, err.Error())
		}
	}()

	record(state.StatusProcessing, "")

	if info, err := os.Stat(srcPath); err == nil {
		outcome.InputSize = info.Size()
	}

	ts, err := p.Resolver.Resolve(ctx, srcPath)
	if err != nil {
		outcome.Err = err
		record(state.StatusError, err.Error())
		return outcome
	}
	earliest := ts.Earliest()

	outcome.OutputName = naming.OutputName(name, earliest)
	outPath = filepath.Join(p.Dir, outcome.OutputName)

	if _, err := os.Stat(outPath); err == nil {
		record(state.StatusSkippedExists, "")
		return outcome
	}

	parser := ffmpeg.NewProgressParser()
	onLine := func(line string) {
		if prog, ok := parser.ParseLine(line); ok {
			p.Reporter.FileProgress(name, prog)
		}
	}

	if err := p.Encode(ctx, srcPath, outPath, p.Settings, onLine); err != nil {
		outcome.Err = err
		removeIfExists(outPath)
		record(state.StatusFailedCompression, err.Error())
		return outcome
	}

	if info, err := os.Stat(outPath); err == nil {
		outcome.OutputSize = info.Size()
	}

	if err := dates.Apply(outPath, earliest, p.Caps, p.SetFilePath); err != nil {
		outcome.Err = err
		removeIfExists(outPath)
		record(state.StatusFailedMetadata, err.Error())
		return outcome
	}

	if err := fileutil.MoveFile(srcPath, filepath.Join(p.Dir, OriginalsDirName)); err != nil {
		// The source is assumed to still sit at its original path.
		outcome.Err = err
		removeIfExists(outPath)
		record(state.StatusFailedMove, err.Error())
		return outcome
	}

	record(state.StatusDone, "")
	return outcome
}

func removeIfExists(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove artifact", "path", path, "error", err)
	}
}
