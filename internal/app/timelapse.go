package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tetherctl/internal/capture"
	"github.com/blackwell-systems/tetherctl/internal/config"
	"github.com/blackwell-systems/tetherctl/internal/output"
	"github.com/blackwell-systems/tetherctl/internal/status"
	"github.com/blackwell-systems/tetherctl/internal/timelapse"
)

var (
	timelapseShots int
	timelapseDelay float64

	timelapseCmd = &cobra.Command{
		Use:   "timelapse",
		Short: "Capture a series of pictures at a fixed interval",
		Long: `Take --shots captures, waiting --delay seconds after each one. Each shot is
a full capture with USB retry handling, saved like 'tetherctl capture' does.

The run stops at the first shot that fails. Ctrl-C stops it between shots.

The config file is watched while the time lapse runs: edits to save_path,
file_extensions or auto_open apply from the next shot on. Invalid edits are
ignored.`,
		Example: `  # Defaults from the config file (timelapse.shots, timelapse.delay_seconds)
  tetherctl timelapse

  # 120 shots, one every 30 seconds
  tetherctl timelapse --shots 120 --delay 30`,
		Args: cobra.NoArgs,
		RunE: runTimelapse,
	}
)

func init() {
	timelapseCmd.Flags().IntVarP(&timelapseShots, "shots", "n", 0, "number of captures (default from config)")
	timelapseCmd.Flags().Float64VarP(&timelapseDelay, "delay", "d", 0, "seconds between captures (default from config)")
}

func runTimelapse(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd)
	defer stop()

	params := timelapse.Params{Shots: s.cfg.Timelapse.Shots, Delay: s.cfg.Delay()}
	if cmd.Flags().Changed("shots") {
		params.Shots = timelapseShots
	}
	if cmd.Flags().Changed("delay") {
		params.Delay = time.Duration(timelapseDelay * float64(time.Second))
	}

	current, closeWatch := watchConfig(s)
	defer closeWatch()

	coord := capture.New(s.runner, s.runner.WorkDir(), capture.WithLogger(s.logger))
	shoot := func(ctx context.Context, report status.Func) []string {
		cfg := current()
		if !ensureSavePath(cfg.SavePath, report) {
			return nil
		}
		saved := coord.Capture(ctx, cfg.SavePath, cfg.FileExtensions, report, s.out)
		if cfg.AutoOpen && len(saved) > 0 {
			openPreferred(saved, report)
		}
		return saved
	}

	var bar *output.ShotBar
	onShot := func(shot, total int, saved []string) {
		if bar == nil {
			bar = output.NewShotBar(total)
			bar.SetWriter(s.errW)
		}
		label := "no files"
		if len(saved) > 0 {
			label = filepath.Base(saved[0])
		}
		bar.Shot(shot, label)
	}

	// The shot bar is the progress display, so no spinner.
	res := inBackground(s, "", s.report, func(report status.Func) timelapse.Result {
		return timelapse.NewSequence(shoot, onShot).Run(ctx, params, report)
	})
	if bar != nil {
		bar.Done()
	}

	files := 0
	for _, shot := range res.Shots {
		files += len(shot)
	}
	if len(res.Shots) > 0 {
		fmt.Fprint(cmd.OutOrStdout(), output.RenderTimelapseSummary(len(res.Shots), params.Shots, files))
	}

	if len(res.Shots) == 0 || res.Aborted || res.Interrupted {
		return ErrReported
	}
	return nil
}

// watchConfig returns a function yielding the latest config for each shot,
// and a function that stops watching. When the file cannot be watched the
// startup config is used throughout.
func watchConfig(s *session) (func() *config.Config, func()) {
	w, err := config.Watch(s.cfgPath, s.cfg, s.logger)
	if err != nil {
		s.logger.Warn("config hot reload disabled", slog.Any("err", err))
		return func() *config.Config { return s.cfg }, func() {}
	}

	closeWatch := func() {
		if err := w.Close(); err != nil {
			s.logger.Debug("closing config watcher", slog.Any("err", err))
		}
	}
	return func() *config.Config {
		cfg := w.Current()
		if cfg == s.cfg {
			return cfg
		}
		// Reloaded files carry no overrides; apply them again.
		return applyOverrides(cfg)
	}, closeWatch
}
