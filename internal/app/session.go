package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tetherctl/internal/config"
	"github.com/blackwell-systems/tetherctl/internal/gphoto"
	"github.com/blackwell-systems/tetherctl/internal/output"
	"github.com/blackwell-systems/tetherctl/internal/status"
)

// session is what every camera command starts from: the effective config,
// the terminal sinks and a gphoto2 runner.
type session struct {
	cfgPath string
	cfg     *config.Config
	logger  *slog.Logger
	console *output.Console
	runner  *gphoto.ExecRunner
	report  status.Func
	out     status.Output
	errW    io.Writer
	// interactive is true when stderr is a terminal and spinners make sense.
	interactive bool
}

// resolveConfigPath returns --config, then $TETHERCTL_CONFIG, then the
// default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	if p := overrides.GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

func newSession(cmd *cobra.Command) (*session, error) {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	console := output.NewConsole(stdout, stdout, stdout == os.Stdout && output.IsColorEnabled())

	level := slog.LevelInfo
	if overrides.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	path, err := resolveConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config file: %w", err)
	}

	s := &session{
		cfgPath:     path,
		logger:      logger,
		console:     console,
		report:      console.Status(),
		out:         console.Output(),
		errW:        stderr,
		interactive: stderr == os.Stderr && isatty.IsTerminal(os.Stderr.Fd()),
	}

	cfg, warn := config.Load(path)
	if warn != nil {
		s.report.Report(fmt.Sprintf("Warning: %v", warn), status.Warning)
	}
	s.cfg = applyOverrides(cfg)
	logger.Debug("config loaded",
		slog.String("path", path),
		slog.String("save_path", s.cfg.SavePath),
		slog.String("work_dir", s.cfg.WorkDir))

	s.runner = newRunner(s.cfg, logger)
	return s, nil
}

func newRunner(cfg *config.Config, logger *slog.Logger) *gphoto.ExecRunner {
	r := gphoto.NewExecRunner(cfg.Gphoto2, cfg.WorkDir)
	r.Logger = logger
	return r
}

// applyOverrides returns a copy of cfg with flag and environment values
// applied. cfg itself is left untouched.
func applyOverrides(cfg *config.Config) *config.Config {
	c := *cfg
	if v := overrides.GetString("save_path"); v != "" {
		c.SavePath = v
	}
	if v := overrides.GetString("work_dir"); v != "" {
		c.WorkDir = v
	}
	if v := overrides.GetString("gphoto2"); v != "" {
		c.Gphoto2 = v
	}
	return &c
}

// signalContext is cancelled on Ctrl-C or SIGTERM so that a running gphoto2
// child is killed instead of left holding the camera.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// inBackground runs fn on its own goroutine and waits for it. When stderr is
// a terminal and message is set, a spinner shows meanwhile and takes over
// the text of every warning fn reports. fn must report through the Func it
// is given.
func inBackground[T any](s *session, message string, report status.Func, fn func(report status.Func) T) T {
	var sp *output.Spinner
	if s.interactive && message != "" {
		sp = output.NewSpinner(message).ShowElapsed()
		sp.SetWriter(s.errW)
		report = followWarnings(sp, report)
		sp.Start()
	}

	done := make(chan T, 1)
	go func() { done <- fn(report) }()
	res := <-done

	if sp != nil {
		sp.Stop()
	}
	return res
}

type messageUpdater interface {
	UpdateMessage(message string)
}

// followWarnings forwards to next and shows each warning, such as a USB
// retry notice, as the spinner text.
func followWarnings(m messageUpdater, next status.Func) status.Func {
	return func(message string, sev status.Severity) {
		if sev == status.Warning {
			m.UpdateMessage(message)
		}
		next.Report(message, sev)
	}
}

// ensureSavePath creates dir if needed, reporting failures as a status.
func ensureSavePath(dir string, report status.Func) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		report.Report(fmt.Sprintf("Error: cannot create save folder %s: %v", dir, err), status.Error)
		return false
	}
	return true
}
