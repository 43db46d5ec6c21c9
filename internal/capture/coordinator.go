package capture

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blackwell-systems/tetherctl/internal/gphoto"
	"github.com/blackwell-systems/tetherctl/internal/status"
)

const (
	// MaxAttempts is the number of capture invocations before giving up on
	// a busy USB device.
	MaxAttempts = 3
	// RetryDelay is the pause between attempts.
	RetryDelay = 3 * time.Second
	// TimestampLayout names captured files: YYYYMMDD_HHMMSS.
	TimestampLayout = "20060102_150405"
)

// Status messages reported by Capture.
const (
	MsgProcessing  = "Processing, please wait..."
	MsgNoFiles     = "No files captured"
	MsgRemediation = "Error: Camera USB connection failed. Try: 1) Unplug/replug camera 2) Press camera shutter button 3) Close Image Capture/Photos apps 4) Restart application"
)

// Coordinator runs capture operations against a single camera. Calls to
// Capture are expected to be sequential; the camera is a singleton.
type Coordinator struct {
	client  *gphoto.Client
	workDir string
	killer  Killer
	logger  *slog.Logger
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error

	mu        sync.Mutex
	lastStamp time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithKiller replaces the process killer used between retries.
func WithKiller(k Killer) Option {
	return func(c *Coordinator) { c.killer = k }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithClock replaces time.Now for timestamp generation.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithSleeper replaces the wait between retries.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Coordinator) { c.sleep = sleep }
}

// New creates a Coordinator that runs gphoto2 through runner and collects
// files from workDir, the directory runner writes downloads into.
func New(runner gphoto.Runner, workDir string, opts ...Option) *Coordinator {
	if workDir == "" {
		workDir = "."
	}
	c := &Coordinator{
		client:  gphoto.NewClient(runner),
		workDir: workDir,
		killer:  Killall{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capture takes a picture, downloads it and moves the newest file of each
// extension into destDir as {timestamp}{ext}. It returns the destination
// paths, or nil when the operation failed; the reason is reported through
// report. destDir must already exist.
//
// Files moved before a failure during collection are not moved back.
func (c *Coordinator) Capture(ctx context.Context, destDir string, extensions []string, report status.Func, out status.Output) []string {
	report.Report(MsgProcessing, status.Info)
	out.Clear()
	start := c.nextStamp()
	destDir = filepath.Clean(strings.TrimSpace(destDir))

	if !c.runAttempts(ctx, report, out) {
		return nil
	}

	stamp := c.freeStamp(destDir, start, extensions)
	moved, err := harvest(c.workDir, destDir, stamp, extensions)
	if err != nil {
		c.logger.Debug("file collection aborted",
			slog.Int("moved_before_error", len(moved)),
			slog.Any("err", err))
		report.Report(fmt.Sprintf("Error renaming files: %v", err), status.Error)
		return nil
	}

	if len(moved) == 0 {
		report.Report(MsgNoFiles, status.Error)
		return nil
	}

	saved := make([]string, 0, len(moved))
	for _, f := range moved {
		saved = append(saved, f.Destination)
	}
	report.Report(fmt.Sprintf("Image captured and saved: %s", strings.Join(saved, ", ")), status.Success)
	return saved
}

// runAttempts drives the bounded retry loop. It returns true once an
// attempt ends with clean stderr.
func (c *Coordinator) runAttempts(ctx context.Context, report status.Func, out status.Output) bool {
	for i := 1; i <= MaxAttempts; i++ {
		res, err := c.client.CaptureImageAndDownload(ctx)
		forward(out, res)

		if err != nil {
			report.Report(fmt.Sprintf("Error: %v", err), status.Error)
			return false
		}

		attempt := Attempt{Index: i, Outcome: Classify(res.Stderr), Stdout: res.Stdout, Stderr: res.Stderr}
		c.logger.Debug("capture attempt",
			slog.Int("attempt", attempt.Index),
			slog.String("outcome", attempt.Outcome.String()),
			slog.Int("exit_code", res.ExitCode))

		switch attempt.Outcome {
		case OutcomeSuccess:
			return true

		case OutcomeFailed:
			report.Report(fmt.Sprintf("Error: %s", strings.TrimSpace(attempt.Stderr)), status.Error)
			return false

		case OutcomeTransient:
			if i == MaxAttempts {
				report.Report(MsgRemediation, status.Error)
				return false
			}
			report.Report(fmt.Sprintf("USB device busy, cleaning up... (attempt %d/%d)", i, MaxAttempts), status.Warning)
			c.mitigate(ctx)
			if err := c.sleep(ctx, RetryDelay); err != nil {
				report.Report(fmt.Sprintf("Error: %v", err), status.Error)
				return false
			}
		}
	}
	return false
}

// nextStamp returns the operation timestamp. A Coordinator never hands out
// the same second twice, so back-to-back captures cannot collide.
func (c *Coordinator) nextStamp() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().Truncate(time.Second)
	if !c.lastStamp.IsZero() && !t.After(c.lastStamp) {
		t = c.lastStamp.Add(time.Second)
	}
	c.lastStamp = t
	return t
}

// freeStamp returns the first stamp at or after t for which no
// destDir/{stamp}{ext} exists for any of extensions. Files written by other
// Coordinators, such as an earlier tetherctl run in the same second, keep
// their names.
func (c *Coordinator) freeStamp(destDir string, t time.Time, extensions []string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	for stampTaken(destDir, t.Format(TimestampLayout), extensions) {
		t = t.Add(time.Second)
	}
	if t.After(c.lastStamp) {
		c.lastStamp = t
	}
	return t.Format(TimestampLayout)
}

func stampTaken(destDir, stamp string, extensions []string) bool {
	for _, ext := range extensions {
		if _, err := os.Lstat(filepath.Join(destDir, stamp+ext)); err == nil {
			return true
		}
	}
	return false
}

// forward sends both streams to out. Empty streams are skipped because an
// empty chunk would clear the display.
func forward(out status.Output, res gphoto.Result) {
	if res.Stdout != "" {
		out.Write(res.Stdout)
	}
	if res.Stderr != "" {
		out.Write(res.Stderr)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
