// Package timelapse runs a fixed number of captures strictly one after the
// other, pausing between shots and stopping at the first shot that ends with
// an error status.
package timelapse

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/tetherctl/internal/status"
)

// DefaultDelay is the pause between shots when none is configured.
const DefaultDelay = time.Second

// MsgInvalidInput is reported when the shot count or delay is unusable.
const MsgInvalidInput = "Invalid input for time lapse."

// Params defines one time-lapse run.
type Params struct {
	Shots int
	Delay time.Duration
}

// Validate reports whether p describes a runnable sequence.
func (p Params) Validate() error {
	if p.Shots < 1 {
		return fmt.Errorf("shots must be at least 1, got %d", p.Shots)
	}
	if p.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %v", p.Delay)
	}
	return nil
}

// CaptureFunc performs one full capture-and-retry cycle, reporting through
// report, and returns the saved paths.
type CaptureFunc func(ctx context.Context, report status.Func) []string

// ShotFunc is notified after every shot with its 1-based index.
type ShotFunc func(shot, total int, saved []string)

// Result summarizes a run.
type Result struct {
	// Shots holds the saved paths of every shot taken, in order.
	Shots [][]string
	// Aborted is true when a shot ended with an error status.
	Aborted bool
	// Interrupted is true when ctx ended the run early.
	Interrupted bool
}

// Sequence runs time-lapse captures.
type Sequence struct {
	capture CaptureFunc
	onShot  ShotFunc
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewSequence creates a Sequence around capture. onShot may be nil.
func NewSequence(capture CaptureFunc, onShot ShotFunc) *Sequence {
	return &Sequence{
		capture: capture,
		onShot:  onShot,
		sleep:   sleepContext,
	}
}

// Run takes p.Shots captures, p.Delay apart. It stops after the first shot
// whose last status message has Error severity.
func (s *Sequence) Run(ctx context.Context, p Params, report status.Func) Result {
	var res Result

	if err := p.Validate(); err != nil {
		report.Report(MsgInvalidInput, status.Error)
		return res
	}

	rec := &status.Recorder{Next: report}
	for shot := 1; shot <= p.Shots; shot++ {
		rec.Reset()
		saved := s.capture(ctx, rec.Func())
		res.Shots = append(res.Shots, saved)

		if s.onShot != nil {
			s.onShot(shot, p.Shots, saved)
		}

		if last, ok := rec.Last(); ok && last.Severity == status.Error {
			res.Aborted = true
			return res
		}

		if shot == p.Shots {
			break
		}
		if err := s.sleep(ctx, p.Delay); err != nil {
			res.Interrupted = true
			report.Report(fmt.Sprintf("Time lapse interrupted after %d of %d shots", shot, p.Shots), status.Warning)
			return res
		}
	}

	return res
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
