package capture

import (
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// BlockingProcesses are known to hold the camera's USB interface: a stray
// gphoto2 and macOS's PTPCamera daemon.
var BlockingProcesses = []string{"gphoto2", "PTPCamera"}

const (
	// KillTimeout bounds each killall invocation.
	KillTimeout = 2 * time.Second
	// ResetTimeout bounds the `gphoto2 --reset` invocation.
	ResetTimeout = 5 * time.Second
)

// Killer terminates processes by name.
type Killer interface {
	Kill(ctx context.Context, name string) (bool, error)
}

// Killall terminates processes with the killall(1) utility.
type Killall struct{}

// Kill runs `killall <name>`. It reports true when killall found a process.
func (Killall) Kill(ctx context.Context, name string) (bool, error) {
	cmd := exec.CommandContext(ctx, "killall", name)
	if err := cmd.Run(); err != nil {
		return false, err
	}
	return true, nil
}

// mitigate frees the USB device before a retry. Every step is best-effort:
// failures are logged and otherwise ignored.
func (c *Coordinator) mitigate(ctx context.Context) {
	var killed []string
	for _, name := range BlockingProcesses {
		killCtx, cancel := context.WithTimeout(ctx, KillTimeout)
		ok, err := c.killer.Kill(killCtx, name)
		cancel()
		if ok {
			killed = append(killed, name)
		} else {
			c.logger.Debug("kill skipped", slog.String("process", name), slog.Any("err", err))
		}
	}

	resetCtx, cancel := context.WithTimeout(ctx, ResetTimeout)
	res, err := c.client.Reset(resetCtx)
	cancel()

	c.logger.Debug("usb mitigation finished",
		slog.Any("killed", killed),
		slog.String("reset_stderr", res.Stderr),
		slog.Any("reset_err", err))
}
