package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tetherctl/internal/capture"
	"github.com/blackwell-systems/tetherctl/internal/status"
	"github.com/blackwell-systems/tetherctl/internal/viewer"
)

var (
	captureOpen bool

	captureCmd = &cobra.Command{
		Use:   "capture",
		Short: "Take a picture and save it",
		Long: `Trigger the camera, download the result and move it into the save folder.

One file is saved per configured extension (file_extensions in the config),
named after the moment the capture started: 20261017_143005.jpg,
20261017_143005.nef and so on.

If gphoto2 cannot claim the camera's USB interface, tetherctl kills the
processes known to hold it, resets the port and retries, up to 3 attempts
3 seconds apart.`,
		Example: `  tetherctl capture
  tetherctl capture --open
  tetherctl capture --save-path ~/Pictures/session1`,
		Args: cobra.NoArgs,
		RunE: runCapture,
	}
)

func init() {
	captureCmd.Flags().BoolVar(&captureOpen, "open", false, "open the captured image in the default viewer (default from auto_open)")
}

func runCapture(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd)
	defer stop()

	if !ensureSavePath(s.cfg.SavePath, s.report) {
		return ErrReported
	}

	coord := capture.New(s.runner, s.runner.WorkDir(), capture.WithLogger(s.logger))
	saved := inBackground(s, "Capturing", s.report, func(report status.Func) []string {
		return coord.Capture(ctx, s.cfg.SavePath, s.cfg.FileExtensions, report, s.out)
	})
	if len(saved) == 0 {
		return ErrReported
	}

	autoOpen := s.cfg.AutoOpen
	if cmd.Flags().Changed("open") {
		autoOpen = captureOpen
	}
	if autoOpen {
		openPreferred(saved, s.report)
	}
	return nil
}

// openPreferred shows the JPEG of a capture, or its first file.
func openPreferred(saved []string, report status.Func) {
	path, ok := viewer.Preferred(saved)
	if !ok {
		return
	}
	if err := viewer.Open(path); err != nil {
		report.Report(fmt.Sprintf("Warning: %v", err), status.Warning)
	}
}
