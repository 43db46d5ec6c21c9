package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tetherctl/internal/camera"
	"github.com/blackwell-systems/tetherctl/internal/gphoto"
	"github.com/blackwell-systems/tetherctl/internal/output"
	"github.com/blackwell-systems/tetherctl/internal/status"
)

var (
	detectRaw bool

	detectCmd = &cobra.Command{
		Use:   "detect",
		Short: "List connected cameras",
		Long: `Run gphoto2 --auto-detect and list the cameras it finds with their ports.

Use --raw to see gphoto2's own output instead of the parsed table.`,
		Example: `  tetherctl detect
  tetherctl detect --raw`,
		Args: cobra.NoArgs,
		RunE: runDetect,
	}
)

func init() {
	detectCmd.Flags().BoolVar(&detectRaw, "raw", false, "print gphoto2's output as is")
}

func runDetect(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd)
	defer stop()

	report := s.report
	if !detectRaw {
		report = problemsOnly(s.report)
	}

	// Only --raw shows gphoto2's own text.
	out := status.Output(nil)
	if detectRaw {
		out = s.out
	}

	ops := camera.New(s.runner)
	var cameras []gphoto.Camera
	err = inBackground(s, "Detecting cameras", report, func(report status.Func) error {
		var err error
		cameras, err = ops.Detect(ctx, report, out)
		return err
	})
	if err != nil {
		return ErrReported
	}

	if !detectRaw {
		fmt.Fprint(cmd.OutOrStdout(), output.RenderCameraTable(cameras))
	}
	return nil
}

// problemsOnly passes warnings and errors through and drops the rest.
func problemsOnly(next status.Func) status.Func {
	return func(message string, sev status.Severity) {
		if sev == status.Warning || sev == status.Error {
			next.Report(message, sev)
		}
	}
}
