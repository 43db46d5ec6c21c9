package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tetherctl/internal/output"
	"github.com/blackwell-systems/tetherctl/internal/settings"
	"github.com/blackwell-systems/tetherctl/internal/status"
)

var (
	getCmd = &cobra.Command{
		Use:   "get",
		Short: "Show the camera's ISO, shutter speed and aperture",
		Long: `Read ISO, shutter speed and aperture from the camera.

Shutter speeds are shown through shutter_speed_mapping from the config file,
with the raw camera value in parentheses when they differ. A setting that
cannot be read is shown as "unknown" with the reason below the table.`,
		Args: cobra.NoArgs,
		RunE: runGet,
	}

	setCmd = &cobra.Command{
		Use:   "set",
		Short: "Change ISO, shutter speed or aperture",
		Long: `Change one exposure setting. The value is passed to gphoto2 unchanged, so
anything the camera accepts works; tab completion offers common values.`,
		Example: `  tetherctl set iso 800
  tetherctl set shutter 1/125
  tetherctl set shutter '2"'
  tetherctl set aperture f/8`,
	}
)

func init() {
	for _, p := range settings.Parameters {
		setCmd.AddCommand(newSetParamCmd(p))
	}
}

func newSetParamCmd(p settings.Parameter) *cobra.Command {
	return &cobra.Command{
		Use:       p.Key + " <value>",
		Short:     fmt.Sprintf("Set %s", p.Label),
		Args:      cobra.ExactArgs(1),
		ValidArgs: p.Presets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, p, args[0])
		},
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd)
	defer stop()

	m := settings.NewManager(s.runner, s.cfg.ShutterSpeedMapping)
	snap := inBackground(s, "Reading camera settings", nil, func(status.Func) settings.Settings {
		return m.Read(ctx)
	})

	fmt.Fprint(cmd.OutOrStdout(), output.RenderSettingsTable(snap))
	if len(snap.Errors) > 0 {
		return ErrReported
	}
	return nil
}

func runSet(cmd *cobra.Command, p settings.Parameter, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s value cannot be empty", p.Label)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd)
	defer stop()

	m := settings.NewManager(s.runner, s.cfg.ShutterSpeedMapping)
	rec := &status.Recorder{Next: s.report}
	err = inBackground(s, fmt.Sprintf("Setting %s", p.Label), rec.Func(), func(report status.Func) error {
		_, err := m.Set(ctx, p, value, report)
		return err
	})
	if err != nil {
		return ErrReported
	}
	if last, ok := rec.Last(); ok && last.Severity == status.Error {
		return ErrReported
	}

	// Show what the camera settled on; some bodies round to the nearest step.
	fmt.Fprint(cmd.OutOrStdout(), output.RenderSettingsTable(m.Read(ctx)))
	return nil
}
