package app

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrReported is returned by commands whose failure has already been shown
// to the user as a status message. main exits non-zero without printing it
// again.
var ErrReported = errors.New("operation failed")

var (
	configPath string

	// overrides layers flags and TETHERCTL_* environment variables over
	// the config file.
	overrides = viper.New()

	// RootCmd is the root command for tetherctl
	RootCmd = &cobra.Command{
		Use:   "tetherctl",
		Short: "Tethered camera control through gphoto2",
		Long: `tetherctl drives a USB-tethered DSLR or mirrorless camera through gphoto2:
read and change ISO, shutter speed and aperture, capture images straight into
a folder, list and download the files on the card, and run time lapses.

Captured files are named after the moment the capture started
(YYYYMMDD_HHMMSS plus the file extension). When the camera's USB interface
is held by another process, tetherctl kills the usual culprits, resets the
port and tries again, up to 3 times.

Configuration lives in $XDG_CONFIG_HOME/tetherctl/config.yaml and is created
with defaults on first run. Every path setting can be overridden by a flag
or a TETHERCTL_* environment variable.`,
		Example: `  # Check the camera is visible
  tetherctl detect

  # Show the current exposure settings
  tetherctl get

  # Change them
  tetherctl set iso 400
  tetherctl set shutter 1/250

  # Take a picture and open it
  tetherctl capture --open

  # 20 shots, 5 seconds apart
  tetherctl timelapse --shots 20 --delay 5`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/tetherctl/config.yaml)")
	pf.String("save-path", "", "directory captured files are saved into")
	pf.String("work-dir", "", "directory gphoto2 runs and downloads in (default: current directory)")
	pf.String("gphoto2", "", "gphoto2 executable")
	pf.BoolP("verbose", "v", false, "debug logging on stderr")

	bindOverrides(pf, "save-path", "work-dir", "gphoto2", "verbose")

	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(detectCmd)
	RootCmd.AddCommand(captureCmd)
	RootCmd.AddCommand(timelapseCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(filesCmd)
	RootCmd.AddCommand(configCmd)
	RootCmd.AddCommand(openCmd)
}

// bindOverrides makes the named flags, and TETHERCTL_* variables of the same
// name, visible through overrides under snake_case keys.
func bindOverrides(fs *pflag.FlagSet, names ...string) {
	overrides.SetEnvPrefix("TETHERCTL")
	overrides.AutomaticEnv()
	_ = overrides.BindEnv("config")

	for _, name := range names {
		// Only fails for a nil flag.
		_ = overrides.BindPFlag(strings.ReplaceAll(name, "-", "_"), fs.Lookup(name))
	}
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
