package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tetherctl/internal/viewer"
)

var openCmd = &cobra.Command{
	Use:   "open [file]",
	Short: "Open the save folder, or a file, with the default application",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		target := s.cfg.SavePath
		if len(args) == 1 {
			target = args[0]
		}
		if err := viewer.Open(target); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", target)
		return nil
	},
}
