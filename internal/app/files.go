package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tetherctl/internal/camera"
	"github.com/blackwell-systems/tetherctl/internal/gphoto"
	"github.com/blackwell-systems/tetherctl/internal/status"
)

var (
	filesCmd = &cobra.Command{
		Use:   "files",
		Short: "List or download the files stored on the camera",
	}

	filesListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the files on the camera",
		Args:  cobra.NoArgs,
		RunE:  runFilesList,
	}

	filesDownloadCmd = &cobra.Command{
		Use:   "download",
		Short: "Download every file on the camera",
		Long: `Download every file on the camera into the gphoto2 working directory
(--work-dir, default: current directory). Files keep their camera names.`,
		Args: cobra.NoArgs,
		RunE: runFilesDownload,
	}
)

func init() {
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesDownloadCmd)
}

func runFilesList(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd)
	defer stop()

	ops := camera.New(s.runner)
	var res gphoto.Result
	err = inBackground(s, "Listing files", s.report, func(report status.Func) error {
		var err error
		res, err = ops.ListFiles(ctx, report, s.out)
		return err
	})
	if err != nil || res.Failed() {
		return ErrReported
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d files on camera\n", gphoto.CountListedFiles(res.Stdout))
	return nil
}

func runFilesDownload(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd)
	defer stop()

	ops := camera.New(s.runner)
	var res gphoto.Result
	err = inBackground(s, "Downloading files", s.report, func(report status.Func) error {
		var err error
		res, err = ops.DownloadAll(ctx, report, s.out)
		return err
	})
	if err != nil || res.Failed() {
		return ErrReported
	}
	return nil
}
