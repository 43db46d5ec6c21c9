// Package camera implements the one-shot gphoto2 operations that do not
// need retry handling: detecting cameras, listing files and downloading
// everything on the card.
package camera

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackwell-systems/tetherctl/internal/gphoto"
	"github.com/blackwell-systems/tetherctl/internal/status"
)

// MsgDownloaded is reported after a clean --get-all-files run.
const MsgDownloaded = "all files downloaded"

// Ops runs camera operations through a gphoto2 Runner.
type Ops struct {
	client *gphoto.Client
}

// New creates Ops backed by runner.
func New(runner gphoto.Runner) *Ops {
	return &Ops{client: gphoto.NewClient(runner)}
}

// Detect lists connected cameras. Both streams go to out and the trimmed
// stdout becomes the status message. The output display is not cleared
// first, so detection results accumulate.
func (o *Ops) Detect(ctx context.Context, report status.Func, out status.Output) ([]gphoto.Camera, error) {
	res, err := o.client.AutoDetect(ctx)
	forward(out, res)
	if err != nil {
		report.Report(fmt.Sprintf("Error: %v", err), status.Error)
		return nil, err
	}

	report.Report(strings.TrimSpace(res.Stdout), status.Info)
	return gphoto.ParseAutoDetect(res.Stdout), nil
}

// ListFiles lists the files stored on the camera.
func (o *Ops) ListFiles(ctx context.Context, report status.Func, out status.Output) (gphoto.Result, error) {
	out.Clear()
	res, err := o.client.ListFiles(ctx)
	forward(out, res)
	if err != nil {
		report.Report(fmt.Sprintf("Error: %v", err), status.Error)
		return res, err
	}

	if res.Failed() {
		report.Report(fmt.Sprintf("Error: %s", strings.TrimSpace(res.Stderr)), status.Error)
	}
	return res, nil
}

// DownloadAll downloads every file on the camera into the runner's working
// directory.
func (o *Ops) DownloadAll(ctx context.Context, report status.Func, out status.Output) (gphoto.Result, error) {
	out.Clear()
	res, err := o.client.GetAllFiles(ctx)
	forward(out, res)
	if err != nil {
		report.Report(fmt.Sprintf("Error: %v", err), status.Error)
		return res, err
	}

	if res.Failed() {
		report.Report(fmt.Sprintf("Error: %s", strings.TrimSpace(res.Stderr)), status.Error)
	} else {
		report.Report(MsgDownloaded, status.Success)
	}
	return res, nil
}

func forward(out status.Output, res gphoto.Result) {
	if res.Stdout != "" {
		out.Write(res.Stdout)
	}
	if res.Stderr != "" {
		out.Write(res.Stderr)
	}
}
