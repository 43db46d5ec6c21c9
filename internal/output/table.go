package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/tetherctl/internal/gphoto"
	"github.com/blackwell-systems/tetherctl/internal/settings"
)

// RenderCameraTable renders the cameras found by auto-detection.
func RenderCameraTable(cameras []gphoto.Camera) string {
	if len(cameras) == 0 {
		return "No cameras detected.\n"
	}

	modelWidth := len("Model")
	for _, c := range cameras {
		if len(c.Model) > modelWidth {
			modelWidth = len(c.Model)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s  %s\n", modelWidth, "Model", "Port"))
	sb.WriteString(strings.Repeat("─", modelWidth+2+maxPortWidth(cameras)))
	sb.WriteString("\n")
	for _, c := range cameras {
		sb.WriteString(fmt.Sprintf("%-*s  %s\n", modelWidth, c.Model, c.Port))
	}
	return sb.String()
}

func maxPortWidth(cameras []gphoto.Camera) int {
	w := len("Port")
	for _, c := range cameras {
		if len(c.Port) > w {
			w = len(c.Port)
		}
	}
	return w
}

// RenderSettingsTable renders a settings snapshot. Values that could not be
// read show as "unknown"; the reasons are listed below the table.
func RenderSettingsTable(s settings.Settings) string {
	shutter := ""
	if s.Shutter != nil {
		shutter = s.Shutter.Display
		if s.Shutter.Display != s.Shutter.Value {
			shutter = fmt.Sprintf("%s (%s)", s.Shutter.Display, s.Shutter.Value)
		}
	}

	rows := [][2]string{
		{settings.ISO.Title, orUnknown(s.ISO)},
		{settings.ShutterSpeed.Title, orUnknown(shutter)},
		{settings.Aperture.Title, orUnknown(s.Aperture)},
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-15s %s\n", "Setting", "Value"))
	sb.WriteString(strings.Repeat("─", 32))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-15s %s\n", r[0], r[1]))
	}
	if len(s.Errors) > 0 {
		sb.WriteString("\n")
		for _, e := range s.Errors {
			sb.WriteString(e)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

// RenderTimelapseSummary renders the closing line of a time-lapse run.
func RenderTimelapseSummary(taken, planned, files int) string {
	return fmt.Sprintf("Time lapse: %d of %d shots, %d files saved\n", taken, planned, files)
}
