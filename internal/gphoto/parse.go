package gphoto

import (
	"strings"
)

const currentMarker = "Current: "

// ParseCurrent extracts the value of the `Current: <value>` line printed by
// `gphoto2 --get-config`. The value runs from the marker to the next line
// break and is trimmed. ok is false when the marker is absent.
//
// Example input:
//
//	Label: ISO Speed
//	Readonly: 0
//	Type: RADIO
//	Current: 400
//	Choice: 0 100
func ParseCurrent(output string) (value string, ok bool) {
	idx := strings.Index(output, currentMarker)
	if idx < 0 {
		return "", false
	}
	rest := output[idx+len(currentMarker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest), true
}

// ParseAutoDetect parses the table printed by `gphoto2 --auto-detect`.
// Example input:
//
//	Model                          Port
//	----------------------------------------------------------
//	Nikon DSC D750                 usb:001,005
//	Canon EOS 5D Mark IV           usb:002,004
//
// The port is the last whitespace-separated field; the model is everything
// before it. Lines before the dashed separator are ignored.
func ParseAutoDetect(output string) []Camera {
	var cameras []Camera
	lines := strings.Split(output, "\n")

	inTable := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !inTable {
			if strings.HasPrefix(trimmed, "---") {
				inTable = true
			}
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		port := fields[len(fields)-1]
		model := strings.TrimSpace(strings.TrimSuffix(trimmed, port))
		cameras = append(cameras, Camera{Model: model, Port: port})
	}

	return cameras
}

// CountListedFiles counts the file entries in `gphoto2 --list-files` output.
// File lines start with '#', e.g. "#1     DSC_0001.JPG    rd  6012 KB image/jpeg".
func CountListedFiles(output string) int {
	count := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			count++
		}
	}
	return count
}
