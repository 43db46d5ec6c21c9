package gphoto

// Config paths understood by gphoto2 --get-config / --set-config.
const (
	PathISO          = "/main/imgsettings/iso"
	PathShutterSpeed = "/main/capturesettings/shutterspeed"
	PathAperture     = "/main/capturesettings/f-number"
)

// Result holds the captured text of one gphoto2 invocation.
type Result struct {
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
}

// Failed reports whether gphoto2 wrote anything to stderr. Exit codes are
// ignored; stderr is the only failure signal.
func (r Result) Failed() bool {
	return r.Stderr != ""
}

// Camera is one row of `gphoto2 --auto-detect` output.
type Camera struct {
	Model string
	Port  string
}
