// Package settings reads and writes the exposure parameters of the camera
// (ISO, shutter speed, aperture) through gphoto2's config interface.
package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackwell-systems/tetherctl/internal/gphoto"
	"github.com/blackwell-systems/tetherctl/internal/status"
)

// Parameter is one camera setting addressable by gphoto2.
type Parameter struct {
	// Key is the short name used on the command line.
	Key string
	// Label is used in status messages ("Error setting <label>").
	Label string
	// Title is used in success messages ("<Title> set to 400").
	Title string
	// Path is the gphoto2 config path.
	Path string
	// Presets are common values offered for completion. Any value the
	// camera accepts may be set.
	Presets []string
}

var (
	ISO = Parameter{
		Key: "iso", Label: "ISO", Title: "ISO", Path: gphoto.PathISO,
		Presets: []string{"100", "200", "400", "800", "1600", "3200", "6400"},
	}
	ShutterSpeed = Parameter{
		Key: "shutter", Label: "shutter speed", Title: "Shutter Speed", Path: gphoto.PathShutterSpeed,
		Presets: []string{
			`30"`, `20"`, `15"`, `10"`, `8"`, `6"`, `4"`, `3"`, `2"`, `1.5"`, `1"`, "1/2", "1/3",
			"1/4", "1/6", "1/8", "1/15", "1/30", "1/60", "1/90", "1/125", "1/250", "1/500", "1/1000", "1/2000", "1/4000",
		},
	}
	Aperture = Parameter{
		Key: "aperture", Label: "aperture", Title: "Aperture", Path: gphoto.PathAperture,
		Presets: []string{"f/1.4", "f/1.8", "f/2.8", "f/3.5", "f/4", "f/4.8", "f/5.6", "f/6.7", "f/8", "f/11", "f/13", "f/16", "f/22"},
	}
)

// Parameters lists every supported setting in display order.
var Parameters = []Parameter{ISO, ShutterSpeed, Aperture}

// Lookup finds a Parameter by its Key.
func Lookup(key string) (Parameter, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, p := range Parameters {
		if p.Key == key {
			return p, true
		}
	}
	return Parameter{}, false
}

// Shutter holds the raw shutter-speed value and its display form.
type Shutter struct {
	Value   string
	Display string
}

// Settings is a snapshot of the camera's exposure parameters. Empty fields
// could not be read; the reason is in Errors.
type Settings struct {
	ISO      string
	Shutter  *Shutter
	Aperture string
	Errors   []string
}

// DisplayShutter maps a raw shutter-speed value to its display form using
// mapping, falling back to the raw value.
func DisplayShutter(value string, mapping map[string]string) string {
	if display, ok := mapping[value]; ok {
		return display
	}
	return value
}

// Manager reads and writes camera settings.
type Manager struct {
	client  *gphoto.Client
	mapping map[string]string
}

// NewManager creates a Manager. mapping translates raw shutter-speed values
// for display; it may be nil.
func NewManager(runner gphoto.Runner, mapping map[string]string) *Manager {
	return &Manager{
		client:  gphoto.NewClient(runner),
		mapping: mapping,
	}
}

// Read queries ISO, shutter speed and aperture, in that order. Failures
// never stop the remaining queries; each becomes an entry in Errors.
func (m *Manager) Read(ctx context.Context) Settings {
	var s Settings

	if v, ok := m.readOne(ctx, ISO, &s); ok {
		s.ISO = v
	}
	if v, ok := m.readOne(ctx, ShutterSpeed, &s); ok {
		s.Shutter = &Shutter{Value: v, Display: DisplayShutter(v, m.mapping)}
	}
	if v, ok := m.readOne(ctx, Aperture, &s); ok {
		s.Aperture = v
	}

	return s
}

func (m *Manager) readOne(ctx context.Context, p Parameter, s *Settings) (string, bool) {
	res, err := m.client.GetConfig(ctx, p.Path)
	if err != nil {
		s.Errors = append(s.Errors, fmt.Sprintf("Error retrieving %s: %v", p.Label, err))
		return "", false
	}
	if res.Failed() {
		s.Errors = append(s.Errors, fmt.Sprintf("Error retrieving %s: %s", p.Label, strings.TrimSpace(res.Stderr)))
		return "", false
	}

	value, ok := gphoto.ParseCurrent(res.Stdout)
	if !ok {
		s.Errors = append(s.Errors, fmt.Sprintf("Error retrieving %s: no \"Current:\" line in gphoto2 output", p.Label))
		return "", false
	}
	return value, true
}

// Set writes value to p and reports the outcome through report. The raw
// gphoto2 result is returned for callers that display it.
func (m *Manager) Set(ctx context.Context, p Parameter, value string, report status.Func) (gphoto.Result, error) {
	res, err := m.client.SetConfig(ctx, p.Path, value)
	if err != nil {
		report.Report(fmt.Sprintf("Error setting %s: %v", p.Label, err), status.Error)
		return res, err
	}

	if res.Failed() {
		report.Report(fmt.Sprintf("Error setting %s: %s", p.Label, strings.TrimSpace(res.Stderr)), status.Error)
	} else {
		report.Report(fmt.Sprintf("%s set to %s", p.Title, value), status.Success)
	}
	return res, nil
}
