// Package config loads the tetherctl configuration file.
//
// The file is YAML and user-editable. A missing file is created with the
// built-in defaults; an unreadable or invalid file never stops the program,
// the built-in defaults are used instead and the problem is returned as a
// warning.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file inside Dir().
const FileName = "config.yaml"

// Dir returns the tetherctl config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/tetherctl if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tetherctl"), nil
}

// DefaultPath returns Dir()/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// TimelapseConfig holds the defaults for `tetherctl timelapse`.
type TimelapseConfig struct {
	Shots int `yaml:"shots"`
	// DelaySeconds is nil when the file does not set it. An explicit 0
	// means no pause between shots.
	DelaySeconds *float64 `yaml:"delay_seconds"`
}

// Config is the full tetherctl configuration. Values are passed explicitly
// to the operations that need them; a loaded Config is never mutated.
type Config struct {
	// ShutterSpeedMapping maps raw gphoto2 shutter values to display values.
	ShutterSpeedMapping map[string]string `yaml:"shutter_speed_mapping"`
	// FileExtensions are collected after a capture, in order.
	FileExtensions []string `yaml:"file_extensions"`
	// SavePath is the directory captured files are moved into.
	SavePath string `yaml:"save_path"`
	// WorkDir is the directory gphoto2 runs in and downloads to. Empty means
	// the current directory.
	WorkDir string `yaml:"work_dir"`
	// Gphoto2 is the gphoto2 executable.
	Gphoto2 string `yaml:"gphoto2"`
	// AutoOpen opens the captured image in the system viewer.
	AutoOpen  bool            `yaml:"auto_open"`
	Timelapse TimelapseConfig `yaml:"timelapse"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ShutterSpeedMapping: DefaultShutterSpeedMapping(),
		FileExtensions:      DefaultFileExtensions(),
		SavePath:            defaultSavePath,
		Gphoto2:             "gphoto2",
		Timelapse: TimelapseConfig{
			Shots:        defaultShots,
			DelaySeconds: floatPtr(defaultDelaySeconds),
		},
	}
}

// Delay returns the time-lapse delay as a Duration.
func (c *Config) Delay() time.Duration {
	secs := defaultDelaySeconds
	if c.Timelapse.DelaySeconds != nil {
		secs = *c.Timelapse.DelaySeconds
	}
	return time.Duration(secs * float64(time.Second))
}

func floatPtr(v float64) *float64 { return &v }

// Load reads the config at path. It always returns a usable Config. The
// error is a warning: the file was missing and could not be created, or it
// could not be read or parsed and the defaults were used.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := WriteDefault(path); err != nil {
			return Default(), fmt.Errorf("could not create config file: %w", err)
		}
		return Default(), nil
	}

	cfg, err := Parse(path)
	if err != nil {
		return Default(), fmt.Errorf("error loading config file: %w. Using defaults", err)
	}
	return cfg, nil
}

// Parse reads and validates the config at path without any fallback.
// Keys absent from the file take their default values.
func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	def := Default()
	if cfg.ShutterSpeedMapping == nil {
		cfg.ShutterSpeedMapping = def.ShutterSpeedMapping
	}
	if cfg.FileExtensions == nil {
		cfg.FileExtensions = def.FileExtensions
	}
	cfg.FileExtensions = normalizeExtensions(cfg.FileExtensions)
	if len(cfg.FileExtensions) == 0 {
		return nil, fmt.Errorf("file_extensions must list at least one extension")
	}
	if strings.TrimSpace(cfg.SavePath) == "" {
		cfg.SavePath = def.SavePath
	}
	if strings.TrimSpace(cfg.Gphoto2) == "" {
		cfg.Gphoto2 = def.Gphoto2
	}
	if cfg.Timelapse.Shots <= 0 {
		cfg.Timelapse.Shots = def.Timelapse.Shots
	}
	switch d := cfg.Timelapse.DelaySeconds; {
	case d == nil:
		cfg.Timelapse.DelaySeconds = def.Timelapse.DelaySeconds
	case *d < 0:
		return nil, fmt.Errorf("timelapse.delay_seconds must be >= 0, got %.2f", *d)
	}

	return cfg, nil
}

// normalizeExtensions lowercases entries, adds a missing leading dot and
// drops blanks and duplicates while keeping order.
func normalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

const header = `# tetherctl configuration
# Edit this file to customize camera settings.
#
# shutter_speed_mapping: camera values (keys) to display values.
# file_extensions: searched after each capture. Add your camera's RAW format
#   if needed: .nef (Nikon), .cr2 (Canon), .arw (Sony), .raf (Fuji),
#   .orf (Olympus), .rw2 (Panasonic), .dng (Adobe/Leica), .3fr (Hasselblad),
#   .pef (Pentax/Ricoh). Pro/Astro: .tif, .tiff, .fits, .fit

`

// WriteDefault writes the built-in configuration to path, creating parent
// directories as needed.
func WriteDefault(path string) error {
	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write config file %s: %w", path, err)
	}
	return nil
}

// Marshal renders cfg as a commented YAML document.
func Marshal(cfg *Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return append([]byte(header), body...), nil
}
