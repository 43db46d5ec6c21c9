package settings

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/blackwell-systems/tetherctl/internal/gphoto"
	"github.com/blackwell-systems/tetherctl/internal/status"
)

// scriptedRunner answers each gphoto2 argument string with a canned result.
type scriptedRunner struct {
	results map[string]gphoto.Result
	errs    map[string]error
	calls   []string
}

func (r *scriptedRunner) Run(ctx context.Context, args ...string) (gphoto.Result, error) {
	key := strings.Join(args, " ")
	r.calls = append(r.calls, key)
	if err := r.errs[key]; err != nil {
		return gphoto.Result{Args: args}, err
	}
	res := r.results[key]
	res.Args = args
	return res, nil
}

func getKey(path string) string {
	return strings.Join(gphoto.GetConfigArgs(path), " ")
}

func TestRead_AllValues(t *testing.T) {
	r := &scriptedRunner{results: map[string]gphoto.Result{
		getKey(gphoto.PathISO):          {Stdout: "Label: ISO Speed\nType: RADIO\nCurrent: 400\nChoice: 0 100\n"},
		getKey(gphoto.PathShutterSpeed): {Stdout: "Label: Shutter Speed\nCurrent: 0.0040s\nChoice: 0 0.0002s\n"},
		getKey(gphoto.PathAperture):     {Stdout: "Label: F-Number\nCurrent: f/5.6\n"},
	}}
	m := NewManager(r, map[string]string{"0.0040s": "1/250"})

	s := m.Read(context.Background())
	if len(s.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", s.Errors)
	}
	if s.ISO != "400" {
		t.Errorf("ISO = %q, want 400", s.ISO)
	}
	if s.Shutter == nil || s.Shutter.Value != "0.0040s" || s.Shutter.Display != "1/250" {
		t.Errorf("Shutter = %+v, want value 0.0040s display 1/250", s.Shutter)
	}
	if s.Aperture != "f/5.6" {
		t.Errorf("Aperture = %q, want f/5.6", s.Aperture)
	}

	want := []string{getKey(gphoto.PathISO), getKey(gphoto.PathShutterSpeed), getKey(gphoto.PathAperture)}
	if strings.Join(r.calls, "|") != strings.Join(want, "|") {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
}

func TestRead_UnmappedShutterFallsBackToRaw(t *testing.T) {
	r := &scriptedRunner{results: map[string]gphoto.Result{
		getKey(gphoto.PathISO):          {Stdout: "Current: 100\n"},
		getKey(gphoto.PathShutterSpeed): {Stdout: "Current: bulb\n"},
		getKey(gphoto.PathAperture):     {Stdout: "Current: f/8\n"},
	}}
	s := NewManager(r, nil).Read(context.Background())

	if s.Shutter == nil || s.Shutter.Display != "bulb" {
		t.Errorf("Shutter = %+v, want display to fall back to raw value", s.Shutter)
	}
}

func TestRead_ErrorsDoNotStopLaterQueries(t *testing.T) {
	r := &scriptedRunner{
		results: map[string]gphoto.Result{
			getKey(gphoto.PathISO):          {Stderr: "*** Error: No camera found. ***\n"},
			getKey(gphoto.PathShutterSpeed): {Stdout: "Label: Shutter Speed\n"},
		},
		errs: map[string]error{
			getKey(gphoto.PathAperture): errors.New("executable file not found"),
		},
	}
	s := NewManager(r, nil).Read(context.Background())

	if len(r.calls) != 3 {
		t.Errorf("expected 3 queries, got %d", len(r.calls))
	}
	if len(s.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(s.Errors), s.Errors)
	}
	if s.Errors[0] != "Error retrieving ISO: *** Error: No camera found. ***" {
		t.Errorf("Errors[0] = %q", s.Errors[0])
	}
	if !strings.HasPrefix(s.Errors[1], "Error retrieving shutter speed: ") {
		t.Errorf("Errors[1] = %q", s.Errors[1])
	}
	if !strings.Contains(s.Errors[2], "executable file not found") {
		t.Errorf("Errors[2] = %q", s.Errors[2])
	}
	if s.ISO != "" || s.Shutter != nil || s.Aperture != "" {
		t.Errorf("no values should be set: %+v", s)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		param   Parameter
		value   string
		stderr  string
		wantMsg string
		wantSev status.Severity
	}{
		{"iso ok", ISO, "800", "", "ISO set to 800", status.Success},
		{"shutter ok", ShutterSpeed, "0.0040s", "", "Shutter Speed set to 0.0040s", status.Success},
		{"aperture ok", Aperture, "f/5.6", "", "Aperture set to f/5.6", status.Success},
		{"iso error", ISO, "99999", "*** Error: bad value ***\n", "Error setting ISO: *** Error: bad value ***", status.Error},
		{"aperture error", Aperture, "f/0", "invalid\n", "Error setting aperture: invalid", status.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := strings.Join(gphoto.SetConfigArgs(tt.param.Path, tt.value), " ")
			r := &scriptedRunner{results: map[string]gphoto.Result{key: {Stderr: tt.stderr}}}
			rec := &status.Recorder{}

			if _, err := NewManager(r, nil).Set(context.Background(), tt.param, tt.value, rec.Func()); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			last, ok := rec.Last()
			if !ok {
				t.Fatal("no status reported")
			}
			if last.Message != tt.wantMsg || last.Severity != tt.wantSev {
				t.Errorf("status = %+v, want %q/%v", last, tt.wantMsg, tt.wantSev)
			}
			if len(r.calls) != 1 || r.calls[0] != key {
				t.Errorf("calls = %v, want [%s]", r.calls, key)
			}
		})
	}
}

func TestSet_RunnerError(t *testing.T) {
	key := strings.Join(gphoto.SetConfigArgs(gphoto.PathISO, "400"), " ")
	r := &scriptedRunner{errs: map[string]error{key: errors.New("boom")}}
	rec := &status.Recorder{}

	if _, err := NewManager(r, nil).Set(context.Background(), ISO, "400", rec.Func()); err == nil {
		t.Error("expected error")
	}
	if last, _ := rec.Last(); last.Severity != status.Error {
		t.Errorf("status = %+v, want error", last)
	}
}

func TestLookup(t *testing.T) {
	for _, key := range []string{"iso", "ISO", " shutter ", "aperture"} {
		if _, ok := Lookup(key); !ok {
			t.Errorf("Lookup(%q) should succeed", key)
		}
	}
	if _, ok := Lookup("focus"); ok {
		t.Error("Lookup(\"focus\") should fail")
	}
}

func TestDisplayShutter(t *testing.T) {
	mapping := map[string]string{"0.0040s": "1/250", "1.0000s": `1"`}
	if got := DisplayShutter("0.0040s", mapping); got != "1/250" {
		t.Errorf("got %q, want 1/250", got)
	}
	if got := DisplayShutter("1.0000s", mapping); got != `1"` {
		t.Errorf("got %q", got)
	}
	if got := DisplayShutter("0.0123s", mapping); got != "0.0123s" {
		t.Errorf("got %q, want raw fallback", got)
	}
}
