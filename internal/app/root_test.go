package app

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	if RootCmd.Use != "tetherctl" {
		t.Errorf("expected Use to be 'tetherctl', got '%s'", RootCmd.Use)
	}

	if RootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if RootCmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	expected := []string{"detect", "capture", "timelapse", "get", "set", "files", "config", "open"}

	found := make(map[string]bool)
	for _, cmd := range RootCmd.Commands() {
		found[cmd.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected command '%s' to be registered", name)
		}
	}
}

func TestRootCommandHasPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "save-path", "work-dir", "gphoto2", "verbose"} {
		flag := RootCmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Errorf("expected --%s flag to be registered", name)
			continue
		}
		if flag.Usage == "" {
			t.Errorf("expected --%s flag to have usage text", name)
		}
	}
}

func TestSetCommandHasParameters(t *testing.T) {
	found := make(map[string]bool)
	for _, cmd := range setCmd.Commands() {
		found[cmd.Name()] = true
		if len(cmd.ValidArgs) == 0 {
			t.Errorf("set %s should offer completion values", cmd.Name())
		}
	}

	for _, name := range []string{"iso", "shutter", "aperture"} {
		if !found[name] {
			t.Errorf("expected 'set %s' to be registered", name)
		}
	}
}

func TestSubcommandGroups(t *testing.T) {
	tests := []struct {
		parent   string
		children []string
	}{
		{"files", []string{"list", "download"}},
		{"config", []string{"init", "show", "path"}},
	}

	for _, tt := range tests {
		t.Run(tt.parent, func(t *testing.T) {
			parent, _, err := RootCmd.Find([]string{tt.parent})
			if err != nil {
				t.Fatalf("Find(%q) error: %v", tt.parent, err)
			}
			for _, child := range tt.children {
				if cmd, _, err := parent.Find([]string{child}); err != nil || cmd.Name() != child {
					t.Errorf("expected '%s %s' to be registered", tt.parent, child)
				}
			}
		})
	}
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		cmd   string
		flags []string
	}{
		{"capture", []string{"open"}},
		{"timelapse", []string{"shots", "delay"}},
		{"detect", []string{"raw"}},
	}

	for _, tt := range tests {
		cmd, _, err := RootCmd.Find([]string{tt.cmd})
		if err != nil {
			t.Fatalf("Find(%q) error: %v", tt.cmd, err)
		}
		for _, name := range tt.flags {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s --%s flag to be registered", tt.cmd, name)
			}
		}
	}
}
