package cfg_test

import (
	"testing"

	"cardinal/internal/cfg"
	"cardinal/internal/x11"
)

func TestDefaultProfileParses(t *testing.T) {
	conf, err := cfg.GetProfile("this-profile-should-not-exist")
	if err != nil {
		t.Fatal(err)
	}
	if conf.General.LogLevel != "info" {
		t.Errorf("log_level = %q, want info", conf.General.LogLevel)
	}
	if conf.Watch.ShowMotion {
		t.Error("show_motion should default to false")
	}
	if !conf.Tray.ActivateOnDock {
		t.Error("activate_on_dock should default to true")
	}
	want := x11.Key{Code: x11.KeyF12, Mod: x11.ModCtrl | x11.ModShift}
	if conf.Keys.Marker != want {
		t.Errorf("marker = %+v, want %+v", conf.Keys.Marker, want)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := cfg.Parse([]byte("general:\n  log_levle: info\n"))
	if err == nil {
		t.Error("expected error for misspelled field")
	}
}

func TestParseKeybind(t *testing.T) {
	conf, err := cfg.Parse([]byte("keybinds:\n  marker: alt-q\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := x11.Key{Code: x11.KeyQ, Mod: x11.Mod1}
	if conf.Keys.Marker != want {
		t.Errorf("marker = %+v, want %+v", conf.Keys.Marker, want)
	}
}
