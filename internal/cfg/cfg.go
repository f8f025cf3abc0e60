// Package cfg provides the configuration types used by cardinal, along
// with functionality for reading and writing profile files.
package cfg

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cardinal/internal/x11"

	"gopkg.in/yaml.v2"
)

//go:embed default.yaml
var defaultConfig []byte

// Config is the top-level configuration for cardinal.
type Config struct {
	General General `yaml:"general"`
	Watch   Watch   `yaml:"watch"`
	Tray    Tray    `yaml:"tray"`
	Keys    Keys    `yaml:"keybinds"`
}

// General holds settings shared by all subcommands.
type General struct {
	LogLevel string `yaml:"log_level"`
	LogPath  string `yaml:"log_file"`
}

// Watch selects which event groups the watch view displays. Motion events
// are off by default since they drown out everything else.
type Watch struct {
	ShowMotion   bool `yaml:"show_motion"`
	ShowExpose   bool `yaml:"show_expose"`
	ShowProperty bool `yaml:"show_property"`
}

// Tray configures the systray host.
type Tray struct {
	// ActivateOnDock sends an XEmbed window-activate notification right
	// after a successful dock.
	ActivateOnDock bool `yaml:"activate_on_dock"`
}

// Keys holds the X key chords cardinal reacts to.
type Keys struct {
	// Marker is highlighted in the watch view whenever it is seen on the
	// wire, which makes it easy to line up an interaction with its events.
	Marker x11.Key `yaml:"marker"`
}

// GetPath returns the path to the user's configuration folder.
func GetPath() (string, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cfgDir = filepath.Join(home, ".config")
	}
	return filepath.Join(cfgDir, "cardinal"), nil
}

// ProfilePath returns the path of the named profile's file.
func ProfilePath(name string) (string, error) {
	dir, err := GetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".yaml"), nil
}

// GetProfile returns the configuration of a specific profile. A missing
// profile file yields the embedded defaults.
func GetProfile(name string) (Config, error) {
	path, err := ProfilePath(name)
	if err != nil {
		return Config{}, err
	}
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		contents = defaultConfig
	} else if err != nil {
		return Config{}, err
	}
	return Parse(contents)
}

// Parse decodes a configuration document.
func Parse(contents []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(contents, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// MakeProfile makes a new profile with the default configuration.
func MakeProfile(name string) error {
	dir, err := GetPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name+".yaml"), defaultConfig, 0644)
}
