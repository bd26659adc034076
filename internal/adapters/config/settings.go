// Package config loads the optional settings file and the TOML batch
// configuration.
package config

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SettingsFilename is looked up in the working directory.
const SettingsFilename = "spvbuild.yaml"

// Settings holds optional per-project defaults. The zero value is valid
// and means "use the built-in defaults".
type Settings struct {
	// CacheDir overrides the OS-appropriate cache root.
	CacheDir string `yaml:"cache-dir"`

	// Backend is the default backend dependency descriptor.
	Backend string `yaml:"backend"`

	// Toolchain is the default host toolchain channel.
	Toolchain string `yaml:"toolchain"`

	// ShaderTarget is the default output format identifier.
	ShaderTarget string `yaml:"shader-target"`
}

// LoadSettings reads the settings file at path. A missing file is not an
// error; it yields the zero value.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, zerr.With(zerr.Wrap(err, "failed to read settings file"), "path", path)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, zerr.With(zerr.Wrap(err, "failed to parse settings file"), "path", path)
	}
	return s, nil
}
