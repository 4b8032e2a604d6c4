package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/IkeLewis/scsh/log"
	"github.com/IkeLewis/scsh/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config.yaml"

// configFile holds the optional startup configuration read from
// ~/.config/scsh/config.yaml. Missing files and unknown keys are ignored;
// a malformed file is reported but never fatal.
type configFile struct {
	Log struct {
		Level      string `yaml:"level"`
		Format     string `yaml:"format"`
		TimeLayout string `yaml:"time_layout"`
		Caller     bool   `yaml:"caller"`
	} `yaml:"log"`
	Paths []string `yaml:"paths"`
}

// configPath returns the absolute path of the startup configuration file.
func configPath() string {
	return filepath.Join(pkg.ConfigDir(), baseConfig)
}

// loadConfigFile reads and decodes the startup configuration file at path.
func loadConfigFile(path string) configFile {
	var cfg configFile

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Warn("ignoring malformed config file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)

		return configFile{}
	}

	return cfg
}
