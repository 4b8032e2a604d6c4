package cli

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeScript(t, `
log:
  level: debug
  format: json
paths:
  - /opt/scsh/modules
`)

		cfg := loadConfigFile(path)

		if cfg.Log.Level != "debug" {
			t.Errorf("level = %q, want %q", cfg.Log.Level, "debug")
		}

		if cfg.Log.Format != "json" {
			t.Errorf("format = %q, want %q", cfg.Log.Format, "json")
		}

		if len(cfg.Paths) != 1 || cfg.Paths[0] != "/opt/scsh/modules" {
			t.Errorf("paths = %v, want [/opt/scsh/modules]", cfg.Paths)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := loadConfigFile(filepath.Join(t.TempDir(), baseConfig))

		if cfg.Log.Level != "" || len(cfg.Paths) != 0 {
			t.Errorf("cfg = %+v, want zero value", cfg)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeScript(t, "{ not yaml\n")

		cfg := loadConfigFile(path)

		if cfg.Log.Level != "" || len(cfg.Paths) != 0 {
			t.Errorf("cfg = %+v, want zero value", cfg)
		}
	})
}
