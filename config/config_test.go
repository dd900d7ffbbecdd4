package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  session_secret: "s3cret"

data:
  dir: "testdata"
  years: [2022, 2023]
  forecast_year: 2024
  reference_value: 7.5

logging:
  console_level: "DEBUG"
  db_level: "WARN"
  db_attrs_format: "TEXT"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	t.Run("Server", func(t *testing.T) {
		if c.Server.GetPort() != 9090 {
			t.Errorf("expected port 9090, got %d", c.Server.GetPort())
		}
		if c.Server.SessionSecret != "s3cret" {
			t.Errorf("expected session secret s3cret, got %q", c.Server.SessionSecret)
		}
	})

	t.Run("Data", func(t *testing.T) {
		if c.Data.Dir != "testdata" {
			t.Errorf("expected data dir testdata, got %q", c.Data.Dir)
		}
		years := c.Data.GetYears()
		if len(years) != 2 || years[0] != 2022 || years[1] != 2023 {
			t.Errorf("expected years [2022 2023], got %v", years)
		}
		if c.Data.GetForecastYear() != 2024 {
			t.Errorf("expected forecast year 2024, got %d", c.Data.GetForecastYear())
		}
		if c.Data.GetReferenceValue() != 7.5 {
			t.Errorf("expected reference value 7.5, got %v", c.Data.GetReferenceValue())
		}
	})

	t.Run("Logging", func(t *testing.T) {
		if c.Logging.GetConsoleLevel() != slog.LevelDebug {
			t.Errorf("expected console level DEBUG, got %v", c.Logging.GetConsoleLevel())
		}
		if c.Logging.GetDbLevel() != slog.LevelWarn {
			t.Errorf("expected db level WARN, got %v", c.Logging.GetDbLevel())
		}
		if c.Logging.GetDbAttrsFormat() != "TEXT" {
			t.Errorf("expected attr format TEXT, got %v", c.Logging.GetDbAttrsFormat())
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  dir: "data"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if c.Server.GetPort() != 8080 {
		t.Errorf("expected default port 8080, got %d", c.Server.GetPort())
	}
	years := c.Data.GetYears()
	if len(years) != 4 || years[0] != 2021 || years[3] != 2024 {
		t.Errorf("expected default years 2021-2024, got %v", years)
	}
	if c.Data.GetForecastYear() != 2025 {
		t.Errorf("expected default forecast year 2025, got %d", c.Data.GetForecastYear())
	}
	if c.Data.GetReferenceValue() != 6.72 {
		t.Errorf("expected default reference value 6.72, got %v", c.Data.GetReferenceValue())
	}
	if c.Logging.GetConsoleLevel() != slog.LevelInfo {
		t.Errorf("expected default console level INFO, got %v", c.Logging.GetConsoleLevel())
	}
	if c.Logging.GetDbMaxEntries() != 10000 {
		t.Errorf("expected default max entries 10000, got %d", c.Logging.GetDbMaxEntries())
	}
	if c.Database.GetPath() == "" {
		t.Errorf("expected a default database path")
	}
}
