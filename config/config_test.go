package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// inDir runs the test from a fresh temp directory holding the given files
func inDir(t *testing.T, files map[string]string) {
	t.Helper()
	origConfig := Config
	origDir, _ := os.Getwd()
	t.Cleanup(func() {
		Config = origConfig
		_ = os.Chdir(origDir)
	})

	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
}

// clearEnv unsets key for the duration of the test
func clearEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}

func TestLoadAppConfig(t *testing.T) {
	clearEnv(t, "MTA_API_KEY")
	clearEnv(t, "SUBWAY_MAPPER_PORT")
	inDir(t, map[string]string{"config.yml": `
server:
  port: 8080
gtfsrt:
  line: NQRW
  apiKey: secret
gtfs:
  staticPath: /srv/gtfs.zip
metrics:
  enabled: true
`})

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.Server.Port != 8080 {
		t.Errorf("port = %d", Config.Server.Port)
	}
	if Config.GTFSRT.Line != "NQRW" || Config.GTFSRT.APIKey != "secret" {
		t.Errorf("gtfsrt = %+v", Config.GTFSRT)
	}
	if Config.GTFS.StaticPath != "/srv/gtfs.zip" {
		t.Errorf("staticPath = %q", Config.GTFS.StaticPath)
	}
	// unset values take defaults
	if Config.Cache.Path != DefaultCachePath || Config.GTFSRT.TimeoutMS != DefaultTimeoutMS {
		t.Errorf("defaults not applied: %+v", Config)
	}
	if !Config.Metrics.Enabled {
		t.Error("metrics should be enabled")
	}
}

func TestLoadAppConfig_NestedPath(t *testing.T) {
	clearEnv(t, "SUBWAY_MAPPER_PORT")
	inDir(t, map[string]string{"config/config.yml": "gtfsrt:\n  line: L\n"})

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.GTFSRT.Line != "L" || Config.Server.Port != DefaultPort {
		t.Errorf("unexpected config %+v", Config)
	}
}

func TestLoadAppConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid yaml", "invalid: yaml: content: [[["},
		{"bad feed url", "gtfsrt:\n  feedURL: not a url\n"},
		{"port out of range", "server:\n  port: 70000\n"},
		{"negative timeout", "gtfsrt:\n  timeoutMS: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t, "SUBWAY_MAPPER_PORT")
			inDir(t, map[string]string{"config.yml": tt.body})
			before := Config
			if err := LoadAppConfig(); err == nil {
				t.Error("expected error")
			}
			if Config != before {
				t.Error("failed load must not replace the global config")
			}
		})
	}
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	inDir(t, nil)

	err := LoadAppConfig()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	clearEnv(t, "MTA_API_KEY")
	clearEnv(t, "SUBWAY_MAPPER_PORT")
	inDir(t, nil)

	if err := LoadOrDefault(); err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	want := Default()
	if Config != want {
		t.Errorf("Config = %+v, want %+v", Config, want)
	}
	if Config.GTFSRT.Line != "ACE" || Config.Cache.Path != "data/gtfs_cache.json" {
		t.Errorf("unexpected defaults %+v", Config)
	}
	if Config.Server.RequestTimeoutMS != DefaultRequestTimeoutMS {
		t.Errorf("requestTimeoutMS = %d, want %d", Config.Server.RequestTimeoutMS, DefaultRequestTimeoutMS)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MTA_API_KEY", "from-env")
	t.Setenv("SUBWAY_MAPPER_PORT", "9090")
	inDir(t, map[string]string{"config.yml": "server:\n  port: 8080\ngtfsrt:\n  apiKey: from-file\n"})

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.Server.Port != 9090 || Config.GTFSRT.APIKey != "from-env" {
		t.Errorf("env overrides not applied: %+v", Config)
	}
}

func TestEnvOverrides_DotEnv(t *testing.T) {
	clearEnv(t, "MTA_API_KEY")
	clearEnv(t, "SUBWAY_MAPPER_PORT")
	inDir(t, map[string]string{
		"config.yml": "gtfsrt:\n  line: G\n",
		".env":       "MTA_API_KEY=from-dotenv\n",
	})

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.GTFSRT.APIKey != "from-dotenv" {
		t.Errorf("apiKey = %q", Config.GTFSRT.APIKey)
	}
}

func TestEnvOverrides_BadPort(t *testing.T) {
	t.Setenv("SUBWAY_MAPPER_PORT", "http")
	inDir(t, map[string]string{"config.yml": "server:\n  port: 8080\n"})

	if err := LoadAppConfig(); err == nil {
		t.Error("expected error for non-numeric port")
	}
}
