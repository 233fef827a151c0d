package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"APP_CONFIG_PATH", "PORT", "BIND_ADDR", "LOCAL_ONLY", "LOG_LEVEL", "LOG_FORMAT",
	"MODEL_PATH", "FEATURES_PATH", "GOOGLE_API_KEY", "VIRUSTOTAL_API_KEY",
	"FETCH_TIMEOUT", "REPUTATION_TIMEOUT", "WHOIS_ENABLED", "WHOIS_TIMEOUT",
}

// isolate runs the test in an empty directory with every config variable
// unset. Values are restored on cleanup, including ones a .env file sets.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatal(err)
		}
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != defaults() {
		t.Errorf("Load() = %+v, want %+v", cfg, defaults())
	}
	if cfg.Addr() != "127.0.0.1:5000" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(dir, "config.yaml"), `
port: "6000"
log_level: DEBUG
model_path: /models/file.yaml
fetch_timeout: 2s
whois_enabled: true
`)
	writeFile(t, filepath.Join(dir, ".env"), "GOOGLE_API_KEY=from-dotenv\nLOG_LEVEL=WARN\n")
	t.Setenv("MODEL_PATH", "/models/env.yaml")
	t.Setenv("REPUTATION_TIMEOUT", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"file port", cfg.Port, "6000"},
		{"dotenv beats file", cfg.LogLevel, "WARN"},
		{"env beats file", cfg.ModelPath, "/models/env.yaml"},
		{"dotenv key", cfg.GoogleAPIKey, "from-dotenv"},
		{"file duration", cfg.FetchTimeout, 2 * time.Second},
		{"env duration", cfg.ReputationTimeout, 250 * time.Millisecond},
		{"file bool", cfg.WhoisEnabled, true},
		{"default kept", cfg.BindAddr, "127.0.0.1"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "local_only: false\nbind_addr: 0.0.0.0\n")
	t.Setenv("APP_CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LocalOnly || cfg.BindAddr != "0.0.0.0" {
		t.Errorf("file not applied: %+v", cfg)
	}
}

func TestLoad_BadFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.yaml"), "port: [not, a, string\n")

	if _, err := Load(); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestLoad_UnparsableEnvFallsBack(t *testing.T) {
	isolate(t)
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("LOCAL_ONLY", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FetchTimeout != 5*time.Second || !cfg.LocalOnly {
		t.Errorf("fallbacks not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port not a number", mutate: func(c *Config) { c.Port = "http" }, wantErr: errInvalidPort},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }, wantErr: errInvalidPort},
		{name: "zero timeout", mutate: func(c *Config) { c.ReputationTimeout = 0 }, wantErr: errInvalidTimeout},
		{name: "no model", mutate: func(c *Config) { c.ModelPath = "" }, wantErr: errMissingModel},
		{name: "log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: errInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			if err := cfg.validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
