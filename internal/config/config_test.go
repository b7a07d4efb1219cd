package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid sqlite backend config",
			config: Config{
				Port:          "8081",
				DataBackend:   "sqlite",
				SQLiteDBPath:  "./test.db",
				LogLevel:      "info",
				StatsCacheTTL: 30 * time.Second,
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				Port:          "9000",
				DataBackend:   "memory",
				LogLevel:      "debug",
				StatsCacheTTL: 0,
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:          "abc",
				DataBackend:   "memory",
				LogLevel:      "info",
				StatsCacheTTL: time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:          "70000",
				DataBackend:   "memory",
				LogLevel:      "info",
				StatsCacheTTL: time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "invalid backend",
			config: Config{
				Port:          "8081",
				DataBackend:   "redis",
				LogLevel:      "info",
				StatsCacheTTL: time.Second,
			},
			wantErr:     true,
			errorString: "invalid data backend 'redis'",
		},
		{
			name: "sqlite backend without path",
			config: Config{
				Port:          "8081",
				DataBackend:   "sqlite",
				SQLiteDBPath:  "",
				LogLevel:      "info",
				StatsCacheTTL: time.Second,
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "invalid log level",
			config: Config{
				Port:          "8081",
				DataBackend:   "memory",
				LogLevel:      "verbose",
				StatsCacheTTL: time.Second,
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name: "negative cache TTL",
			config: Config{
				Port:          "8081",
				DataBackend:   "memory",
				LogLevel:      "info",
				StatsCacheTTL: -time.Second,
			},
			wantErr:     true,
			errorString: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesDBDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := Config{
		Port:          "8081",
		DataBackend:   "sqlite",
		SQLiteDBPath:  filepath.Join(dir, "kopilka.db"),
		LogLevel:      "info",
		StatsCacheTTL: time.Second,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("db directory should have been created: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_BACKEND", "SQLITE_DB_PATH", "LOG_LEVEL", "STATS_CACHE_TTL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("default port = %q, want 8081", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("default backend = %q, want sqlite", cfg.DataBackend)
	}
	if cfg.StatsCacheTTL != 30*time.Second {
		t.Errorf("default cache TTL = %v, want 30s", cfg.StatsCacheTTL)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("STATS_CACHE_TTL", "5s")

	cfg := Load()
	if cfg.Port != "9999" || cfg.DataBackend != "memory" || cfg.StatsCacheTTL != 5*time.Second {
		t.Fatalf("env not honored: %+v", cfg)
	}
}
