package wrapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/slchris/compdb-wrapper/pkg/config"
)

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compdb-wrapper.yaml")
	data := "compiler: g++\nheader: /opt/magic.h\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvCompiler, "clang++-18")
	t.Setenv(EnvEnabled, "")
	t.Setenv(EnvHeader, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogDir, "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Compiler != "clang++-18" {
		t.Errorf("Expected environment to override compiler, got %s", cfg.Compiler)
	}
	if cfg.Header != "/opt/magic.h" {
		t.Errorf("Expected header from file, got %s", cfg.Header)
	}
	if !cfg.Enabled {
		t.Error("Expected Enabled=true by default")
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("compiler: [oops"), 0600); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}
	t.Setenv(EnvConfig, path)

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for invalid config, got nil")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *config.WrapperConfig)
	}{
		{
			name: "Disable",
			env:  map[string]string{EnvEnabled: "0"},
			check: func(t *testing.T, cfg *config.WrapperConfig) {
				if cfg.Enabled {
					t.Error("Expected Enabled=false")
				}
			},
		},
		{
			name: "Unrecognised enabled value ignored",
			env:  map[string]string{EnvEnabled: "maybe"},
			check: func(t *testing.T, cfg *config.WrapperConfig) {
				if !cfg.Enabled {
					t.Error("Expected Enabled=true")
				}
			},
		},
		{
			name: "Header",
			env:  map[string]string{EnvHeader: "/usr/share/compdb/magic.h"},
			check: func(t *testing.T, cfg *config.WrapperConfig) {
				if cfg.Header != "/usr/share/compdb/magic.h" {
					t.Errorf("Unexpected header %s", cfg.Header)
				}
			},
		},
		{
			name: "Log level alone logs to stderr",
			env:  map[string]string{EnvLogLevel: "debug"},
			check: func(t *testing.T, cfg *config.WrapperConfig) {
				if !cfg.Logging.Enabled || !cfg.Logging.Console || cfg.Logging.Level != "debug" {
					t.Errorf("Unexpected logging config %+v", cfg.Logging)
				}
			},
		},
		{
			name: "Log dir",
			env:  map[string]string{EnvLogLevel: "warn", EnvLogDir: "/tmp/compdb-logs"},
			check: func(t *testing.T, cfg *config.WrapperConfig) {
				if !cfg.Logging.Enabled || cfg.Logging.Console || cfg.Logging.Dir != "/tmp/compdb-logs" {
					t.Errorf("Unexpected logging config %+v", cfg.Logging)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultWrapperConfig()
			applyEnv(cfg, func(key string) string { return tt.env[key] })
			tt.check(t, cfg)
		})
	}
}
