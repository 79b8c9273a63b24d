package wrapper

import (
	"os"

	"github.com/slchris/compdb-wrapper/pkg/config"
)

// Environment variables read by LoadConfig.
const (
	EnvConfig   = "COMPDB_WRAPPER_CONFIG"
	EnvEnabled  = "COMPDB_WRAPPER_ENABLED"
	EnvCompiler = "COMPDB_WRAPPER_CXX"
	EnvHeader   = "COMPDB_WRAPPER_HEADER"
	EnvLogLevel = "COMPDB_WRAPPER_LOG_LEVEL"
	EnvLogDir   = "COMPDB_WRAPPER_LOG_DIR"
)

// LoadConfig loads wrapper configuration from file and environment. The file
// named by COMPDB_WRAPPER_CONFIG, or config.DefaultPath, is read first and
// environment variables override it.
func LoadConfig() (*config.WrapperConfig, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := config.LoadWrapperConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnv(cfg, os.Getenv)
	return cfg, nil
}

func applyEnv(cfg *config.WrapperConfig, getenv func(string) string) {
	switch getenv(EnvEnabled) {
	case "1", "true":
		cfg.Enabled = true
	case "0", "false":
		cfg.Enabled = false
	}

	if compiler := getenv(EnvCompiler); compiler != "" {
		cfg.Compiler = compiler
	}

	if header := getenv(EnvHeader); header != "" {
		cfg.Header = header
	}

	if level := getenv(EnvLogLevel); level != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = level
		// Without a directory the only place left to write is stderr.
		if cfg.Logging.Dir == "" && getenv(EnvLogDir) == "" {
			cfg.Logging.Console = true
		}
	}

	if dir := getenv(EnvLogDir); dir != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.Dir = dir
	}
}
