package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bnema/synapse-cli/internal/adapters/generation/gemini"
)

const (
	configDirName  = ".synapse"
	configFileName = "config.toml"
	configPathEnv  = "SYNAPSE_CONFIG"
	envPrefix      = "SYNAPSE"

	keyAPIURL     = "api.url"
	keyAPITimeout = "api.timeout"
	keyAgentsDir  = "agents.dir"
	keyRoutesPath = "routes.path"
	keySecretsDir = "secrets.dir"
	keyAPIKeyRef  = "secrets.api_key_ref"
	keyLogLevel   = "log.level"
	keyLogFormat  = "log.format"
)

func loadConfig(homeDir string) (*viper.Viper, error) {
	base := filepath.Join(homeDir, configDirName)

	cfg := viper.New()
	cfg.SetDefault(keyAPIURL, gemini.DefaultBaseURL)
	cfg.SetDefault(keyAPITimeout, 60*time.Second)
	cfg.SetDefault(keyAgentsDir, filepath.Join(base, "agents"))
	cfg.SetDefault(keyRoutesPath, filepath.Join(base, "routes.toml"))
	cfg.SetDefault(keySecretsDir, filepath.Join(base, "secrets"))
	cfg.SetDefault(keyAPIKeyRef, gemini.DefaultKeyName)
	cfg.SetDefault(keyLogLevel, "warn")
	cfg.SetDefault(keyLogFormat, "text")

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	path := envOrDefault(configPathEnv, filepath.Join(base, configFileName))
	cfg.SetConfigFile(path)
	cfg.SetConfigType("toml")
	if err := cfg.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return cfg, nil
}

// loadDotEnv reads .env from the working directory. Variables already set in
// the environment win.
func loadDotEnv() error {
	return godotenv.Load()
}

func newLogger(cfg *viper.Viper, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(logrus.WarnLevel)

	setLogLevel(logger, cfg.GetString(keyLogLevel))

	switch format := cfg.GetString(keyLogFormat); format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		logger.WithField("format", format).Warn("Unknown logging format")
	}

	return logger
}

// setLogLevel keeps the current level when raw is empty or unknown.
func setLogLevel(logger *logrus.Logger, raw string) {
	if raw == "" {
		return
	}

	lvl, err := logrus.ParseLevel(raw)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"level":    raw,
			"error":    err,
			"provided": "panic,fatal,error,warn,info,debug,trace",
		}).Warn("Failed to set log level. Please select one of the provided ones")
		return
	}
	logger.SetLevel(lvl)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
