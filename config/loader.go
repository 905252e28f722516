package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/grovetools/niribar/errors"
	"github.com/grovetools/niribar/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := parse(path, data)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

// LoadDefault loads the first config file found in the config directory.
// No file is not an error: defaults and environment overrides still apply.
func LoadDefault() (*Config, error) {
	return LoadDefaultWithLogger(logrus.New())
}

// LoadDefaultWithLogger is LoadDefault with debug logging of the lookup.
func LoadDefaultWithLogger(logger *logrus.Logger) (*Config, error) {
	for _, candidate := range paths.ConfigFiles() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		logger.WithField("path", candidate).Debug("Loading configuration")
		return Load(candidate)
	}

	logger.Debug("No configuration file found, using defaults")
	return finish(&Config{})
}

// LoadFromBytes parses YAML configuration from a byte array
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := parse("config.yml", data)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

func parse(path string, data []byte) (*Config, error) {
	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config").
				WithDetail("path", path)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config").
				WithDetail("path", path)
		}
	}
	return &cfg, nil
}

func finish(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to apply environment overrides")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
