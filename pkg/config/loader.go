package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Initialize loads, validates, and returns ready-to-use configuration.
//
// Steps performed:
//  1. Read slidesmith.yaml from path (missing file means pure defaults)
//  2. Expand environment variables
//  3. Parse YAML
//  4. Merge user values over built-in defaults
//  5. Validate
func Initialize(path string) (*Config, error) {
	log := slog.With("config_path", path)

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info("No configuration file found, using built-in defaults")
	case err != nil:
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	default:
		var user Config
		if err := yaml.Unmarshal(ExpandEnv(data), &user); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		if err := mergeConfig(cfg, &user); err != nil {
			return nil, fmt.Errorf("failed to merge configuration: %w", err)
		}
		log.Info("Configuration loaded")
	}

	if err := NewValidator(cfg).ValidateAll(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	return cfg, nil
}

// mergeConfig overlays user values onto dst (user wins where set).
func mergeConfig(dst, user *Config) error {
	if user.Pipeline != nil {
		if err := mergo.Merge(dst.Pipeline, user.Pipeline, mergo.WithOverride); err != nil {
			return err
		}
	}
	if user.LLM != nil {
		if err := mergo.Merge(dst.LLM, user.LLM, mergo.WithOverride); err != nil {
			return err
		}
	}
	if user.Redis != nil {
		if err := mergo.Merge(dst.Redis, user.Redis, mergo.WithOverride); err != nil {
			return err
		}
	}
	if user.Queue != nil {
		if err := mergo.Merge(dst.Queue, user.Queue, mergo.WithOverride); err != nil {
			return err
		}
	}
	return nil
}
