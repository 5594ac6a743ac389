// Package config loads and validates SlideSmith configuration from a YAML
// file merged over built-in defaults, with environment variable expansion.
package config

import (
	"time"
)

// Config is the umbrella configuration object returned by Initialize()
// and passed explicitly to every component that needs it. There is no
// process-wide configuration state.
type Config struct {
	Pipeline *PipelineConfig `yaml:"pipeline"`
	LLM      *LLMConfig      `yaml:"llm"`
	Redis    *RedisConfig    `yaml:"redis"`
	Queue    *QueueConfig    `yaml:"queue"`
}

// PipelineConfig holds the quality-refinement settings of the deck pipeline.
type PipelineConfig struct {
	// TargetQuality is the Reviewer total required for quality_passed.
	TargetQuality float64 `yaml:"target_quality"`

	// MaxIterations bounds refinement passes (Reviewer runs).
	MaxIterations int `yaml:"max_iterations"`

	// PerStageTimeout bounds each stage run.
	PerStageTimeout time.Duration `yaml:"per_stage_timeout"`

	// SCRTimeout bounds each SCR assignment attempt inside the Storyteller.
	SCRTimeout time.Duration `yaml:"scr_timeout"`

	// JobTimeout is the outer deadline for one whole job.
	JobTimeout time.Duration `yaml:"job_timeout"`

	// Language drives prompt construction and number formatting.
	Language string `yaml:"language"`

	// DefaultSlideCount is used when a request omits num_slides.
	DefaultSlideCount int `yaml:"default_slide_count"`

	// OutputDir is where finalized deck files are written.
	OutputDir string `yaml:"output_dir"`
}

// LLMConfig configures the completion client.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`

	// Timeout is the default per-call deadline.
	Timeout time.Duration `yaml:"timeout"`

	// BreakerMaxFailures consecutive failures open the circuit breaker
	// for BreakerCooldown.
	BreakerMaxFailures uint32        `yaml:"breaker_max_failures"`
	BreakerCooldown    time.Duration `yaml:"breaker_cooldown"`
}

// RedisConfig configures the progress sink and job store.
type RedisConfig struct {
	Addr        string        `yaml:"addr"`
	PasswordEnv string        `yaml:"password_env"`
	DB          int           `yaml:"db"`
	ProgressTTL time.Duration `yaml:"progress_ttl"`
	JobTTL      time.Duration `yaml:"job_ttl"`
}
