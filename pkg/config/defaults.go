package config

import "time"

// DefaultConfig returns the built-in configuration. User YAML values are
// merged over these.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: &PipelineConfig{
			TargetQuality:     0.85,
			MaxIterations:     3,
			PerStageTimeout:   60 * time.Second,
			SCRTimeout:        15 * time.Second,
			JobTimeout:        10 * time.Minute,
			Language:          "ko",
			DefaultSlideCount: 15,
			OutputDir:         "./output",
		},
		LLM: &LLMConfig{
			BaseURL:            "http://localhost:8000/v1",
			APIKeyEnv:          "LLM_API_KEY",
			Model:              "gpt-4o",
			Temperature:        0.3,
			MaxTokens:          4096,
			Timeout:            60 * time.Second,
			BreakerMaxFailures: 5,
			BreakerCooldown:    30 * time.Second,
		},
		Redis: &RedisConfig{
			Addr:        "localhost:6379",
			PasswordEnv: "REDIS_PASSWORD",
			DB:          0,
			ProgressTTL: 1 * time.Hour,
			JobTTL:      24 * time.Hour,
		},
		Queue: DefaultQueueConfig(),
	}
}
