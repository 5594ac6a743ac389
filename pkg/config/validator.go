package config

import "fmt"

// Validator validates configuration with clear error messages.
type Validator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAll performs fail-fast validation, stopping at the first error.
func (v *Validator) ValidateAll() error {
	if err := v.validatePipeline(); err != nil {
		return err
	}
	if err := v.validateLLM(); err != nil {
		return err
	}
	if err := v.validateRedis(); err != nil {
		return err
	}
	return v.validateQueue()
}

func (v *Validator) validatePipeline() error {
	p := v.cfg.Pipeline
	if p.TargetQuality <= 0 || p.TargetQuality > 1 {
		return NewValidationError("pipeline", "target_quality",
			fmt.Errorf("%w: must be in (0,1], got %v", ErrInvalidValue, p.TargetQuality))
	}
	if p.MaxIterations < 1 {
		return NewValidationError("pipeline", "max_iterations",
			fmt.Errorf("%w: must be >= 1, got %d", ErrInvalidValue, p.MaxIterations))
	}
	if p.PerStageTimeout <= 0 {
		return NewValidationError("pipeline", "per_stage_timeout",
			fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if p.SCRTimeout <= 0 {
		return NewValidationError("pipeline", "scr_timeout",
			fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if p.JobTimeout <= 0 {
		return NewValidationError("pipeline", "job_timeout",
			fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if p.DefaultSlideCount < 3 {
		return NewValidationError("pipeline", "default_slide_count",
			fmt.Errorf("%w: must be >= 3, got %d", ErrInvalidValue, p.DefaultSlideCount))
	}
	if p.Language == "" {
		return NewValidationError("pipeline", "language",
			fmt.Errorf("%w: must not be empty", ErrInvalidValue))
	}
	if p.OutputDir == "" {
		return NewValidationError("pipeline", "output_dir",
			fmt.Errorf("%w: must not be empty", ErrInvalidValue))
	}
	return nil
}

func (v *Validator) validateLLM() error {
	l := v.cfg.LLM
	if l.BaseURL == "" {
		return NewValidationError("llm", "base_url",
			fmt.Errorf("%w: must not be empty", ErrInvalidValue))
	}
	if l.Model == "" {
		return NewValidationError("llm", "model",
			fmt.Errorf("%w: must not be empty", ErrInvalidValue))
	}
	if l.Timeout <= 0 {
		return NewValidationError("llm", "timeout",
			fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	return nil
}

func (v *Validator) validateRedis() error {
	r := v.cfg.Redis
	if r.Addr == "" {
		return NewValidationError("redis", "addr",
			fmt.Errorf("%w: must not be empty", ErrInvalidValue))
	}
	if r.ProgressTTL <= 0 {
		return NewValidationError("redis", "progress_ttl",
			fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if r.JobTTL <= 0 {
		return NewValidationError("redis", "job_ttl",
			fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	return nil
}

func (v *Validator) validateQueue() error {
	q := v.cfg.Queue
	if q.WorkerCount < 1 {
		return NewValidationError("queue", "worker_count",
			fmt.Errorf("%w: must be >= 1, got %d", ErrInvalidValue, q.WorkerCount))
	}
	if q.QueueCapacity < 1 {
		return NewValidationError("queue", "queue_capacity",
			fmt.Errorf("%w: must be >= 1, got %d", ErrInvalidValue, q.QueueCapacity))
	}
	return nil
}
