package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation task being performed.
type TaskType string

const (
	TaskSchedule TaskType = "schedule"
	TaskEnergy   TaskType = "energy"
)

// TaskConfig holds per-task sampling parameters.
type TaskConfig struct {
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the generation subsystem.
type Config struct {
	Enabled   bool
	LogCalls  bool
	Endpoint  string
	Model     string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults.
// Generation is disabled by default; the fallback path covers everything.
func DefaultConfig() Config {
	return Config{
		Enabled:   false,
		LogCalls:  false,
		Endpoint:  "http://localhost:8090",
		Model:     "planner-1",
		TimeoutMs: 15000,
		Tasks: map[TaskType]TaskConfig{
			TaskSchedule: {Temperature: 0.4, TopP: 0.9, TopK: 40, MaxTokens: 2048, TimeoutMs: 20000},
			TaskEnergy:   {Temperature: 0.5, TopP: 0.9, TopK: 40, MaxTokens: 1024, TimeoutMs: 12000},
		},
	}
}

// LoadConfig reads generation configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DAYBREAK_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DAYBREAK_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DAYBREAK_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DAYBREAK_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("DAYBREAK_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskSchedule, "DAYBREAK_LLM_SCHEDULE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskEnergy, "DAYBREAK_LLM_ENERGY_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
