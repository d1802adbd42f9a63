package config

import (
	"os"
	"strconv"

	"syncscore/domain/core"
	"syncscore/domain/score"
)

// Strategy selects the scoring implementation behind the Scorer port.
const (
	StrategyComposite = "composite"
	StrategySimple    = "simple"
)

// Config represents the complete application configuration
type Config struct {
	Strategy string
	Seed     int64 // noise seed for the simple strategy and synthetic runs

	WeightPLV  float64
	WeightMI   float64
	WeightCorr float64

	WindowMS           float64
	DiscretizationBins int
	DirectionalMetric  string
	NormalizeMI        bool
	IncludeBodyInMI    bool

	InputFile string // optional .xlsx/.csv capture; empty means synthetic run
	Steps     int    // synthetic run length
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Strategy:           getEnvOrDefault("SYNC_STRATEGY", StrategyComposite),
		Seed:               int64(getEnvIntOrDefault("SYNC_SEED", 1)),
		WeightPLV:          getEnvFloatOrDefault("SYNC_W_PLV", 0.4),
		WeightMI:           getEnvFloatOrDefault("SYNC_W_MI", 0.3),
		WeightCorr:         getEnvFloatOrDefault("SYNC_W_CORR", 0.3),
		WindowMS:           getEnvFloatOrDefault("SYNC_WINDOW_MS", 30),
		DiscretizationBins: getEnvIntOrDefault("SYNC_BINS", 10),
		DirectionalMetric:  getEnvOrDefault("SYNC_METRIC", string(score.MetricCosine)),
		NormalizeMI:        getEnvBoolOrDefault("SYNC_NORMALIZE_MI", true),
		IncludeBodyInMI:    getEnvBoolOrDefault("SYNC_BODY_IN_MI", false),
		InputFile:          getEnvOrDefault("SYNC_INPUT_FILE", ""),
		Steps:              getEnvIntOrDefault("SYNC_STEPS", 200),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ScoreConfig converts the application configuration into the engine's
// immutable scoring configuration. Thresholds always start from the source
// table; reconfiguring bands is a code-level change, not an env knob.
func (c *Config) ScoreConfig() score.Config {
	return score.Config{
		Weights: score.SyncWeights{
			PLV:  c.WeightPLV,
			MI:   c.WeightMI,
			Corr: c.WeightCorr,
		},
		Thresholds:         score.DefaultThresholds(),
		WindowMS:           c.WindowMS,
		DiscretizationBins: c.DiscretizationBins,
		DirectionalMetric:  score.DirectionalMetric(c.DirectionalMetric),
		NormalizeMI:        c.NormalizeMI,
		IncludeBodyInMI:    c.IncludeBodyInMI,
	}
}

func validateConfig(c *Config) error {
	switch c.Strategy {
	case StrategyComposite, StrategySimple:
	default:
		return core.NewConfigError("SYNC_STRATEGY", "must be composite or simple")
	}
	if c.Steps <= 0 && c.InputFile == "" {
		return core.NewConfigError("SYNC_STEPS", "must be positive for synthetic runs")
	}
	// The weight/window/bins/metric fields are validated again by
	// score.Config; checking here keeps failures at startup.
	return c.ScoreConfig().Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
