package score

import (
	"errors"
	"testing"

	"syncscore/domain/core"
)

func TestThresholdTable_DefaultBoundaries(t *testing.T) {
	table := DefaultThresholds()

	cases := []struct {
		s    float64
		want string
	}{
		{0.99, LabelStrongBinding},
		{0.851, LabelStrongBinding},
		// strong-binding requires strictly above 0.85
		{0.85, LabelFrameFormed},
		{0.70, LabelFrameFormed},
		{0.6999, LabelPartialSync},
		{0.50, LabelPartialSync},
		{0.4999, LabelUnconscious},
		{0.0, LabelUnconscious},
		// the table covers the full real line
		{-3.0, LabelUnconscious},
		{2.5, LabelStrongBinding},
	}

	for _, tc := range cases {
		if got := table.Label(tc.s); got != tc.want {
			t.Errorf("Label(%v) = %q, want %q", tc.s, got, tc.want)
		}
	}
}

func TestThresholdTable_FirstMatchWins(t *testing.T) {
	table := ThresholdTable{
		Bands: []Band{
			{LowerBound: 0.8, Label: "high"},
			{LowerBound: 0.2, Label: "low"},
		},
		BottomLabel: "floor",
	}

	if got := table.Label(0.9); got != "high" {
		t.Errorf("Label(0.9) = %q, want high", got)
	}
	if got := table.Label(0.8); got != "high" {
		t.Errorf("Label(0.8) = %q, want high (lower bound is inclusive)", got)
	}
	if got := table.Label(0.5); got != "low" {
		t.Errorf("Label(0.5) = %q, want low", got)
	}
	if got := table.Label(0.1); got != "floor" {
		t.Errorf("Label(0.1) = %q, want floor", got)
	}
}

func TestThresholdTable_ValidateOrdering(t *testing.T) {
	bad := ThresholdTable{
		Bands: []Band{
			{LowerBound: 0.2, Label: "low"},
			{LowerBound: 0.8, Label: "high"},
		},
		BottomLabel: "floor",
	}
	if err := bad.Validate(); !errors.Is(err, core.ErrConfigInvalid) {
		t.Fatalf("Expected ErrConfigInvalid for increasing bands, got %v", err)
	}

	missingBottom := ThresholdTable{Bands: []Band{{LowerBound: 0.5, Label: "x"}}}
	if err := missingBottom.Validate(); !errors.Is(err, core.ErrConfigInvalid) {
		t.Fatalf("Expected ErrConfigInvalid for missing bottom label, got %v", err)
	}
}

func TestSyncWeights_Validate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("Default weights must validate, got %v", err)
	}
	bad := SyncWeights{PLV: -0.1, MI: 0.5, Corr: 0.6}
	if err := bad.Validate(); !errors.Is(err, core.ErrConfigInvalid) {
		t.Fatalf("Expected ErrConfigInvalid for negative weight, got %v", err)
	}
}

func TestAggregate_EndToEndScenarios(t *testing.T) {
	weights := SyncWeights{PLV: 0.4, MI: 0.3, Corr: 0.3}
	table := DefaultThresholds()

	// All sub-scores at 1.0 with convention weights gives S=1.0, strong-binding.
	s := Aggregate(weights, 1.0, 1.0, 1.0)
	if s < 0.999999 || s > 1.000001 {
		t.Fatalf("Aggregate(1,1,1) = %v, want 1.0", s)
	}
	if got := table.Label(s); got != LabelStrongBinding {
		t.Fatalf("Label(%v) = %q, want strong-binding", s, got)
	}

	// All sub-scores at zero gives S=0, unconscious-automatic.
	s = Aggregate(weights, 0, 0, 0)
	if s != 0 {
		t.Fatalf("Aggregate(0,0,0) = %v, want 0", s)
	}
	if got := table.Label(s); got != LabelUnconscious {
		t.Fatalf("Label(0) = %q, want unconscious-automatic", got)
	}
}

func TestAggregate_NoRenormalization(t *testing.T) {
	// Weights that sum past 1 push S out of [0,1]; the formula must not
	// silently correct them.
	s := Aggregate(SyncWeights{PLV: 1, MI: 1, Corr: 1}, 0.9, 0.9, 0.9)
	if s <= 1.0 {
		t.Fatalf("Unnormalized weights should allow S > 1, got %v", s)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config must validate, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero window", func(c *Config) { c.WindowMS = 0 }},
		{"one bin", func(c *Config) { c.DiscretizationBins = 1 }},
		{"bad metric", func(c *Config) { c.DirectionalMetric = "hamming" }},
		{"negative weight", func(c *Config) { c.Weights.MI = -1 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, core.ErrConfigInvalid) {
			t.Errorf("%s: expected ErrConfigInvalid, got %v", tc.name, err)
		}
	}
}
