package app

import (
	"context"
	"math/rand"
	"sync"

	"syncscore/domain/core"
	"syncscore/domain/score"
	"syncscore/ports"
)

// SimpleScorer is the legacy placeholder formula kept behind the same Scorer
// contract so the parent loop can switch strategies by configuration. It
// ignores phase and information content entirely: the score is the one-step
// prediction error of the qualia vector, scaled by 0.8, plus bounded noise
// from a seeded generator. This is the only place randomness is allowed.
type SimpleScorer struct {
	cfg score.Config

	mu   sync.Mutex
	rng  *rand.Rand
	prev []float64
}

// NewSimpleScorer builds the legacy scorer. The same seed reproduces the same
// noise sequence across runs.
func NewSimpleScorer(cfg score.Config, seed int64) (*SimpleScorer, error) {
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}
	return &SimpleScorer{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// Score applies the legacy formula: sync = 0.8*prediction_error + U(0, 0.2).
// The prediction is the previous call's qualia vector; a repeat observation
// scores a prediction error of 0, anything else scores 1.
func (s *SimpleScorer) Score(ctx context.Context, in ports.Inputs) (*score.SyncResult, error) {
	if err := score.ValidateVector(in.Qualia); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	predErr := 1.0
	if s.prev != nil && vectorsEqual(s.prev, in.Qualia.Values) {
		predErr = 0.0
	}
	s.prev = append([]float64(nil), in.Qualia.Values...)

	sv := predErr*0.8 + s.rng.Float64()*0.2
	return &score.SyncResult{
		ID:         core.NewID(),
		S:          sv,
		Label:      s.cfg.Thresholds.Label(sv),
		ComputedAt: core.Now(),
	}, nil
}

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
