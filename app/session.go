package app

import (
	"context"

	"syncscore/domain/score"
	"syncscore/ports"
)

// Session accumulates results over a run and tracks when the score first
// crosses into one of the target bands. Everything stays in memory; the
// engine never persists scores.
type Session struct {
	scorer  ports.Scorer
	targets map[string]bool

	history   []score.SyncResult
	matched   int
	crossedAt int // 1-based step of the first target-band result, 0 = never
}

// NewSession wraps a scorer and counts every result whose label is one of the
// given target labels.
func NewSession(scorer ports.Scorer, targetLabels ...string) *Session {
	targets := make(map[string]bool, len(targetLabels))
	for _, l := range targetLabels {
		targets[l] = true
	}
	return &Session{scorer: scorer, targets: targets}
}

// Step scores one set of inputs and folds the result into the session.
func (s *Session) Step(ctx context.Context, in ports.Inputs) (*score.SyncResult, error) {
	result, err := s.scorer.Score(ctx, in)
	if err != nil {
		return nil, err
	}

	s.history = append(s.history, *result)
	if s.targets[result.Label] {
		s.matched++
		if s.crossedAt == 0 {
			s.crossedAt = len(s.history)
		}
	}
	return result, nil
}

// History returns the accumulated results in step order.
func (s *Session) History() []score.SyncResult { return s.history }

// CrossedAt returns the 1-based step at which the score first landed in a
// target band, or 0 if it never did.
func (s *Session) CrossedAt() int { return s.crossedAt }

// SessionSummary condenses a finished run.
type SessionSummary struct {
	Steps        int     `json:"steps"`
	Matched      int     `json:"matched"`
	MatchedRatio float64 `json:"matched_ratio"`
	CrossedAt    int     `json:"crossed_at"`
	FinalS       float64 `json:"final_s"`
	FinalLabel   string  `json:"final_label"`
}

// Summary reports the run so far.
func (s *Session) Summary() SessionSummary {
	sum := SessionSummary{
		Steps:     len(s.history),
		Matched:   s.matched,
		CrossedAt: s.crossedAt,
	}
	if len(s.history) > 0 {
		sum.MatchedRatio = float64(s.matched) / float64(len(s.history))
		last := s.history[len(s.history)-1]
		sum.FinalS = last.S
		sum.FinalLabel = last.Label
	}
	return sum
}
