package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syncscore/domain/core"
	"syncscore/domain/score"
	"syncscore/ports"
)

// scriptedScorer replays a fixed sequence of results.
type scriptedScorer struct {
	script []score.SyncResult
	step   int
}

func (s *scriptedScorer) Score(ctx context.Context, in ports.Inputs) (*score.SyncResult, error) {
	result := s.script[s.step]
	result.ID = core.NewID()
	s.step++
	return &result, nil
}

func TestSession_TracksThresholdCrossing(t *testing.T) {
	scorer := &scriptedScorer{script: []score.SyncResult{
		{S: 0.30, Label: score.LabelUnconscious},
		{S: 0.55, Label: score.LabelPartialSync},
		{S: 0.78, Label: score.LabelFrameFormed},
		{S: 0.60, Label: score.LabelPartialSync},
		{S: 0.91, Label: score.LabelStrongBinding},
	}}

	session := NewSession(scorer, score.LabelFrameFormed, score.LabelStrongBinding)
	ctx := context.Background()

	for range scorer.script {
		_, err := session.Step(ctx, ports.Inputs{})
		require.NoError(t, err)
	}

	summary := session.Summary()
	assert.Equal(t, 5, summary.Steps)
	assert.Equal(t, 2, summary.Matched)
	assert.InDelta(t, 0.4, summary.MatchedRatio, 1e-12)
	assert.Equal(t, 3, summary.CrossedAt, "first target-band result was step 3")
	assert.Equal(t, 0.91, summary.FinalS)
	assert.Equal(t, score.LabelStrongBinding, summary.FinalLabel)
}

func TestSession_NeverCrossed(t *testing.T) {
	scorer := &scriptedScorer{script: []score.SyncResult{
		{S: 0.1, Label: score.LabelUnconscious},
		{S: 0.2, Label: score.LabelUnconscious},
	}}

	session := NewSession(scorer, score.LabelStrongBinding)
	ctx := context.Background()
	for range scorer.script {
		_, err := session.Step(ctx, ports.Inputs{})
		require.NoError(t, err)
	}

	assert.Equal(t, 0, session.CrossedAt())
	assert.Equal(t, 0, session.Summary().Matched)
}
