package ports

import (
	"context"

	"syncscore/domain/score"
)

// Inputs carries the four layer inputs of one scoring call. Inputs are
// transient: constructed by the upstream producers, consumed by a single call,
// and never mutated by the engine.
type Inputs struct {
	Body      score.LayerSignal
	Qualia    score.LayerVector
	Structure score.LayerVector
	Memory    score.LayerVector
}

// Scorer is the single scoring contract. The composite engine and the legacy
// simple formula are interchangeable implementations behind this interface, so
// the parent loop can switch strategies without changing its call site.
type Scorer interface {
	Score(ctx context.Context, in Inputs) (*score.SyncResult, error)
}
