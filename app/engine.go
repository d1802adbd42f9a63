package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"syncscore/adapters/estimators"
	"syncscore/domain/core"
	"syncscore/domain/score"
	"syncscore/ports"
)

// Engine is the composite synchronization scorer: input validation, the three
// estimators fanned out in parallel, then the weighted aggregation and
// threshold lookup at the join point. The engine itself is stateless per call;
// its configuration is immutable after construction, so one Engine is safe for
// concurrent use. Reconfiguration means constructing a new Engine.
type Engine struct {
	cfg score.Config
}

// NewEngine validates the configuration and builds a composite engine.
func NewEngine(cfg score.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() score.Config { return e.cfg }

// Score runs one synchronization scoring call. All validation happens before
// any estimator runs; a failure never yields a partial result. For identical
// inputs and configuration the score and label are reproducible exactly.
func (e *Engine) Score(ctx context.Context, in ports.Inputs) (*score.SyncResult, error) {
	if err := score.ValidateInputs(in.Body, in.Qualia, in.Structure, in.Memory, e.cfg); err != nil {
		return nil, err
	}

	var plv, mi, corr float64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := e.phaseLocking(ctx, in)
		if err != nil {
			return err
		}
		plv = v
		return nil
	})
	g.Go(func() error {
		v, err := estimators.MI(e.miPairs(in), e.cfg.DiscretizationBins, e.cfg.NormalizeMI)
		if err != nil {
			return err
		}
		mi = v
		return nil
	})
	g.Go(func() error {
		v, err := estimators.Directional(in.Qualia, in.Structure, in.Memory, e.cfg.DirectionalMetric)
		if err != nil {
			return err
		}
		corr = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := score.Aggregate(e.cfg.Weights, plv, mi, corr)
	return &score.SyncResult{
		ID:         core.NewID(),
		S:          s,
		Label:      e.cfg.Thresholds.Label(s),
		PLV:        plv,
		MI:         mi,
		Corr:       corr,
		ComputedAt: core.Now(),
	}, nil
}

// phaseLocking derives a phase series per layer and computes the PLV. The body
// signal carries its own clock. The three vector layers are read as uniformly
// sampled activation traces spanning the body's time range, which gives every
// layer a well-defined phase at shared instants. Vector layers too short for
// phase extraction simply contribute no phase data; the PLV estimator reports
// InsufficientLayers if fewer than two layers remain.
func (e *Engine) phaseLocking(ctx context.Context, in ports.Inputs) (float64, error) {
	bodyPhases, err := estimators.ExtractPhase(in.Body)
	if err != nil {
		return 0, err
	}

	series := []estimators.PhaseSeries{{
		Layer: score.LayerBody,
		Times: in.Body.Timestamps(),
		Phase: bodyPhases,
	}}

	start, end := in.Body.TimeRange()
	for _, v := range []score.LayerVector{in.Qualia, in.Structure, in.Memory} {
		if v.Dim() < score.MinPhaseSamples {
			continue
		}
		trace := traceSignal(v, start, end)
		phases, err := estimators.ExtractPhase(trace)
		if err != nil {
			return 0, err
		}
		series = append(series, estimators.PhaseSeries{
			Layer: v.Layer,
			Times: trace.Timestamps(),
			Phase: phases,
		})
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return estimators.PLV(series, e.cfg.Window())
}

// miPairs selects the mutual-information subset: the three vector-layer pairs,
// plus body pairings of matching length when the deployment opts in.
func (e *Engine) miPairs(in ports.Inputs) []estimators.VectorPair {
	pairs := []estimators.VectorPair{
		{A: in.Qualia, B: in.Structure},
		{A: in.Qualia, B: in.Memory},
		{A: in.Structure, B: in.Memory},
	}

	if e.cfg.IncludeBodyInMI {
		body := score.LayerVector{Layer: score.LayerBody, Values: in.Body.Values()}
		for _, v := range []score.LayerVector{in.Qualia, in.Structure, in.Memory} {
			// Body's sample count rarely matches the vector dimensionality;
			// mismatched pairings are skipped rather than failed.
			if body.Dim() == v.Dim() {
				pairs = append(pairs, estimators.VectorPair{A: body, B: v})
			}
		}
	}
	return pairs
}

// traceSignal spreads a layer vector uniformly across [start, end] so the
// phase extractor can treat it as a time series.
func traceSignal(v score.LayerVector, start, end time.Time) score.LayerSignal {
	n := v.Dim()
	step := end.Sub(start) / time.Duration(n-1)
	samples := make([]score.Sample, n)
	for i, val := range v.Values {
		samples[i] = score.Sample{At: start.Add(time.Duration(i) * step), Value: val}
	}
	return score.LayerSignal{Layer: v.Layer, Samples: samples}
}
