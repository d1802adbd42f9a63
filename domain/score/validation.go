package score

import (
	"github.com/montanaflynn/stats"

	"syncscore/domain/core"
)

// MinPhaseSamples is the smallest signal the phase extractor accepts. Below
// this the analytic-signal phase is meaningless noise.
const MinPhaseSamples = 8

// ValidateSignal checks a layer signal's shape and timestamp ordering.
func ValidateSignal(s LayerSignal) error {
	if len(s.Samples) < MinPhaseSamples {
		return core.NewInsufficientSamplesError(string(s.Layer), len(s.Samples), MinPhaseSamples)
	}
	for i := 1; i < len(s.Samples); i++ {
		if !s.Samples[i].At.After(s.Samples[i-1].At) {
			return core.NewNonMonotonicError(string(s.Layer), i)
		}
	}
	return nil
}

// ValidateVector checks a layer vector is non-empty.
func ValidateVector(v LayerVector) error {
	if len(v.Values) == 0 {
		return core.NewConfigError(string(v.Layer), "layer vector must be non-empty")
	}
	return nil
}

// ValidateInputs runs every shape, length, and domain check for one scoring
// call before any estimator sees the data. Fail fast: a partial result is
// never produced.
func ValidateInputs(body LayerSignal, qualia, structure, memory LayerVector, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := ValidateSignal(body); err != nil {
		return err
	}
	for _, v := range []LayerVector{qualia, structure, memory} {
		if err := ValidateVector(v); err != nil {
			return err
		}
	}

	// The per-index discretization scheme and both directional metrics require
	// matching dimensionality along the chain and across MI pairs.
	pairs := [][2]LayerVector{
		{qualia, structure},
		{structure, memory},
		{qualia, memory},
	}
	for _, p := range pairs {
		if p[0].Dim() != p[1].Dim() {
			return core.NewDimensionMismatchError(
				string(p[0].Layer), string(p[1].Layer), p[0].Dim(), p[1].Dim())
		}
	}

	// Pearson is undefined on a flat vector; cosine handles it as a defined
	// neutral value instead, so only pearson deployments fail here.
	if cfg.DirectionalMetric == MetricPearson {
		for _, v := range []LayerVector{qualia, structure, memory} {
			variance, err := stats.Variance(v.Values)
			if err != nil {
				return core.NewConfigError(string(v.Layer), err.Error())
			}
			if variance == 0 {
				return core.NewZeroVarianceError(string(v.Layer))
			}
		}
	}

	return nil
}
