package estimators

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"syncscore/domain/core"
	"syncscore/domain/score"
)

// Directional computes the mean pairwise agreement along the fixed
// qualia -> structure -> memory chain. Body is excluded by design: timing,
// not direction, is its role. Aggregation is fixed at the two adjacent pairs
// (qualia-structure, structure-memory); the qualia-memory pair does not
// participate.
func Directional(qualia, structure, memory score.LayerVector, metric score.DirectionalMetric) (float64, error) {
	pairs := [][2]score.LayerVector{
		{qualia, structure},
		{structure, memory},
	}

	total := 0.0
	for _, p := range pairs {
		v, err := PairAgreement(p[0], p[1], metric)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total / float64(len(pairs)), nil
}

// PairAgreement computes the agreement of two equal-length vectors under the
// configured metric. Pearson and cosine are never mixed within one call.
func PairAgreement(a, b score.LayerVector, metric score.DirectionalMetric) (float64, error) {
	if a.Dim() != b.Dim() {
		return 0, core.NewDimensionMismatchError(string(a.Layer), string(b.Layer), a.Dim(), b.Dim())
	}

	switch metric {
	case score.MetricCosine:
		return cosine(a.Values, b.Values), nil
	case score.MetricPearson:
		return pearson(a, b)
	default:
		return 0, core.NewConfigError("directional_metric", "must be pearson or cosine")
	}
}

// cosine returns dot(a,b)/(|a||b|), or the defined neutral value 0 when
// either norm is exactly zero.
func cosine(a, b []float64) float64 {
	na := math.Sqrt(floats.Dot(a, a))
	nb := math.Sqrt(floats.Dot(b, b))
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// pearson returns the Pearson correlation coefficient, clamped against
// floating-point drift. A zero-variance vector is an error in this mode.
func pearson(a, b score.LayerVector) (float64, error) {
	if stat.Variance(a.Values, nil) == 0 {
		return 0, core.NewZeroVarianceError(string(a.Layer))
	}
	if stat.Variance(b.Values, nil) == 0 {
		return 0, core.NewZeroVarianceError(string(b.Layer))
	}

	r := stat.Correlation(a.Values, b.Values, nil)
	return math.Max(-1, math.Min(1, r)), nil
}
