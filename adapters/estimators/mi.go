package estimators

import (
	"math"

	"syncscore/domain/core"
	"syncscore/domain/score"
)

// VectorPair is one mutual-information pairing of two layer vectors.
type VectorPair struct {
	A, B score.LayerVector
}

// MI computes the mean pairwise mutual information over the given layer pairs.
// Each vector is discretized into equal-width bins over its observed range and
// the standard discrete MI formula is evaluated on the empirical joint and
// marginal distributions. With normalize set, each pair's MI is divided by
// min(H(A), H(B)) so the aggregate lands in [0, 1].
func MI(pairs []VectorPair, bins int, normalize bool) (float64, error) {
	if bins < 2 {
		return 0, core.NewConfigError("discretization_bins", "must be at least 2")
	}
	if len(pairs) == 0 {
		return 0, core.NewConfigError("mi_pairs", "at least one pair is required")
	}

	total := 0.0
	for _, p := range pairs {
		mi, err := MIPair(p.A, p.B, bins, normalize)
		if err != nil {
			return 0, err
		}
		total += mi
	}
	return total / float64(len(pairs)), nil
}

// MIPair computes mutual information between two equal-length layer vectors.
// A zero-variance vector collapses into a single bin and yields MI = 0 with
// any partner by definition, not an error.
func MIPair(a, b score.LayerVector, bins int, normalize bool) (float64, error) {
	if a.Dim() != b.Dim() {
		return 0, core.NewDimensionMismatchError(string(a.Layer), string(b.Layer), a.Dim(), b.Dim())
	}
	if a.Dim() == 0 {
		return 0, nil
	}

	ba := discretize(a.Values, bins)
	bb := discretize(b.Values, bins)

	ha := entropy(ba)
	hb := entropy(bb)
	hab := jointEntropy(ba, bb, bins)

	// I(A;B) = H(A) + H(B) - H(A,B); guard against negative rounding drift.
	mi := math.Max(0, ha+hb-hab)
	if !normalize {
		return mi, nil
	}

	h := math.Min(ha, hb)
	if h == 0 {
		return 0, nil
	}
	return math.Min(mi/h, 1.0), nil
}

// discretize assigns each value to one of bins equal-width buckets spanning
// the observed range. A flat vector collapses into bucket 0.
func discretize(data []float64, bins int) []int {
	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]int, len(data))
	if hi == lo {
		return out
	}
	width := (hi - lo) / float64(bins)
	for i, v := range data {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[i] = idx
	}
	return out
}

// entropy computes Shannon entropy (bits) of a discrete label sequence.
func entropy(labels []int) float64 {
	counts := make(map[int]int)
	for _, l := range labels {
		counts[l]++
	}

	h := 0.0
	n := float64(len(labels))
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// jointEntropy computes H(A,B) over paired label sequences.
func jointEntropy(la, lb []int, bins int) float64 {
	counts := make(map[int]int)
	for i := range la {
		counts[la[i]*bins+lb[i]]++
	}

	h := 0.0
	n := float64(len(la))
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
