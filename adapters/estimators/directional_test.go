package estimators

import (
	"errors"
	"math"
	"testing"

	"syncscore/domain/core"
	"syncscore/domain/score"
)

func vec(layer score.Layer, values ...float64) score.LayerVector {
	return score.LayerVector{Layer: layer, Values: values}
}

func TestPairAgreement_CosineSelf(t *testing.T) {
	v := vec(score.LayerQualia, 1, -2, 3, 0.5)

	got, err := PairAgreement(v, vec(score.LayerStructure, 1, -2, 3, 0.5), score.MetricCosine)
	if err != nil {
		t.Fatalf("PairAgreement failed: %v", err)
	}
	if math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("Cosine of a vector with itself must be 1.0, got %v", got)
	}
}

func TestPairAgreement_CosineNegation(t *testing.T) {
	got, err := PairAgreement(
		vec(score.LayerQualia, 1, -2, 3),
		vec(score.LayerStructure, -1, 2, -3),
		score.MetricCosine)
	if err != nil {
		t.Fatalf("PairAgreement failed: %v", err)
	}
	if math.Abs(got+1.0) > 1e-12 {
		t.Fatalf("Cosine with exact negation must be -1.0, got %v", got)
	}
}

func TestPairAgreement_CosineZeroVectorIsZeroNotError(t *testing.T) {
	got, err := PairAgreement(
		vec(score.LayerQualia, 0, 0, 0),
		vec(score.LayerStructure, 1, 2, 3),
		score.MetricCosine)
	if err != nil {
		t.Fatalf("Zero-norm vector under cosine must not error, got %v", err)
	}
	if got != 0 {
		t.Fatalf("Cosine with the zero vector must be 0, got %v", got)
	}
}

func TestPairAgreement_PearsonLinear(t *testing.T) {
	x := vec(score.LayerQualia, 1, 2, 3, 4, 5)
	up := vec(score.LayerStructure, 3, 5, 7, 9, 11) // y = 2x+1
	down := vec(score.LayerMemory, 11, 9, 7, 5, 3)  // y = -2x+13

	got, err := PairAgreement(x, up, score.MetricPearson)
	if err != nil {
		t.Fatalf("PairAgreement failed: %v", err)
	}
	if math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("Perfect positive linear relation must give r=1.0, got %v", got)
	}

	got, err = PairAgreement(x, down, score.MetricPearson)
	if err != nil {
		t.Fatalf("PairAgreement failed: %v", err)
	}
	if math.Abs(got+1.0) > 1e-12 {
		t.Fatalf("Perfect negative linear relation must give r=-1.0, got %v", got)
	}
}

func TestPairAgreement_PearsonZeroVariance(t *testing.T) {
	_, err := PairAgreement(
		vec(score.LayerQualia, 4, 4, 4, 4),
		vec(score.LayerStructure, 1, 2, 3, 4),
		score.MetricPearson)
	if !errors.Is(err, core.ErrZeroVariance) {
		t.Fatalf("Expected ErrZeroVariance, got %v", err)
	}
}

func TestPairAgreement_DimensionMismatch(t *testing.T) {
	_, err := PairAgreement(
		vec(score.LayerQualia, 1, 2, 3),
		vec(score.LayerStructure, 1, 2),
		score.MetricCosine)
	if !errors.Is(err, core.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch, got %v", err)
	}
}

func TestDirectional_AdjacentPairMean(t *testing.T) {
	qualia := vec(score.LayerQualia, 1, 0, 0)
	structure := vec(score.LayerStructure, 1, 0, 0)
	memory := vec(score.LayerMemory, 0, 1, 0)

	// qualia-structure is 1.0, structure-memory is 0.0; the qualia-memory
	// pair must not participate.
	got, err := Directional(qualia, structure, memory, score.MetricCosine)
	if err != nil {
		t.Fatalf("Directional failed: %v", err)
	}
	if math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("Adjacent-pair mean should be 0.5, got %v", got)
	}
}

func TestDirectional_RejectsUnknownMetric(t *testing.T) {
	v := vec(score.LayerQualia, 1, 2, 3)

	_, err := Directional(v, v, v, score.DirectionalMetric("manhattan"))
	if !errors.Is(err, core.ErrConfigInvalid) {
		t.Fatalf("Expected ErrConfigInvalid, got %v", err)
	}
}
