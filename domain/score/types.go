package score

import (
	"math"
	"time"

	"syncscore/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// Layer identifies one of the four fixed participants. The engine is not
// generic over layer count: exactly these four take part in every call.
type Layer string

const (
	LayerBody      Layer = "body"
	LayerQualia    Layer = "qualia"
	LayerStructure Layer = "structure"
	LayerMemory    Layer = "memory"
)

// Sample is one timestamped observation in a layer signal.
type Sample struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}

// LayerSignal is a raw time-series sample stream from a single layer.
// Timestamps must be strictly increasing; sampling is not required to be
// uniform across layers. Consumed only by the phase-locking path.
type LayerSignal struct {
	Layer   Layer    `json:"layer"`
	Samples []Sample `json:"samples"`
}

// Values returns a copy of the sample values in order.
func (s LayerSignal) Values() []float64 {
	out := make([]float64, len(s.Samples))
	for i, sm := range s.Samples {
		out[i] = sm.Value
	}
	return out
}

// Timestamps returns a copy of the sample timestamps in order.
func (s LayerSignal) Timestamps() []time.Time {
	out := make([]time.Time, len(s.Samples))
	for i, sm := range s.Samples {
		out[i] = sm.At
	}
	return out
}

// TimeRange returns the first and last sample timestamps.
func (s LayerSignal) TimeRange() (time.Time, time.Time) {
	if len(s.Samples) == 0 {
		return time.Time{}, time.Time{}
	}
	return s.Samples[0].At, s.Samples[len(s.Samples)-1].At
}

// LayerVector is a single layer's feature vector at one evaluation instant.
// Consumed by the mutual-information and directional-agreement paths.
type LayerVector struct {
	Layer  Layer     `json:"layer"`
	Values []float64 `json:"values"`
}

// Dim returns the vector dimensionality.
func (v LayerVector) Dim() int { return len(v.Values) }

// ============================================================================
// CONFIGURATION
// ============================================================================

// SyncWeights holds the (w1, w2, w3) contribution of each sub-score to S.
// Weights are intended to sum to 1.0 by convention but this is deliberately
// not enforced: S is a plain weighted sum with no renormalization.
type SyncWeights struct {
	PLV  float64 `json:"w_plv"`
	MI   float64 `json:"w_mi"`
	Corr float64 `json:"w_corr"`
}

// DefaultWeights returns the (0.4, 0.3, 0.3) split from the source design.
func DefaultWeights() SyncWeights {
	return SyncWeights{PLV: 0.4, MI: 0.3, Corr: 0.3}
}

// Validate checks that every weight is non-negative.
func (w SyncWeights) Validate() error {
	if w.PLV < 0 || w.MI < 0 || w.Corr < 0 {
		return core.NewConfigError("weights", "must be non-negative")
	}
	return nil
}

// Sum returns w1+w2+w3. Exposed for diagnostics only; nothing normalizes by it.
func (w SyncWeights) Sum() float64 { return w.PLV + w.MI + w.Corr }

// DirectionalMetric selects the pairwise agreement measure for the
// qualia->structure->memory chain. Fixed per deployment, never mixed in a call.
type DirectionalMetric string

const (
	MetricPearson DirectionalMetric = "pearson"
	MetricCosine  DirectionalMetric = "cosine"
)

// Band is one threshold table entry: an inclusive lower bound and its label.
type Band struct {
	LowerBound float64 `json:"lower_bound"`
	Label      string  `json:"label"`
}

// ThresholdTable maps a score onto a discrete state label. Bands are ordered
// strictly decreasing by lower bound; scores below every band fall through to
// BottomLabel, so the table covers the whole real line.
type ThresholdTable struct {
	Bands       []Band `json:"bands"`
	BottomLabel string `json:"bottom_label"`
}

// State labels from the source threshold table.
const (
	LabelStrongBinding = "strong-binding"
	LabelFrameFormed   = "frame-formed"
	LabelPartialSync   = "partial-sync"
	LabelUnconscious   = "unconscious-automatic"
)

// DefaultThresholds returns the source table. The strong-binding band requires
// S strictly above 0.85, so its inclusive lower bound is the next float after
// 0.85; the 0.70 and 0.50 boundaries are themselves inclusive.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		Bands: []Band{
			{LowerBound: math.Nextafter(0.85, math.MaxFloat64), Label: LabelStrongBinding},
			{LowerBound: 0.70, Label: LabelFrameFormed},
			{LowerBound: 0.50, Label: LabelPartialSync},
		},
		BottomLabel: LabelUnconscious,
	}
}

// Label scans bands from the highest lower bound down and returns the label of
// the first band whose lower bound is <= s. First match wins.
func (t ThresholdTable) Label(s float64) string {
	for _, b := range t.Bands {
		if s >= b.LowerBound {
			return b.Label
		}
	}
	return t.BottomLabel
}

// Validate checks band ordering and label presence.
func (t ThresholdTable) Validate() error {
	if t.BottomLabel == "" {
		return core.NewConfigError("thresholds", "bottom label is required")
	}
	for i, b := range t.Bands {
		if b.Label == "" {
			return core.NewConfigError("thresholds", "band labels must be non-empty")
		}
		if i > 0 && b.LowerBound >= t.Bands[i-1].LowerBound {
			return core.NewConfigError("thresholds", "bands must be strictly decreasing by lower bound")
		}
	}
	return nil
}

// Config is the complete per-deployment engine configuration. It is read-only
// once the engine is constructed; reconfiguration means building a new engine.
type Config struct {
	Weights            SyncWeights       `json:"weights"`
	Thresholds         ThresholdTable    `json:"thresholds"`
	WindowMS           float64           `json:"window_ms"`
	DiscretizationBins int               `json:"discretization_bins"`
	DirectionalMetric  DirectionalMetric `json:"directional_metric"`

	// NormalizeMI divides each pairwise MI by min(H(X), H(Y)) so the MI
	// sub-score lands in [0,1], keeping the default thresholds meaningful.
	NormalizeMI bool `json:"normalize_mi"`

	// IncludeBodyInMI adds body-signal pairs to the MI subset. The body series
	// is only paired with vectors of matching length; others are skipped.
	IncludeBodyInMI bool `json:"include_body_in_mi"`
}

// DefaultConfig returns the biological-signal defaults from the source design.
func DefaultConfig() Config {
	return Config{
		Weights:            DefaultWeights(),
		Thresholds:         DefaultThresholds(),
		WindowMS:           30,
		DiscretizationBins: 10,
		DirectionalMetric:  MetricCosine,
		NormalizeMI:        true,
	}
}

// Validate checks every configuration field.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.WindowMS <= 0 {
		return core.NewConfigError("window_ms", "must be positive")
	}
	if c.DiscretizationBins < 2 {
		return core.NewConfigError("discretization_bins", "must be at least 2")
	}
	switch c.DirectionalMetric {
	case MetricPearson, MetricCosine:
	default:
		return core.NewConfigError("directional_metric", "must be pearson or cosine")
	}
	return nil
}

// Window returns the PLV alignment window width as a duration.
func (c Config) Window() time.Duration {
	return time.Duration(c.WindowMS * float64(time.Millisecond))
}

// ============================================================================
// RESULTS
// ============================================================================

// SyncResult is the output record of one scoring call: the composite score S,
// its state label, and the three raw sub-scores for diagnostics.
type SyncResult struct {
	ID         core.ID        `json:"id"`
	S          float64        `json:"s"`
	Label      string         `json:"label"`
	PLV        float64        `json:"plv"`
	MI         float64        `json:"mi"`
	Corr       float64        `json:"corr"`
	ComputedAt core.Timestamp `json:"computed_at"`
}

// Aggregate combines the three sub-scores into S. Plain weighted sum; if the
// weights do not sum to 1, S is not guaranteed to lie in [0,1]. That is a
// property of the source design, preserved rather than silently corrected.
func Aggregate(w SyncWeights, plv, mi, corr float64) float64 {
	return w.PLV*plv + w.MI*mi + w.Corr*corr
}
