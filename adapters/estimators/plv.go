package estimators

import (
	"math"
	"sort"
	"time"

	"syncscore/domain/core"
	"syncscore/domain/score"
)

// PhaseSeries is one layer's instantaneous phase trace: a phase value per
// timestamped instant, in the layer's own (not necessarily uniform) clock.
type PhaseSeries struct {
	Layer score.Layer
	Times []time.Time
	Phase []float64
}

func (p PhaseSeries) valid() bool {
	return len(p.Times) > 0 && len(p.Times) == len(p.Phase)
}

// PLV computes the phase-locking value of the given layer phase series over a
// trailing window of the given width. All series are resampled onto a shared
// grid; for every unordered layer pair the complex unit vector exp(i*(pa-pb))
// is accumulated at each grid instant, and the magnitude of the overall mean
// is returned. 1.0 means perfect phase alignment across all pairs, 0.0 means
// the phases are unrelated.
func PLV(series []PhaseSeries, window time.Duration) (float64, error) {
	if window <= 0 {
		return 0, core.NewConfigError("window_ms", "must be positive")
	}

	valid := make([]PhaseSeries, 0, len(series))
	for _, s := range series {
		if s.valid() {
			valid = append(valid, s)
		}
	}
	if len(valid) < 2 {
		return 0, core.NewInsufficientLayersError(len(valid))
	}

	start, end := sharedRange(valid)
	if end.Before(start) {
		return 0, core.ErrEmptyWindow
	}
	// Only the trailing window of the shared range participates.
	if end.Sub(start) > window {
		start = end.Add(-window)
	}

	grid := densestGrid(valid, start, end)
	if len(grid) == 0 {
		return 0, core.ErrEmptyWindow
	}

	// Sample-and-hold each series onto the grid. Every grid instant is at or
	// after each series' first sample, so a held value always exists.
	held := make([][]float64, len(valid))
	for i, s := range valid {
		held[i] = holdOnto(s, grid)
	}

	var sumRe, sumIm float64
	count := 0
	for a := 0; a < len(held); a++ {
		for b := a + 1; b < len(held); b++ {
			for k := range grid {
				d := held[a][k] - held[b][k]
				sumRe += math.Cos(d)
				sumIm += math.Sin(d)
				count++
			}
		}
	}
	if count == 0 {
		return 0, core.ErrEmptyWindow
	}

	plv := math.Hypot(sumRe/float64(count), sumIm/float64(count))
	return math.Min(plv, 1.0), nil
}

// sharedRange returns the intersection of all series' time ranges.
func sharedRange(series []PhaseSeries) (time.Time, time.Time) {
	start := series[0].Times[0]
	end := series[0].Times[len(series[0].Times)-1]
	for _, s := range series[1:] {
		if first := s.Times[0]; first.After(start) {
			start = first
		}
		if last := s.Times[len(s.Times)-1]; last.Before(end) {
			end = last
		}
	}
	return start, end
}

// densestGrid picks the in-window timestamps of the series with the most
// samples inside [start, end]. Ties keep the earliest series in input order,
// so the grid is deterministic for a fixed layer ordering.
func densestGrid(series []PhaseSeries, start, end time.Time) []time.Time {
	var grid []time.Time
	best := 0
	for _, s := range series {
		var in []time.Time
		for _, t := range s.Times {
			if !t.Before(start) && !t.After(end) {
				in = append(in, t)
			}
		}
		if len(in) > best {
			best = len(in)
			grid = in
		}
	}
	return grid
}

// holdOnto resamples a series onto the grid by taking the most recent phase
// at or before each grid instant.
func holdOnto(s PhaseSeries, grid []time.Time) []float64 {
	out := make([]float64, len(grid))
	for k, t := range grid {
		// Index of the first sample strictly after t.
		i := sort.Search(len(s.Times), func(j int) bool { return s.Times[j].After(t) })
		if i == 0 {
			out[k] = s.Phase[0]
			continue
		}
		out[k] = s.Phase[i-1]
	}
	return out
}
