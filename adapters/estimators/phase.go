package estimators

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/dsp/fourier"

	"syncscore/domain/score"
)

// ExtractPhase converts a validated layer signal into instantaneous phase
// values in (-pi, pi], one per sample, via the FFT analytic signal. The input
// is never mutated. Applied to a pure sinusoid with an integer number of
// cycles, the recovered phase matches the true phase to numerical tolerance.
func ExtractPhase(sig score.LayerSignal) ([]float64, error) {
	if err := score.ValidateSignal(sig); err != nil {
		return nil, err
	}
	return phasesOf(sig.Values()), nil
}

// phasesOf computes analytic-signal phases for a value sequence that has
// already passed validation.
func phasesOf(values []float64) []float64 {
	centered := make([]float64, len(values))
	mean, _ := stats.Mean(values)
	for i, v := range values {
		centered[i] = v - mean
	}

	analytic := analyticSignal(centered)
	phases := make([]float64, len(analytic))
	for i, c := range analytic {
		phases[i] = math.Atan2(imag(c), real(c))
	}
	return phases
}

// analyticSignal builds the Hilbert analytic signal: forward FFT, suppress
// negative frequencies, double the positive ones, inverse FFT.
func analyticSignal(x []float64) []complex128 {
	n := len(x)
	fft := fourier.NewCmplxFFT(n)

	buf := make([]complex128, n)
	for i, v := range x {
		buf[i] = complex(v, 0)
	}
	coeff := fft.Coefficients(nil, buf)

	// DC (and Nyquist for even n) stay as-is; positive frequencies double,
	// negative frequencies vanish.
	for i := 1; i < (n+1)/2; i++ {
		coeff[i] *= 2
	}
	for i := n/2 + 1; i < n; i++ {
		coeff[i] = 0
	}

	seq := fft.Sequence(nil, coeff)
	// gonum's round trip is unnormalized: scale by 1/n.
	scale := complex(1/float64(n), 0)
	for i := range seq {
		seq[i] *= scale
	}
	return seq
}
