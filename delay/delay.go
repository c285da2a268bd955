// Package delay estimates inter-element travel-time differences from
// multichannel array waveforms.
//
// For every unordered channel pair (i < j, the co-array order of
// package geom) the pair's delay is located at the peak of the FFT
// cross-correlation, refined to sub-sample precision by parabolic
// interpolation, and reported together with the normalized peak
// correlation value. The median of those peaks (MdCCM) is the usual
// single-number consistency statistic for an analysis window.
//
// Sign convention: the delay of pair (i, j) is the arrival time at i
// minus the arrival time at j, so delays regress directly against the
// geom co-array rows (xj-xi, yj-yi) to a slowness vector pointing
// toward the source.
package delay

import (
	"errors"
	"fmt"
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

var (
	// ErrTooFewChannels indicates fewer than two input channels.
	ErrTooFewChannels = errors.New("delay: need at least two channels")
	// ErrEmptyChannel indicates an empty input channel.
	ErrEmptyChannel = errors.New("delay: channel is empty")
	// ErrRaggedChannels indicates channels of differing lengths.
	ErrRaggedChannels = errors.New("delay: channels must have equal length")
	// ErrSampleRate indicates a non-positive sample rate.
	ErrSampleRate = errors.New("delay: sample rate must be positive")
)

// Estimates holds per-pair delay estimates for one analysis window.
type Estimates struct {
	// Delays is the travel-time difference in seconds per channel pair
	// in co-array order: arrival at channel i minus arrival at j.
	Delays []float64
	// MaxCorr is the normalized cross-correlation peak per pair,
	// nominally in [-1, 1].
	MaxCorr []float64
}

// Estimate computes pairwise delays and correlation peaks for the given
// channels at sample rate fs.
func Estimate(channels [][]float64, fs float64) (*Estimates, error) {
	if len(channels) < 2 {
		return nil, ErrTooFewChannels
	}
	npts := len(channels[0])
	if npts == 0 {
		return nil, ErrEmptyChannel
	}
	for _, ch := range channels {
		if len(ch) != npts {
			return nil, ErrRaggedChannels
		}
	}
	if fs <= 0 {
		return nil, ErrSampleRate
	}

	fftSize := nextPowerOf2(2*npts - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("delay: failed to create FFT plan: %w", err)
	}

	// Forward transforms, one per channel, reused across pairs.
	spectra := make([][]complex128, len(channels))
	norms := make([]float64, len(channels))
	padded := make([]complex128, fftSize)
	for c, ch := range channels {
		for i := range padded {
			padded[i] = 0
		}
		for i, v := range ch {
			padded[i] = complex(v, 0)
		}

		spectra[c] = make([]complex128, fftSize)
		if err := plan.Forward(spectra[c], padded); err != nil {
			return nil, fmt.Errorf("delay: forward FFT failed: %w", err)
		}
		norms[c] = math.Sqrt(vecmath.DotProduct(ch, ch))
	}

	nch := len(channels)
	est := &Estimates{
		Delays:  make([]float64, 0, nch*(nch-1)/2),
		MaxCorr: make([]float64, 0, nch*(nch-1)/2),
	}

	prod := make([]complex128, fftSize)
	corrTime := make([]complex128, fftSize)
	corr := make([]float64, 2*npts-1)
	for i := 0; i < nch; i++ {
		for j := i + 1; j < nch; j++ {
			// corr(i, j) = IFFT(FFT(i) * conj(FFT(j))), unwrapped from
			// circular to linear lags.
			for k := range prod {
				s := spectra[j][k]
				prod[k] = spectra[i][k] * complex(real(s), -imag(s))
			}
			if err := plan.Inverse(corrTime, prod); err != nil {
				return nil, fmt.Errorf("delay: inverse FFT failed: %w", err)
			}

			// Positive lags sit at the start of the circular result,
			// negative lags wrap around the end.
			for k := 0; k < npts; k++ {
				corr[npts-1+k] = real(corrTime[k])
			}
			for k := 0; k < npts-1; k++ {
				corr[k] = real(corrTime[fftSize-npts+1+k])
			}

			lag, peak := peakLag(corr, npts)
			norm := norms[i] * norms[j]
			if norm > 0 {
				peak /= norm
			}

			est.Delays = append(est.Delays, lag/fs)
			est.MaxCorr = append(est.MaxCorr, peak)
		}
	}

	return est, nil
}

// peakLag locates the correlation maximum and refines it by fitting a
// parabola through the peak and its neighbors. The returned lag is in
// samples; index npts-1 is lag zero.
func peakLag(corr []float64, npts int) (lag, peak float64) {
	best := 0
	for k, v := range corr {
		if v > corr[best] {
			best = k
		}
	}

	lag = float64(best - (npts - 1))
	peak = corr[best]

	if best > 0 && best < len(corr)-1 {
		cm, c0, cp := corr[best-1], corr[best], corr[best+1]
		den := cm - 2*c0 + cp
		if den < 0 {
			delta := 0.5 * (cm - cp) / den
			lag += delta
			peak = c0 - 0.25*(cm-cp)*delta
		}
	}

	return lag, peak
}

// MdCCM returns the median of the per-pair correlation peaks, or NaN
// for an empty input.
func MdCCM(maxcorr []float64) float64 {
	n := len(maxcorr)
	if n == 0 {
		return math.NaN()
	}

	sorted := make([]float64, n)
	copy(sorted, maxcorr)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
