// Package ltsva drives robust velocity/back-azimuth estimation over a
// continuous multichannel array recording.
//
// The record is cut into overlapping fixed-length windows; each window
// runs delay estimation across all channel pairs followed by a trimmed
// least squares fit of the plane-wave slowness vector. The driver owns
// all time-axis bookkeeping and returns plain per-window arrays;
// rendering is up to the caller.
package ltsva

import (
	"errors"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-array/delay"
	"github.com/cwbudde/algo-array/geom"
	"github.com/cwbudde/algo-array/lts"
)

var (
	// ErrChannelCount indicates the channel count does not match the
	// array geometry.
	ErrChannelCount = errors.New("ltsva: channel count does not match station count")
	// ErrRecordTooShort indicates the record is shorter than one
	// analysis window.
	ErrRecordTooShort = errors.New("ltsva: record shorter than one window")
	// ErrSampleRate indicates a non-positive sample rate.
	ErrSampleRate = errors.New("ltsva: sample rate must be positive")
	// ErrWindowParams indicates a non-positive window length or an
	// overlap outside [0, 1).
	ErrWindowParams = errors.New("ltsva: invalid window length or overlap")
)

// Config holds the windowing parameters.
type Config struct {
	// WindowLen is the analysis window length in seconds.
	WindowLen float64
	// Overlap is the fractional overlap between consecutive windows,
	// in [0, 1).
	Overlap float64
	// Calibration scales the raw samples into physical units; zero or
	// one leaves the data unchanged.
	Calibration float64
	// LTSOptions is passed through to every lts.Solve call.
	LTSOptions []lts.Option
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns 30 s windows with 50 % overlap.
func DefaultConfig() Config {
	return Config{
		WindowLen: 30,
		Overlap:   0.5,
	}
}

// WithWindow sets the window length in seconds and the fractional
// overlap.
func WithWindow(lengthSec, overlap float64) Option {
	return func(cfg *Config) {
		cfg.WindowLen = lengthSec
		cfg.Overlap = overlap
	}
}

// WithCalibration sets a multiplicative calibration applied to every
// sample before processing.
func WithCalibration(calib float64) Option {
	return func(cfg *Config) {
		cfg.Calibration = calib
	}
}

// WithLTSOptions forwards options to the per-window lts.Solve calls.
func WithLTSOptions(opts ...lts.Option) Option {
	return func(cfg *Config) {
		cfg.LTSOptions = opts
	}
}

// Windows collects the per-window results of one Process run. Windows
// whose fit failed (data spikes, dead channels) carry NaN entries and a
// nil flag slice; the run itself keeps going.
type Windows struct {
	// Time is the window-center time in seconds from record start.
	Time []float64
	// Velocity and Bazimuth are the decoded plane-wave parameters.
	Velocity []float64
	Bazimuth []float64
	// MdCCM is the median cross-correlation maximum of the window.
	MdCCM []float64
	// Flagged holds the per-pair inlier weights of the window's fit.
	Flagged [][]bool
}

// Process runs windowed delay estimation and trimmed plane-wave fits
// over the record. data holds one slice per channel, in the station
// order of arr; alpha is the LTS trimming fraction.
func Process(data [][]float64, arr *geom.Array, fs, alpha float64, opts ...Option) (*Windows, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(data) != arr.Stations() {
		return nil, ErrChannelCount
	}
	if fs <= 0 {
		return nil, ErrSampleRate
	}
	if cfg.WindowLen <= 0 || cfg.Overlap < 0 || cfg.Overlap >= 1 {
		return nil, ErrWindowParams
	}

	npts := len(data[0])
	winlen := int(cfg.WindowLen * fs)
	if winlen < 2 || npts < winlen {
		return nil, ErrRecordTooShort
	}
	step := int(float64(winlen) * (1 - cfg.Overlap))
	if step < 1 {
		step = 1
	}

	channels := data
	if cfg.Calibration != 0 && cfg.Calibration != 1 {
		channels = make([][]float64, len(data))
		for c, ch := range data {
			calibrated := make([]float64, len(ch))
			vecmath.ScaleBlock(calibrated, ch, cfg.Calibration)
			channels[c] = calibrated
		}
	}

	coarray := arr.Coarray()

	out := &Windows{}
	segment := make([][]float64, len(channels))
	for start := 0; start+winlen <= npts; start += step {
		for c, ch := range channels {
			segment[c] = ch[start : start+winlen]
		}

		out.Time = append(out.Time, (float64(start)+float64(winlen)/2)/fs)
		est, err := delay.Estimate(segment, fs)
		if err != nil {
			out.appendFailed()
			continue
		}

		res, err := lts.Solve(coarray, est.Delays, alpha, cfg.LTSOptions...)
		if err != nil {
			out.appendFailed()
			continue
		}

		out.Velocity = append(out.Velocity, res.Velocity)
		out.Bazimuth = append(out.Bazimuth, res.Bazimuth)
		out.MdCCM = append(out.MdCCM, delay.MdCCM(est.MaxCorr))
		out.Flagged = append(out.Flagged, res.Weights)
	}

	return out, nil
}

// appendFailed records a window whose estimation failed.
func (w *Windows) appendFailed() {
	w.Velocity = append(w.Velocity, math.NaN())
	w.Bazimuth = append(w.Bazimuth, math.NaN())
	w.MdCCM = append(w.MdCCM, math.NaN())
	w.Flagged = append(w.Flagged, nil)
}
