package ltsva

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-array/geom"
	"github.com/cwbudde/algo-array/internal/testutil"
	"github.com/cwbudde/algo-array/lts"
)

// synthRecord builds a multichannel record of one plane-wave pulse
// crossing the test array.
func synthRecord(t *testing.T, fs, velocity, bazDeg float64, npts int) ([][]float64, *geom.Array) {
	t.Helper()

	sx, sy := testutil.StationCoords()
	arr, err := geom.NewArray(sx, sy)
	if err != nil {
		t.Fatal(err)
	}

	z := testutil.Slowness(velocity, bazDeg)
	arrivals := testutil.ArrivalTimes(sx, sy, z)

	center := float64(npts) / fs / 2
	data := make([][]float64, len(sx))
	for i := range data {
		data[i] = testutil.GaussPulse(npts, fs, center, 0.4, arrivals[i])
	}

	return data, arr
}

func TestProcess_Errors(t *testing.T) {
	data, arr := synthRecord(t, 50, 0.34, 65, 1024)

	if _, err := Process(data[:3], arr, 50, 0.75); !errors.Is(err, ErrChannelCount) {
		t.Errorf("got %v, want ErrChannelCount", err)
	}
	if _, err := Process(data, arr, 0, 0.75); !errors.Is(err, ErrSampleRate) {
		t.Errorf("got %v, want ErrSampleRate", err)
	}
	if _, err := Process(data, arr, 50, 0.75, WithWindow(0, 0.5)); !errors.Is(err, ErrWindowParams) {
		t.Errorf("got %v, want ErrWindowParams", err)
	}
	if _, err := Process(data, arr, 50, 0.75, WithWindow(10, 1.0)); !errors.Is(err, ErrWindowParams) {
		t.Errorf("got %v, want ErrWindowParams", err)
	}
	if _, err := Process(data, arr, 50, 0.75, WithWindow(60, 0.5)); !errors.Is(err, ErrRecordTooShort) {
		t.Errorf("got %v, want ErrRecordTooShort", err)
	}
}

func TestProcess_WindowBookkeeping(t *testing.T) {
	data, arr := synthRecord(t, 100, 0.34, 65, 1000)

	// 1 s windows, 50 % overlap: starts 0, 50, ..., 900.
	w, err := Process(data, arr, 100, 0.75, WithWindow(1, 0.5))
	if err != nil {
		t.Fatal(err)
	}

	if len(w.Time) != 19 {
		t.Fatalf("got %d windows, want 19", len(w.Time))
	}
	for _, s := range [][]float64{w.Velocity, w.Bazimuth, w.MdCCM} {
		if len(s) != len(w.Time) {
			t.Fatalf("ragged result slices: %d vs %d", len(s), len(w.Time))
		}
	}
	if len(w.Flagged) != len(w.Time) {
		t.Fatalf("ragged flag slices: %d vs %d", len(w.Flagged), len(w.Time))
	}

	testutil.RequireNearlyEqual(t, w.Time[0], 0.5, 1e-12)
	testutil.RequireNearlyEqual(t, w.Time[1], 1.0, 1e-12)
}

func TestProcess_RecoversPlaneWave(t *testing.T) {
	const (
		fs  = 50.0
		vel = 0.34
		baz = 65.0
	)
	data, arr := synthRecord(t, fs, vel, baz, 1024)

	// One window covering the whole pulse.
	w, err := Process(data, arr, fs, 0.75,
		WithWindow(20, 0.5),
		WithLTSOptions(lts.WithSeed(1)),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Time) == 0 {
		t.Fatal("no analysis windows")
	}

	if math.IsNaN(w.Velocity[0]) {
		t.Fatal("pulse window failed to fit")
	}
	testutil.RequireNearlyEqual(t, w.Velocity[0], vel, vel*0.05)
	if diff := math.Abs(math.Mod(w.Bazimuth[0]-baz+180, 360) - 180); diff > 3 {
		t.Errorf("bazimuth %v, want within 3 deg of %v", w.Bazimuth[0], baz)
	}
	if w.MdCCM[0] < 0.9 {
		t.Errorf("MdCCM %v, want near 1", w.MdCCM[0])
	}
	if len(w.Flagged[0]) != arr.NumPairs() {
		t.Errorf("flag count %d, want %d", len(w.Flagged[0]), arr.NumPairs())
	}
}

func TestProcess_FailedWindowsCarryNaN(t *testing.T) {
	sx, sy := testutil.StationCoords()
	arr, err := geom.NewArray(sx, sy)
	if err != nil {
		t.Fatal(err)
	}

	// Identical channels give all-zero delays, which the fit rejects as
	// a degenerate response; the run must keep going.
	sig := testutil.GaussPulse(512, 50, 5, 0.4, 0)
	data := make([][]float64, len(sx))
	for i := range data {
		data[i] = sig
	}

	w, err := Process(data, arr, 50, 0.75, WithWindow(5, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Time) == 0 {
		t.Fatal("no analysis windows")
	}
	for i := range w.Time {
		if !math.IsNaN(w.Velocity[i]) || !math.IsNaN(w.Bazimuth[i]) {
			t.Errorf("window %d: got %v/%v, want NaN", i, w.Velocity[i], w.Bazimuth[i])
		}
		if w.Flagged[i] != nil {
			t.Errorf("window %d: flags %v, want nil", i, w.Flagged[i])
		}
	}
}

func TestProcess_Calibration(t *testing.T) {
	data, arr := synthRecord(t, 50, 0.34, 65, 1024)

	plain, err := Process(data, arr, 50, 0.75,
		WithWindow(20, 0.5), WithLTSOptions(lts.WithSeed(1)))
	if err != nil {
		t.Fatal(err)
	}
	scaled, err := Process(data, arr, 50, 0.75,
		WithWindow(20, 0.5), WithCalibration(4.77e-5),
		WithLTSOptions(lts.WithSeed(1)))
	if err != nil {
		t.Fatal(err)
	}

	// Delays are amplitude invariant, so calibration must not move the
	// solution.
	testutil.RequireNearlyEqual(t, scaled.Velocity[0], plain.Velocity[0], 1e-6)
	testutil.RequireNearlyEqual(t, scaled.Bazimuth[0], plain.Bazimuth[0], 1e-4)
}
