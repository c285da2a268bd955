package delay

import (
	"testing"

	"github.com/cwbudde/algo-array/internal/testutil"
)

func BenchmarkEstimate(b *testing.B) {
	const fs = 100.0
	channels := make([][]float64, 6)
	for i := range channels {
		channels[i] = testutil.GaussPulse(2048, fs, 10, 0.3, float64(i)/fs)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Estimate(channels, fs); err != nil {
			b.Fatal(err)
		}
	}
}
