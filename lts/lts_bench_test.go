package lts

import (
	"math/rand"
	"testing"
)

func benchmarkSolve(b *testing.B, n int, alpha float64) {
	rng := rand.New(rand.NewSource(1))
	x, y := randomDesign(rng, n, 2)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Solve(x, y, alpha, WithSeed(int64(i))); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve15(b *testing.B)  { benchmarkSolve(b, 15, 0.75) }
func BenchmarkSolve45(b *testing.B)  { benchmarkSolve(b, 45, 0.75) }
func BenchmarkSolve100(b *testing.B) { benchmarkSolve(b, 100, 0.5) }

func BenchmarkRefine(b *testing.B) {
	rng := rand.New(rand.NewSource(2))
	x, y := randomDesign(rng, 45, 2)
	ws, err := newWorkset(x, y, 0.75)
	if err != nil {
		b.Fatal(err)
	}
	s := newSampler(1, ws.n, ws.p)
	z, err := ws.initial(s, 100)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ws.refine(z, 4)
	}
}
