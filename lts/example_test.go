package lts_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-array/lts"
)

// ExampleSolve fits a noiseless plane wave crossing a three-station
// array and decodes its velocity and back-azimuth.
func ExampleSolve() {
	// Co-array rows (dx, dy) in km for all station pairs.
	x := [][]float64{
		{0.1, 0.0}, {0.0, 0.1}, {-0.1, 0.1},
		{0.15, 0.05}, {-0.05, 0.2}, {0.1, -0.12},
		{0.2, 0.07},
	}

	// Delays of a 0.34 km/s wave arriving from 65 degrees.
	v, baz := 0.34, 65.0
	sx := math.Sin(baz*math.Pi/180) / v
	sy := math.Cos(baz*math.Pi/180) / v
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = row[0]*sx + row[1]*sy
	}

	res, err := lts.Solve(x, y, 0.75)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("velocity %.2f km/s\n", res.Velocity)
	fmt.Printf("back-azimuth %.1f deg\n", res.Bazimuth)
	fmt.Printf("exact fit: %v\n", res.ExactFit)
	// Output:
	// velocity 0.34 km/s
	// back-azimuth 65.0 deg
	// exact fit: true
}
