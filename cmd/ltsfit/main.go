// Command ltsfit runs a robust plane-wave fit on co-array delay data.
//
// Usage:
//
//	ltsfit [flags] file.csv
//
// The input CSV holds one co-array observation per row as
// "dx,dy,delay": the sensor-pair coordinate difference (km) and the
// measured travel-time difference (s). A header row is skipped when its
// first field is not numeric. Reading from stdin works with "-".
//
// Examples:
//
//	ltsfit delays.csv
//	ltsfit -alpha 0.5 -seed 42 delays.csv
//	ltsfit -alpha 0.75 -trials 1000 -workers 4 delays.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-array/lts"
)

func main() {
	alpha := flag.Float64("alpha", 0.75, "trimming fraction in [0.5, 1.0]")
	seed := flag.Int64("seed", 0, "pseudo-random seed")
	trials := flag.Int("trials", 500, "random starts in the coarse search")
	workers := flag.Int("workers", 1, "goroutines for the coarse search")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ltsfit [flags] file.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}

	x, y, err := readObservations(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "ltsfit:", err)
		os.Exit(1)
	}

	res, err := lts.Solve(x, y, *alpha,
		lts.WithSeed(*seed),
		lts.WithTrials(*trials),
		lts.WithWorkers(*workers),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ltsfit:", err)
		os.Exit(1)
	}

	printResult(os.Stdout, x, y, res)
}

// readObservations loads dx,dy,delay rows from path ("-" for stdin).
func readObservations(path string) ([][]float64, []float64, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		in = f
	}

	r := csv.NewReader(in)
	r.FieldsPerRecord = 3

	var (
		x [][]float64
		y []float64
	)
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		dx, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			if line == 1 {
				// Header row.
				continue
			}
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		dy, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		d, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}

		x = append(x, []float64{dx, dy})
		y = append(y, d)
	}

	return x, y, nil
}

func printResult(out io.Writer, x [][]float64, y []float64, res *lts.Result) {
	fmt.Fprintf(out, "velocity:    %.4f km/s\n", res.Velocity)
	fmt.Fprintf(out, "bazimuth:    %.2f deg\n", res.Bazimuth)
	fmt.Fprintf(out, "slowness:    [%.6f, %.6f] s/km\n",
		res.Coefficients[0], res.Coefficients[1])
	fmt.Fprintf(out, "scale:       %.6g\n", res.Scale)
	fmt.Fprintf(out, "rsquared:    %.4f\n", res.Rsquared)
	if res.ExactFit {
		fmt.Fprintln(out, "exact fit")
	}
	if res.RankDeficient {
		fmt.Fprintln(out, "warning: design matrix is rank deficient")
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "row\tdx\tdy\tdelay\tresidual\tkept")
	for i := range y {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.6f\t%.6f\t%v\n",
			i, x[i][0], x[i][1], y[i], res.Residuals[i], res.Weights[i])
	}
	w.Flush()
}
