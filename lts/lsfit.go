package lts

import (
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// lsFit solves the least squares problem restricted to the given rows
// of the standardized data via QR. A nil rows selects all observations.
func (ws *workset) lsFit(rows []int) ([]float64, error) {
	return lsSolve(ws.x, ws.y, rows)
}

// lsSolve solves min ||y - X z|| over the selected rows via QR. A nil
// rows selects all observations. gonum reports near-singular systems
// through the returned error.
func lsSolve(x [][]float64, y []float64, rows []int) ([]float64, error) {
	m := len(rows)
	if rows == nil {
		m = len(x)
	}
	p := len(x[0])

	a := mat.NewDense(m, p, nil)
	b := mat.NewVecDense(m, nil)
	for k := 0; k < m; k++ {
		i := k
		if rows != nil {
			i = rows[k]
		}
		a.SetRow(k, x[i])
		b.SetVec(k, y[i])
	}

	var qr mat.QR
	qr.Factorize(a)

	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, b); err != nil {
		return nil, err
	}

	z := make([]float64, p)
	for j := range z {
		z[j] = sol.AtVec(j)
	}

	return z, nil
}

// residuals writes y - X*z for the standardized data into dst.
func (ws *workset) residuals(dst, z []float64) {
	for i := 0; i < ws.n; i++ {
		dst[i] = ws.y[i] - vecmath.DotProduct(ws.x[i], z)
	}
}

// rawResiduals returns fitted = X*z and residuals = y - fitted on the
// original, unstandardized data.
func (ws *workset) rawResiduals(z []float64) (fitted, residuals []float64) {
	fitted = make([]float64, ws.n)
	residuals = make([]float64, ws.n)
	for i := 0; i < ws.n; i++ {
		fitted[i] = vecmath.DotProduct(ws.xorig[i], z)
		residuals[i] = ws.yorig[i] - fitted[i]
	}

	return fitted, residuals
}
