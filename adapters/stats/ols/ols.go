package ols

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"simlm/domain/core"
	"simlm/domain/stats"
)

// InterceptTerm is the name the fitter assigns to the intercept column
const InterceptTerm = "(Intercept)"

// Fitter runs ordinary least squares fits against simulated datasets so a
// scenario's true coefficients can be compared with what a model recovers.
type Fitter struct{}

// NewFitter creates an OLS fitter
func NewFitter() *Fitter {
	return &Fitter{}
}

// Fit regresses y on the given design columns plus an intercept. cols is
// column-major; names label the non-intercept columns in the same order.
// Standard errors, t statistics and two-sided p-values come from the Student's
// t-distribution with n-p residual degrees of freedom.
func (f *Fitter) Fit(y []float64, cols [][]float64, names []string) (*stats.FitResult, error) {
	n := len(y)
	if n == 0 {
		return nil, core.ErrInsufficientData
	}
	if len(cols) != len(names) {
		return nil, core.NewValidationError("design", fmt.Sprintf("%d columns but %d names", len(cols), len(names)))
	}
	p := len(cols) + 1
	if n <= p {
		return nil, fmt.Errorf("%w: n=%d with %d parameters", core.ErrInsufficientData, n, p)
	}
	for i, col := range cols {
		if len(col) != n {
			return nil, core.NewValidationError(names[i], fmt.Sprintf("column has %d rows, response has %d", len(col), n))
		}
	}

	// Assemble X with the intercept in column 0
	X := mat.NewDense(n, p, nil)
	for row := 0; row < n; row++ {
		X.Set(row, 0, 1)
	}
	for j, col := range cols {
		for row := 0; row < n; row++ {
			X.Set(row, j+1, col[row])
		}
	}
	yVec := mat.NewDense(n, 1, append([]float64(nil), y...))

	var qr mat.QR
	qr.Factorize(X)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, yVec); err != nil {
		return nil, fmt.Errorf("design matrix is rank deficient: %w", err)
	}

	// Residual variance
	var fitted mat.Dense
	fitted.Mul(X, &beta)
	rss := 0.0
	meanY := 0.0
	for i := 0; i < n; i++ {
		meanY += y[i]
	}
	meanY /= float64(n)
	tss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.At(i, 0)
		rss += r * r
		d := y[i] - meanY
		tss += d * d
	}
	df := n - p
	sigma2 := rss / float64(df)

	// Covariance of beta: sigma^2 (X'X)^-1
	var xtx, xtxInv mat.Dense
	xtx.Mul(X.T(), X)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("design matrix is singular: %w", err)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	terms := make([]stats.CoefficientEstimate, p)
	for j := 0; j < p; j++ {
		name := InterceptTerm
		if j > 0 {
			name = names[j-1]
		}
		est := beta.At(j, 0)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		t := math.Inf(1)
		pv := 0.0
		if se > 0 {
			t = est / se
			pv = 2 * (1 - tDist.CDF(math.Abs(t)))
		} else if est == 0 {
			t = 0
			pv = 1
		}
		terms[j] = stats.CoefficientEstimate{
			Term:     name,
			Estimate: est,
			StdError: se,
			TValue:   t,
			PValue:   pv,
		}
	}

	r2 := 1.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}
	return &stats.FitResult{
		Terms:      terms,
		ResidualSD: math.Sqrt(sigma2),
		RSquared:   r2,
		SampleSize: n,
		DF:         df,
	}, nil
}
