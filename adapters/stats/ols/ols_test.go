package ols

import (
	"math"
	"testing"
)

func TestFit_ExactLineIsRecoveredExactly(t *testing.T) {
	n := 50
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = 3 + 2*x[i]
	}

	fit, err := NewFitter().Fit(y, [][]float64{x}, []string{"x"})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	b0, _ := fit.Estimate(InterceptTerm)
	b1, _ := fit.Estimate("x")
	if math.Abs(b0.Estimate-3) > 1e-8 {
		t.Errorf("intercept %v, want 3", b0.Estimate)
	}
	if math.Abs(b1.Estimate-2) > 1e-8 {
		t.Errorf("slope %v, want 2", b1.Estimate)
	}
	if fit.RSquared < 1-1e-10 {
		t.Errorf("R^2 %v, want 1 for a noiseless line", fit.RSquared)
	}
	if fit.ResidualSD > 1e-6 {
		t.Errorf("residual sd %v, want ~0", fit.ResidualSD)
	}
}

func TestFit_KnownSmallRegression(t *testing.T) {
	// y = 1 + 0.5 x with one point perturbed; hand-checkable via normal equations
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 1.5, 2, 2.5, 4}

	fit, err := NewFitter().Fit(y, [][]float64{x}, []string{"x"})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	// slope = Sxy/Sxx = 7/10, intercept = ybar - slope*xbar = 2.2 - 0.7*2 = 0.8
	b0, _ := fit.Estimate(InterceptTerm)
	b1, _ := fit.Estimate("x")
	if math.Abs(b1.Estimate-0.7) > 1e-9 {
		t.Errorf("slope %v, want 0.7", b1.Estimate)
	}
	if math.Abs(b0.Estimate-0.8) > 1e-9 {
		t.Errorf("intercept %v, want 0.8", b0.Estimate)
	}
	if fit.DF != 3 {
		t.Errorf("df %d, want 3", fit.DF)
	}
	if b1.StdError <= 0 {
		t.Errorf("expected positive std error, got %v", b1.StdError)
	}
	if b1.PValue < 0 || b1.PValue > 1 {
		t.Errorf("p-value %v outside [0,1]", b1.PValue)
	}
}

func TestFit_RejectsDegenerateInput(t *testing.T) {
	f := NewFitter()

	if _, err := f.Fit(nil, nil, nil); err == nil {
		t.Error("expected rejection of empty response")
	}
	// n <= parameters
	if _, err := f.Fit([]float64{1, 2}, [][]float64{{1, 2}}, []string{"x"}); err == nil {
		t.Error("expected rejection when n <= p")
	}
	// column/name mismatch
	if _, err := f.Fit([]float64{1, 2, 3}, [][]float64{{1, 2, 3}}, []string{"x", "z"}); err == nil {
		t.Error("expected rejection of name/column mismatch")
	}
	// ragged column
	if _, err := f.Fit([]float64{1, 2, 3}, [][]float64{{1, 2}}, []string{"x"}); err == nil {
		t.Error("expected rejection of short column")
	}
}
