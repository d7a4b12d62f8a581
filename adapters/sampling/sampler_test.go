package sampling

import (
	"math"
	"testing"

	"simlm/domain/model"
)

func TestDraw_DeterministicForFixedSeed(t *testing.T) {
	rule := model.SamplingRule{Family: model.DistNormal, Mean: 48, SD: 3}

	a, err := New(42).Draw(rule, 1000)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	b, err := New(42).Draw(rule, 1000)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d: %v != %v with identical seeds", i, a[i], b[i])
		}
	}

	c, _ := New(43).Draw(rule, 1000)
	same := 0
	for i := range a {
		if a[i] == c[i] {
			same++
		}
	}
	if same == len(a) {
		t.Fatal("different seeds produced identical draws")
	}
}

func TestDraw_NormalMoments(t *testing.T) {
	gen := New(7)
	values, err := gen.Draw(model.SamplingRule{Family: model.DistNormal, Mean: 48, SD: 3}, 20000)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values) - 1)

	if math.Abs(mean-48) > 0.1 {
		t.Errorf("sample mean %.3f too far from 48", mean)
	}
	if math.Abs(math.Sqrt(variance)-3) > 0.1 {
		t.Errorf("sample sd %.3f too far from 3", math.Sqrt(variance))
	}
}

func TestDraw_UniformBounds(t *testing.T) {
	values, err := New(11).Draw(model.SamplingRule{Family: model.DistUniform, Min: -2, Max: 5}, 5000)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	for i, v := range values {
		if v < -2 || v >= 5 {
			t.Fatalf("row %d: %g outside [-2, 5)", i, v)
		}
	}
}

func TestDraw_RejectsInvalidRules(t *testing.T) {
	gen := New(1)

	if _, err := gen.Draw(model.SamplingRule{Family: model.DistNormal, Mean: 0, SD: -1}, 10); err == nil {
		t.Error("expected rejection of negative sd")
	}
	if _, err := gen.Draw(model.SamplingRule{Family: model.DistUniform, Min: 3, Max: 1}, 10); err == nil {
		t.Error("expected rejection of inverted uniform bounds")
	}
	if _, err := gen.Draw(model.SamplingRule{Family: "cauchy"}, 10); err == nil {
		t.Error("expected rejection of unknown family")
	}
	if _, err := gen.Draw(model.SamplingRule{Family: model.DistNormal, SD: 1}, 0); err == nil {
		t.Error("expected rejection of n=0")
	}
}

func TestNormalNoise_ZeroSDIsExactCopy(t *testing.T) {
	mu := []float64{1.5, -2.25, 0, 1e9}
	out := New(3).NormalNoise(mu, 0)
	for i := range mu {
		if out[i] != mu[i] {
			t.Fatalf("row %d: expected exact copy, got %g != %g", i, out[i], mu[i])
		}
	}
}

func TestAssignLabels_Blocks(t *testing.T) {
	labels, err := New(1).AssignLabels(7, []string{"a", "b", "c"}, model.AssignBlocks)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	want := []string{"a", "a", "a", "b", "b", "c", "c"}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("row %d: got %q, want %q (full: %v)", i, labels[i], want[i], labels)
		}
	}
}

func TestAssignLabels_Interleaved(t *testing.T) {
	labels, err := New(1).AssignLabels(6, []string{"a", "b"}, model.AssignInterleaved)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	for i, lab := range labels {
		want := "a"
		if i%2 == 1 {
			want = "b"
		}
		if lab != want {
			t.Fatalf("row %d: got %q, want %q", i, lab, want)
		}
	}
}

func TestAssignLabels_RandomCoversLevels(t *testing.T) {
	labels, err := New(5).AssignLabels(300, []string{"a", "b", "c"}, model.AssignRandom)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	counts := map[string]int{}
	for _, lab := range labels {
		counts[lab]++
	}
	for _, lvl := range []string{"a", "b", "c"} {
		if counts[lvl] < 50 {
			t.Errorf("level %q underrepresented: %d of 300", lvl, counts[lvl])
		}
	}
}

func TestAssignLabels_EmptyLevelsRejected(t *testing.T) {
	if _, err := New(1).AssignLabels(10, nil, model.AssignBlocks); err == nil {
		t.Fatal("expected rejection of empty level set")
	}
}
