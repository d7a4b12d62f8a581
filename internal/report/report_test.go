package report

import (
	"strings"
	"testing"

	"simlm/domain/stats"
)

func sampleReport() *stats.RecoveryReport {
	return &stats.RecoveryReport{
		ScenarioName: "crab_weight",
		Replicates:   200,
		SampleSize:   60,
		ResidualSD:   20,
		Seed:         42,
		Terms: []stats.TermRecovery{
			{Term: "(Intercept)", True: 175, MeanEstimate: 174.2, SDEstimate: 41.1, Bias: -0.8, Coverage: 0.955},
			{Term: "length", True: 2, MeanEstimate: 2.03, SDEstimate: 0.86, Bias: 0.03, Coverage: 0.94},
		},
	}
}

func TestMarkdown_ContainsTermRows(t *testing.T) {
	md := Markdown(sampleReport())

	for _, want := range []string{
		"# Recovery study: crab_weight",
		"Replicates: 200",
		"| Term | True | Mean estimate |",
		"| length | 2 | 2.03 |",
		"94.0%",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestHTML_RendersTable(t *testing.T) {
	out := string(HTML(sampleReport()))

	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected a rendered table, got:\n%s", out)
	}
	if !strings.Contains(out, "<td>length</td>") {
		t.Errorf("expected a length cell, got:\n%s", out)
	}
	if !strings.Contains(out, "crab_weight") {
		t.Errorf("expected scenario name in heading")
	}
}
