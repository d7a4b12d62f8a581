package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"simlm/domain/stats"
)

// Markdown renders a recovery report as a markdown document with a
// true-versus-fitted coefficient table.
func Markdown(r *stats.RecoveryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Recovery study: %s\n\n", r.ScenarioName)
	fmt.Fprintf(&b, "- Replicates: %d\n", r.Replicates)
	fmt.Fprintf(&b, "- Sample size: %d\n", r.SampleSize)
	fmt.Fprintf(&b, "- Residual sd: %g\n", r.ResidualSD)
	fmt.Fprintf(&b, "- Base seed: %d\n\n", r.Seed)

	b.WriteString("| Term | True | Mean estimate | SD | Bias | 2SE coverage |\n")
	b.WriteString("|------|------|---------------|----|------|--------------|\n")
	for _, t := range r.Terms {
		fmt.Fprintf(&b, "| %s | %.4g | %.4g | %.4g | %+.4g | %.1f%% |\n",
			t.Term, t.True, t.MeanEstimate, t.SDEstimate, t.Bias, t.Coverage*100)
	}
	b.WriteString("\n")
	return b.String()
}

// HTML renders the markdown report to HTML
func HTML(r *stats.RecoveryReport) []byte {
	md := []byte(Markdown(r))
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
