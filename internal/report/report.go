// Package report renders a persisted project as a human-readable summary.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"ecodesign/domain/project"
)

// Markdown builds the project summary document.
func Markdown(record *project.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Design Study %s\n\n", record.ID.String())
	fmt.Fprintf(&b, "Generated %s\n\n", record.CreatedAt.Format("2006-01-02 15:04 UTC"))

	b.WriteString("## Constraints\n\n")
	c := record.Constraints
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Floor area | %d m² |\n", c.Area)
	fmt.Fprintf(&b, "| Budget fraction | %d / 100 |\n", c.Budget)
	fmt.Fprintf(&b, "| Climate zone | %s |\n", c.Climate)
	fmt.Fprintf(&b, "| Priority | %s |\n\n", c.Priority)

	b.WriteString("## Alternatives\n\n")
	for _, d := range record.Designs {
		fmt.Fprintf(&b, "### %s\n\n", d.Name)
		if d.Strategy != "" {
			fmt.Fprintf(&b, "%s\n\n", d.Strategy)
		}
		a := d.Attributes
		fmt.Fprintf(&b, "- Solar capacity: %.2f kW\n", a.SolarCapacityKW)
		fmt.Fprintf(&b, "- Insulation: R-%.1f\n", a.InsulationRValue)
		fmt.Fprintf(&b, "- Water recycling: %.1f%%\n", a.WaterRecyclingPct)
		fmt.Fprintf(&b, "- Green materials: %.1f%%\n", a.GreenMaterialsPct)
		if d.Metrics != nil {
			m := d.Metrics
			fmt.Fprintf(&b, "- Metrics: energy %.1f, water %.1f, carbon %.1f\n", m.EnergyEfficiency, m.WaterEfficiency, m.CarbonFootprint)
		}
		if d.MLPredictedCost != nil {
			fmt.Fprintf(&b, "- Estimated cost: $%d\n", *d.MLPredictedCost)
		}
		b.WriteString("\n")
	}

	if record.ML != nil {
		if len(record.ML.Rankings) > 0 {
			b.WriteString("## Model Ranking\n\n")
			for i, entry := range record.ML.Rankings {
				fmt.Fprintf(&b, "%d. %s (score %.2f)\n", i+1, entry.ID.Name(), entry.MLScore)
			}
			b.WriteString("\n")
		}
		if rec := record.ML.Recommendation; rec != nil {
			b.WriteString("## Recommendation\n\n")
			if rec.RecommendedDesign != nil {
				fmt.Fprintf(&b, "Similar past projects favor **%s** (confidence %.0f%%).\n",
					rec.RecommendedDesign.Name(), rec.Confidence*100)
			} else {
				b.WriteString("No sufficiently similar past projects were found.\n")
			}
		}
	}

	return b.String()
}

// HTML renders the markdown summary to an HTML fragment.
func HTML(record *project.Record) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(record)), p, renderer)
}
