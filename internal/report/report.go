// Package report renders estimate results for people: Markdown for the CLI
// and HTML for the web form.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"drafthours/domain/estimate"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders req and its result as a Markdown document
func Markdown(req estimate.Request, res *estimate.Result) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Drafting estimate: %s\n\n", escape(string(res.DocumentType)))
	fmt.Fprintf(&b, "Strategy: **%s**  \nEstimate: `%s`\n\n", res.Strategy, res.ID)

	b.WriteString("## Request\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	row(&b, "Tool", string(req.Tool))
	row(&b, "Revisions", fmt.Sprintf("%d", req.RevisionCount))
	if req.ComplexityClass != "" {
		row(&b, "Complexity", string(req.ComplexityClass))
	}
	row(&b, "Documents", fmt.Sprintf("%d", req.DocumentCount))
	row(&b, "Duration (months)", fmt.Sprintf("%d", req.DurationMonths))
	if len(req.Subtypes) > 0 {
		names := make([]string, len(req.Subtypes))
		for i, s := range req.Subtypes {
			names[i] = string(s)
		}
		row(&b, "Subtypes", strings.Join(names, ", "))
	}
	if req.StartingCondition != "" {
		row(&b, "Starting condition", string(req.StartingCondition))
	}

	b.WriteString("\n## Hours\n\n")
	b.WriteString("| Item | Hours |\n|---|---:|\n")
	row(&b, "Drafting per unit", hours(res.DraftingHoursPerUnit))
	row(&b, "Billed units", fmt.Sprintf("%d", res.BilledUnits))
	row(&b, "Drafting", hours(res.DraftingHours))
	switch {
	case res.ManagementIncluded:
		row(&b, "Management", "included in drafting")
	default:
		row(&b, "Management", hours(res.ManagementHours))
		row(&b, "Headcount", fmt.Sprintf("%d", res.Headcount))
	}
	row(&b, "**Total**", "**"+hours(res.TotalHours)+"**")

	if res.ManagementIncluded {
		b.WriteString("\nThe reference figure for this complexity class already covers project management.\n")
	}
	return b.Bytes()
}

// HTML renders Markdown output as an HTML fragment
func HTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md, p, renderer)
}

func row(b *bytes.Buffer, name, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", name, escape(value))
}

func hours(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// escape keeps table cells intact
func escape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
