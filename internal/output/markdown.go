package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rgehrsitz/fidash/internal/domain"
)

// MarkdownFormatter renders the report as GitHub-flavored markdown
type MarkdownFormatter struct {
	Options
}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(d *domain.Dashboard) ([]byte, error) {
	return []byte(renderMarkdown(d, m.currency())), nil
}

// PrettyFormatter renders the markdown report for the terminal with glamour
type PrettyFormatter struct {
	Options
	// Style is a glamour standard style name; empty picks one from the terminal
	Style string
}

func (p PrettyFormatter) Name() string { return "pretty" }

func (p PrettyFormatter) Format(d *domain.Dashboard) ([]byte, error) {
	width := p.Width
	if width <= 0 {
		width = 100
	}
	style := glamour.WithAutoStyle()
	if p.Style != "" {
		style = glamour.WithStandardStyle(p.Style)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(renderMarkdown(d, p.currency()))
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return []byte(out), nil
}

func mdRow(buf *bytes.Buffer, cells ...string) {
	buf.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}

func mdHeader(buf *bytes.Buffer, cells ...string) {
	mdRow(buf, cells...)
	sep := make([]string, len(cells))
	for i := range sep {
		sep[i] = "---"
	}
	mdRow(buf, sep...)
}

func renderMarkdown(d *domain.Dashboard, cur string) string {
	var buf bytes.Buffer

	buf.WriteString("# Financial Dashboard\n\n")
	fmt.Fprintf(&buf, "- **Net worth:** %s\n", FormatCurrency(d.NetWorth, cur))
	fmt.Fprintf(&buf, "- **Monthly savings:** %s of %s income (%s)\n",
		FormatCurrency(d.Savings.MonthlySavings, cur),
		FormatCurrency(d.Savings.MonthlyIncome, cur),
		FormatPercentagePtr(d.Savings.SavingsRate))
	fmt.Fprintf(&buf, "- **Annual contribution:** %s\n", FormatCurrency(d.AnnualContribution, cur))
	fmt.Fprintf(&buf, "- **FI horizon:** %s\n\n", fiHorizonText(d))

	buf.WriteString("## Allocation\n\n")
	if len(d.Allocation.Items) == 0 {
		buf.WriteString("_No assets recorded._\n\n")
	} else {
		mdHeader(&buf, "Asset", "Value", "Current", "Target", "Gap")
		for _, item := range d.Allocation.Items {
			mdRow(&buf, item.Name, FormatCurrency(item.Value, cur), FormatPercentage(item.CurrentPercent),
				FormatPercentage(item.TargetPercent.Div(hundred)), FormatPercentage(item.Gap))
		}
		buf.WriteString("\n")
		if d.Allocation.ToBuy != nil {
			fmt.Fprintf(&buf, "**Buy next:** %s\n\n", d.Allocation.ToBuy.Name)
		} else {
			buf.WriteString("Portfolio is on target.\n\n")
		}
	}

	buf.WriteString("## Projection\n\n")
	for _, l := range AssumptionLines(d.Assumptions, cur) {
		fmt.Fprintf(&buf, "- %s\n", l)
	}
	buf.WriteString("\n")
	header := []string{"Year", "Pessimistic", "Realistic", "Optimistic"}
	if len(d.FIIncome) > 0 {
		for _, ri := range d.FIIncome[0].Incomes {
			header = append(header, "FI @ "+FormatPercentage(ri.Rate))
		}
	}
	mdHeader(&buf, header...)
	for _, y := range milestoneYears(len(d.Scenarios.Realistic) - 1) {
		row := []string{fmt.Sprint(y)}
		for _, name := range domain.AllScenarios() {
			v, _ := d.Scenarios.Get(name).ValueAt(y)
			row = append(row, FormatCurrency(v, cur))
		}
		if y < len(d.FIIncome) {
			for _, ri := range d.FIIncome[y].Incomes {
				row = append(row, FormatCurrency(ri.Income, cur))
			}
		}
		mdRow(&buf, row...)
	}
	buf.WriteString("\n")

	if len(d.History) > 0 {
		buf.WriteString("## Net Worth History\n\n")
		mdHeader(&buf, "Date", "Net worth")
		for _, h := range d.History {
			mdRow(&buf, h.Date.Format("2006-01-02"), FormatCurrency(h.NetWorth, cur))
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Notes\n\n")
	for _, n := range ModelNotes {
		fmt.Fprintf(&buf, "- %s\n", n)
	}
	return buf.String()
}
