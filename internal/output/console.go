package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/fidash/internal/domain"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")).Width(22)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	tableHeader   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCell     = lipgloss.NewStyle().Padding(0, 1)
)

// ConsoleFormatter renders a styled terminal report
type ConsoleFormatter struct {
	Options
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(d *domain.Dashboard) ([]byte, error) {
	var buf bytes.Buffer
	cur := c.currency()

	fmt.Fprintln(&buf, headingStyle.Render("FINANCIAL DASHBOARD"))
	fmt.Fprintln(&buf)
	line := func(label, value string) {
		fmt.Fprintln(&buf, labelStyle.Render(label)+value)
	}
	line("Net worth", FormatCurrency(d.NetWorth, cur))
	line("Monthly income", FormatCurrency(d.Savings.MonthlyIncome, cur))
	line("Monthly expenses", FormatCurrency(d.Savings.MonthlyExpenses, cur))
	savings := FormatCurrency(d.Savings.MonthlySavings, cur)
	if d.Savings.MonthlySavings.IsNegative() {
		savings = negativeStyle.Render(savings)
	} else {
		savings = positiveStyle.Render(savings)
	}
	line("Monthly savings", savings)
	line("Savings rate", FormatPercentagePtr(d.Savings.SavingsRate))
	line("FI income today", FormatCurrency(d.CurrentFIIncome, cur)+" /yr at "+FormatPercentage(d.FIHorizon.Rate))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, headingStyle.Render("ALLOCATION"))
	if len(d.Allocation.Items) == 0 {
		fmt.Fprintln(&buf, "No assets recorded.")
	} else {
		rows := make([][]string, 0, len(d.Allocation.Items))
		for _, item := range d.Allocation.Items {
			rows = append(rows, []string{
				item.Name,
				FormatCurrency(item.Value, cur),
				FormatPercentage(item.CurrentPercent),
				FormatPercentage(item.TargetPercent.Div(hundred)),
				FormatPercentage(item.Gap),
			})
		}
		fmt.Fprintln(&buf, RenderTable([]string{"Asset", "Value", "Current", "Target", "Gap"}, rows))
		if d.Allocation.ToBuy != nil {
			fmt.Fprintf(&buf, "Next purchase: %s (%s under target)\n", d.Allocation.ToBuy.Name, FormatPercentage(d.Allocation.ToBuy.Gap))
		} else {
			fmt.Fprintln(&buf, "Portfolio is on target.")
		}
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, headingStyle.Render("PROJECTION"))
	for _, l := range AssumptionLines(d.Assumptions, cur) {
		fmt.Fprintf(&buf, "• %s\n", l)
	}
	rows := [][]string{}
	for _, y := range milestoneYears(len(d.Scenarios.Realistic) - 1) {
		row := []string{strconv.Itoa(y)}
		for _, name := range domain.AllScenarios() {
			v, _ := d.Scenarios.Get(name).ValueAt(y)
			row = append(row, FormatCurrency(v, cur))
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(&buf, RenderTable([]string{"Year", "Pessimistic", "Realistic", "Optimistic"}, rows))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, headingStyle.Render("FINANCIAL INDEPENDENCE"))
	line("Annual expenses", FormatCurrency(d.AnnualExpenses, cur))
	line("FI horizon", fiHorizonText(d))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, headingStyle.Render("NET WORTH HISTORY"))
	if len(d.History) == 0 {
		fmt.Fprintln(&buf, "No snapshots yet.")
	} else {
		rows := make([][]string, 0, len(d.History))
		for _, h := range d.History {
			rows = append(rows, []string{h.Date.Format("2006-01-02"), FormatCurrency(h.NetWorth, cur)})
		}
		fmt.Fprintln(&buf, RenderTable([]string{"Date", "Net worth"}, rows))
		if d.HistoryChange != nil {
			fmt.Fprintf(&buf, "Change: %s (%s)\n", FormatCurrency(d.HistoryChange.Delta, cur), FormatPercentage(d.HistoryChange.Percent))
		}
	}
	return buf.Bytes(), nil
}

func fiHorizonText(d *domain.Dashboard) string {
	switch {
	case d.AnnualExpenses.IsZero() || d.AnnualExpenses.IsNegative():
		return "n/a (no expenses recorded)"
	case d.FIHorizon.Reached && d.FIHorizon.Year == 0:
		return "reached today at " + FormatPercentage(d.FIHorizon.Rate)
	case d.FIHorizon.Reached:
		return fmt.Sprintf("year %d at %s", d.FIHorizon.Year, FormatPercentage(d.FIHorizon.Rate))
	default:
		return fmt.Sprintf("not within %d years", len(d.Scenarios.Realistic)-1)
	}
}

// RenderTable draws a bordered table with a bold header row
func RenderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader
			}
			return tableCell
		}).
		String()
}
