package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/output"
	"github.com/rgehrsitz/fidash/internal/tui/components"
	"github.com/rgehrsitz/fidash/internal/tui/tuimsg"
	"github.com/rgehrsitz/fidash/internal/tui/tuistyles"
)

var hundred = decimal.NewFromInt(100)

// DashboardModel is the home scene: headline metrics and the allocation table
type DashboardModel struct {
	dashboard *domain.Dashboard
	width     int
	height    int
}

// NewDashboardModel creates a new dashboard scene model
func NewDashboardModel() *DashboardModel {
	return &DashboardModel{}
}

// SetSize updates the model dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the dashboard scene
func (m *DashboardModel) Update(msg tea.Msg) (*DashboardModel, tea.Cmd) {
	if msg, ok := msg.(tuimsg.DashboardUpdatedMsg); ok {
		m.dashboard = msg.Dashboard
	}
	return m, nil
}

// View renders the dashboard scene
func (m *DashboardModel) View() string {
	if m.dashboard == nil {
		return tuistyles.InfoStyle.Render("Loading portfolio...")
	}
	d := m.dashboard

	var content strings.Builder
	content.WriteString(MetricCards(d, m.columns()))
	content.WriteString("\n\n")
	content.WriteString(AllocationTable(d))
	return content.String()
}

func (m *DashboardModel) columns() int {
	if m.width <= 0 {
		return 3
	}
	return max(1, min(4, m.width/28))
}

// MetricCards renders the headline figures of a dashboard
func MetricCards(d *domain.Dashboard, columns int) string {
	netWorth := components.NewMetricCard("Net Worth", tuistyles.FormatCurrency(d.NetWorth))
	if d.HistoryChange != nil {
		change := d.HistoryChange.Delta
		sign := "+"
		if change.IsNegative() {
			sign = ""
		}
		netWorth.WithTrend(!change.IsNegative(), sign+tuistyles.FormatCurrency(change)).
			WithDescription("since " + d.HistoryChange.From.Date.Format("2006-01-02"))
	}

	savings := components.NewMetricCard("Monthly Savings", tuistyles.FormatCurrency(d.Savings.MonthlySavings)).
		WithDescription("rate " + output.FormatPercentagePtr(d.Savings.SavingsRate))
	if d.Savings.MonthlySavings.IsNegative() {
		savings.WithTrend(false, "spending exceeds income")
	}

	fiIncome := components.NewMetricCard("FI Income Today", tuistyles.FormatCurrency(d.CurrentFIIncome)).
		WithDescription(fmt.Sprintf("at %s withdrawal", output.FormatPercentage(d.FIHorizon.Rate)))

	horizon := "not within horizon"
	if d.FIHorizon.Reached {
		horizon = fmt.Sprintf("year %d", d.FIHorizon.Year)
	}
	if !d.AnnualExpenses.IsPositive() {
		horizon = "no expenses recorded"
	}
	fiCard := components.NewMetricCard("FI Horizon", horizon).
		WithDescription("expenses " + tuistyles.FormatCurrency(d.AnnualExpenses) + "/yr")

	contribution := components.NewMetricCard("Contribution", tuistyles.FormatCurrency(d.AnnualContribution)+"/yr").
		WithDescription(fmt.Sprintf("%s %s for %d years",
			tuistyles.FormatCurrency(d.Assumptions.ContributionAmount),
			d.Assumptions.ContributionFrequency,
			d.Assumptions.Years))

	final := "n/a"
	if last, ok := d.Scenarios.Realistic.Final(); ok {
		final = tuistyles.FormatCurrency(last.Value)
	}
	projected := components.NewMetricCard("Projected (realistic)", final).
		WithDescription("growth " + output.FormatPercentage(d.Assumptions.Realistic))

	return components.MetricGrid([]*components.MetricCard{netWorth, savings, fiIncome, fiCard, contribution, projected}, columns)
}

// AllocationTable renders current against target allocation with the rebalance hint
func AllocationTable(d *domain.Dashboard) string {
	if len(d.Allocation.Items) == 0 {
		return tuistyles.SubtitleStyle.Render("No assets yet. Add one with: fidash asset add <name> <value> <target%>")
	}

	toBuy := ""
	if d.Allocation.ToBuy != nil {
		toBuy = d.Allocation.ToBuy.ID
	}

	rows := make([][]string, 0, len(d.Allocation.Items))
	for _, item := range d.Allocation.Items {
		marker := ""
		if item.ID == toBuy {
			marker = "◀ buy"
		}
		rows = append(rows, []string{
			item.Name,
			tuistyles.FormatCurrency(item.Value),
			output.FormatPercentage(item.CurrentPercent),
			output.FormatPercentage(item.TargetPercent.Div(hundred)),
			output.FormatPercentage(item.Gap),
			marker,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)).
		Headers("Asset", "Value", "Current", "Target", "Gap", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tuistyles.TableHeaderStyle
			}
			if row >= 0 && row < len(rows) && rows[row][5] != "" {
				return tuistyles.TableHighlightStyle
			}
			return tuistyles.TableCellStyle
		})

	return tuistyles.TitleStyle.Render("Allocation") + "\n" + t.Render()
}
