package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/output"
	"github.com/rgehrsitz/fidash/internal/tui/components"
	"github.com/rgehrsitz/fidash/internal/tui/tuimsg"
	"github.com/rgehrsitz/fidash/internal/tui/tuistyles"
)

// ProjectionModel charts the three growth scenarios and FI income
type ProjectionModel struct {
	dashboard *domain.Dashboard
	showFI    bool
	width     int
	height    int
}

// NewProjectionModel creates a new projection scene model
func NewProjectionModel() *ProjectionModel {
	return &ProjectionModel{}
}

// SetSize updates the model dimensions
func (m *ProjectionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the projection scene. Tab flips between the
// wealth chart and the FI income chart.
func (m *ProjectionModel) Update(msg tea.Msg) (*ProjectionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tuimsg.DashboardUpdatedMsg:
		m.dashboard = msg.Dashboard
	case tea.KeyMsg:
		if msg.String() == "tab" {
			m.showFI = !m.showFI
		}
	}
	return m, nil
}

func (m *ProjectionModel) chartSize() (int, int) {
	w, h := 72, 14
	if m.width > 0 {
		w = max(40, m.width-6)
	}
	if m.height > 0 {
		h = max(6, m.height-16)
	}
	return w, h
}

// View renders the projection scene
func (m *ProjectionModel) View() string {
	if m.dashboard == nil {
		return tuistyles.InfoStyle.Render("Loading portfolio...")
	}
	w, h := m.chartSize()

	var content strings.Builder
	if m.showFI {
		content.WriteString(FIChart(m.dashboard, w, h))
	} else {
		content.WriteString(ScenarioChart(m.dashboard, w, h))
	}
	content.WriteString("\n\n")
	content.WriteString(FIProgress(m.dashboard, min(50, w-20)))
	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("tab: switch between wealth and FI income charts"))
	return content.String()
}

func yearLabels(s domain.Series) []string {
	labels := make([]string, len(s))
	for i, p := range s {
		labels[i] = fmt.Sprintf("Y%d", p.Year)
	}
	return labels
}

// ScenarioChart plots the pessimistic, realistic and optimistic projections
func ScenarioChart(d *domain.Dashboard, width, height int) string {
	title := fmt.Sprintf("Wealth projection over %d years", d.Assumptions.Years)
	return components.NewASCIIChart(title).
		AddSeries("Pessimistic "+output.FormatPercentage(d.Assumptions.Pessimistic), d.Scenarios.Pessimistic.Values(), tuistyles.ColorChartLine1).
		AddSeries("Realistic "+output.FormatPercentage(d.Assumptions.Realistic), d.Scenarios.Realistic.Values(), tuistyles.ColorChartLine2).
		AddSeries("Optimistic "+output.FormatPercentage(d.Assumptions.Optimistic), d.Scenarios.Optimistic.Values(), tuistyles.ColorChartLine3).
		WithLabels(yearLabels(d.Scenarios.Realistic)).
		WithSize(width, height).
		Render()
}

// FIChart plots sustainable income at each withdrawal rate against annual expenses
func FIChart(d *domain.Dashboard, width, height int) string {
	if len(d.FIIncome) == 0 {
		return tuistyles.InfoStyle.Render("No FI income series")
	}

	colors := []lipgloss.Color{tuistyles.ColorChartLine1, tuistyles.ColorChartLine2, tuistyles.ColorChartLine3}
	chart := components.NewASCIIChart("Sustainable income (realistic growth)")

	for i, ri := range d.FIIncome[0].Incomes {
		points := make([]float64, len(d.FIIncome))
		for j, p := range d.FIIncome {
			if i < len(p.Incomes) {
				points[j] = p.Incomes[i].Income.InexactFloat64()
			}
		}
		chart.AddSeries(output.FormatPercentage(ri.Rate)+" rule", points, colors[i%len(colors)])
	}

	expenses := make([]float64, len(d.FIIncome))
	labels := make([]string, len(d.FIIncome))
	for j, p := range d.FIIncome {
		expenses[j] = p.Expenses.InexactFloat64()
		labels[j] = fmt.Sprintf("Y%d", p.Year)
	}
	chart.AddSeries("Expenses", expenses, tuistyles.ColorChartLine4)

	return chart.WithLabels(labels).WithSize(width, height).Render()
}

// FIProgress shows today's sustainable income as a share of annual expenses
func FIProgress(d *domain.Dashboard, width int) string {
	if !d.AnnualExpenses.IsPositive() {
		return tuistyles.SubtitleStyle.Render("Record expenses to track progress toward financial independence.")
	}
	bar := components.NewProgressBar(d.CurrentFIIncome.InexactFloat64(), d.AnnualExpenses.InexactFloat64()).
		WithWidth(max(10, width)).
		WithLabel("Progress to FI").
		WithCaption(fmt.Sprintf("%s of %s per year", tuistyles.FormatCurrency(d.CurrentFIIncome), tuistyles.FormatCurrency(d.AnnualExpenses)))
	return bar.Render()
}
