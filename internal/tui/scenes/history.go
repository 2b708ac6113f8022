package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/output"
	"github.com/rgehrsitz/fidash/internal/tui/components"
	"github.com/rgehrsitz/fidash/internal/tui/tuimsg"
	"github.com/rgehrsitz/fidash/internal/tui/tuistyles"
)

// maxHistoryRows bounds the snapshot list under the chart
const maxHistoryRows = 8

// HistoryModel charts recorded net-worth snapshots
type HistoryModel struct {
	dashboard *domain.Dashboard
	width     int
	height    int
}

// NewHistoryModel creates a new history scene model
func NewHistoryModel() *HistoryModel {
	return &HistoryModel{}
}

// SetSize updates the model dimensions
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the history scene
func (m *HistoryModel) Update(msg tea.Msg) (*HistoryModel, tea.Cmd) {
	if msg, ok := msg.(tuimsg.DashboardUpdatedMsg); ok {
		m.dashboard = msg.Dashboard
	}
	return m, nil
}

// View renders the history scene
func (m *HistoryModel) View() string {
	if m.dashboard == nil {
		return tuistyles.InfoStyle.Render("Loading portfolio...")
	}
	history := m.dashboard.History
	if len(history) == 0 {
		return tuistyles.SubtitleStyle.Render("No snapshots yet. Press n to record today's net worth.")
	}

	width := 72
	if m.width > 0 {
		width = max(40, m.width-6)
	}

	values := make([]float64, len(history))
	labels := make([]string, len(history))
	for i, p := range history {
		values[i] = p.NetWorth.InexactFloat64()
		labels[i] = p.Date.Format("2006-01")
	}

	var content strings.Builder
	content.WriteString(components.NewASCIIChart("Net worth history").
		AddSeries("Net worth", values, tuistyles.ColorChartLine2).
		WithLabels(labels).
		WithSize(width, 10).
		Render())
	content.WriteString("\n\n")

	if c := m.dashboard.HistoryChange; c != nil {
		up := !c.Delta.IsNegative()
		content.WriteString(components.NewMetricCard("Change since first snapshot", tuistyles.FormatCurrency(c.Delta)).
			WithTrend(up, output.FormatPercentage(c.Percent)).
			RenderCompact())
		content.WriteString("\n\n")
	}

	start := max(0, len(history)-maxHistoryRows)
	for i := len(history) - 1; i >= start; i-- {
		p := history[i]
		content.WriteString(fmt.Sprintf("  %s  %s\n", p.Date.Format("2006-01-02"), tuistyles.FormatCurrency(p.NetWorth)))
	}
	if start > 0 {
		content.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("  ... %d older snapshots", start)))
		content.WriteString("\n")
	}
	return content.String()
}
