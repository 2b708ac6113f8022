package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/fidash/internal/tui/tuistyles"
)

func TestASCIIChart_Render(t *testing.T) {
	chart := NewASCIIChart("Projection").
		AddSeries("Pessimistic", []float64{100, 110, 120}, tuistyles.ColorChartLine1).
		AddSeries("Optimistic", []float64{100, 130, 170}, tuistyles.ColorChartLine3).
		WithLabels([]string{"Y0", "Y1", "Y2"}).
		WithSize(40, 8)

	out := chart.Render()

	assert.Contains(t, out, "Projection", "Should render the title")
	assert.Contains(t, out, "Legend:", "Should render a legend for several series")
	assert.Contains(t, out, "Pessimistic")
	assert.Contains(t, out, "●", "Should plot the first series")
	assert.Contains(t, out, "■", "Should plot the second series")
	assert.Contains(t, out, "Y2", "Should label the last year")
}

func TestASCIIChart_EdgeCases(t *testing.T) {
	empty := NewASCIIChart("Empty")
	assert.Contains(t, empty.Render(), "No data to display")

	noPoints := NewASCIIChart("Nothing").AddSeries("a", nil, tuistyles.ColorChartLine1)
	assert.Contains(t, noPoints.Render(), "No data to display")

	assert.NotPanics(t, func() {
		out := NewASCIIChart("").AddSeries("flat", []float64{5, 5, 5}, tuistyles.ColorChartLine1).Render()
		assert.Contains(t, out, "●")
	}, "Should handle a flat series")

	assert.NotPanics(t, func() {
		out := NewASCIIChart("").AddSeries("one", []float64{42}, tuistyles.ColorChartLine1).WithSize(1, 1).Render()
		assert.Contains(t, out, "●")
	}, "Should handle a single point and a tiny size")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "$1.5M", formatChartValue(1500000))
	assert.Equal(t, "$250K", formatChartValue(250000))
	assert.Equal(t, "$999", formatChartValue(999))
	assert.Equal(t, "$-2K", formatChartValue(-2000))
}

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Net Worth", "$200,000.00").
		WithTrend(true, "+$20,000.00").
		WithDescription("since 2024-01-01")

	out := card.Render()
	assert.Contains(t, out, "Net Worth")
	assert.Contains(t, out, "$200,000.00")
	assert.Contains(t, out, "▲ +$20,000.00")
	assert.Contains(t, out, "since 2024-01-01")

	compact := NewMetricCard("Savings", "$100.00").WithTrend(false, "-5%").RenderCompact()
	assert.Contains(t, compact, "Savings:")
	assert.Contains(t, compact, "▼ -5%")
	assert.NotContains(t, compact, "╭", "Should not draw a border")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 3))

	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}
	grid := MetricGrid(cards, 2)
	assert.Contains(t, grid, "A")
	assert.Contains(t, grid, "C")
	assert.Greater(t, strings.Count(grid, "╭"), 2, "Should render every card")
}

func TestProgressBar(t *testing.T) {
	bar := NewProgressBar(8000, 32000).WithWidth(20).WithLabel("FI Progress").WithCaption("$8,000 of $32,000")

	assert.InDelta(t, 25.0, bar.Percentage(), 0.001)
	assert.False(t, bar.IsComplete())

	out := bar.Render()
	assert.Contains(t, out, "FI Progress")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, strings.Repeat("█", 5))
	assert.Contains(t, out, "$8,000 of $32,000")

	over := NewProgressBar(50, 40).WithWidth(10)
	assert.True(t, over.IsComplete())
	assert.Contains(t, over.Render(), strings.Repeat("█", 10))

	none := NewProgressBar(10, 0)
	assert.Zero(t, none.Percentage(), "Should not divide by a zero goal")
}

func TestSpinner(t *testing.T) {
	s := NewSpinner().WithMessage("Saving")
	first := s.Render()
	s.Next()
	assert.NotEqual(t, first, s.Render())
	assert.Contains(t, first, "Saving")
}
