package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fidash/internal/tui/tuistyles"
)

// ProgressBar displays how far a value is toward a goal
type ProgressBar struct {
	Ratio       float64 // 1 is complete; values above 1 overflow the goal
	Width       int
	Label       string
	Caption     string // shown after the bar, e.g. "$8,000 of $34,200"
	ShowPercent bool
}

// NewProgressBar creates a progress bar for current out of goal. A goal of
// zero or less yields an empty bar.
func NewProgressBar(current, goal float64) *ProgressBar {
	ratio := 0.0
	if goal > 0 {
		ratio = current / goal
	}
	if ratio < 0 {
		ratio = 0
	}
	return &ProgressBar{
		Ratio:       ratio,
		Width:       40,
		ShowPercent: true,
	}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithCaption sets the text after the bar
func (p *ProgressBar) WithCaption(caption string) *ProgressBar {
	p.Caption = caption
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Percentage returns the completion percentage
func (p *ProgressBar) Percentage() float64 {
	return p.Ratio * 100
}

// IsComplete returns true if progress is at 100%
func (p *ProgressBar) IsComplete() bool {
	return p.Ratio >= 1
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Bold(true)
		content.WriteString(labelStyle.Render(p.Label))
		content.WriteString("\n")
	}

	filled := int(float64(p.Width) * p.Ratio)
	if filled > p.Width {
		filled = p.Width
	}
	if filled < 0 {
		filled = 0
	}
	empty := p.Width - filled

	barColor := tuistyles.ColorInfo
	if p.IsComplete() {
		barColor = tuistyles.ColorSuccess
	}
	barStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("]")

	var stats []string
	if p.ShowPercent {
		percentStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorPrimary).
			Bold(true)
		stats = append(stats, percentStyle.Render(fmt.Sprintf("%.1f%%", p.Percentage())))
	}
	if p.Caption != "" {
		stats = append(stats, lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(p.Caption))
	}

	if len(stats) > 0 {
		content.WriteString(" ")
		content.WriteString(strings.Join(stats, " • "))
	}

	return content.String()
}

// Spinner represents an animated spinner for pending work
type Spinner struct {
	Frame   int
	Message string
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{}
}

// WithMessage sets the spinner message
func (s *Spinner) WithMessage(message string) *Spinner {
	s.Message = message
	return s
}

// Next advances the spinner to the next frame
func (s *Spinner) Next() {
	s.Frame++
}

// Render returns the current spinner frame
func (s *Spinner) Render() string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	frame := frames[s.Frame%len(frames)]

	rendered := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true).
		Render(frame)

	if s.Message != "" {
		rendered += " " + lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(s.Message)
	}

	return rendered
}
