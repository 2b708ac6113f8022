package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fidash/internal/compare"
	"github.com/rgehrsitz/fidash/internal/transform"
	"github.com/rgehrsitz/fidash/internal/tui/tuimsg"
	"github.com/rgehrsitz/fidash/internal/tui/tuistyles"
)

// CompareModel lets the user pick what-if templates and shows the comparison
type CompareModel struct {
	templates   []transform.Template
	selected    map[int]bool
	cursorIndex int
	results     *compare.ComparisonSet
	comparing   bool
	err         error
	width       int
	height      int
}

// NewCompareModel creates a new compare scene model listing every template in registry
func NewCompareModel(registry *transform.TemplateRegistry) *CompareModel {
	m := &CompareModel{selected: make(map[int]bool)}
	for _, name := range registry.List() {
		if t, ok := registry.Get(name); ok {
			m.templates = append(m.templates, t)
		}
	}
	return m
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the chosen template names in list order
func (m *CompareModel) Selected() []string {
	var names []string
	for i, t := range m.templates {
		if m.selected[i] {
			names = append(names, t.Name)
		}
	}
	return names
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tuimsg.ComparisonCompleteMsg:
		m.comparing = false
		m.results = msg.Results
		m.err = msg.Err
		return m, nil

	case tuimsg.DashboardUpdatedMsg:
		// results describe the old portfolio
		m.results = nil
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.cursorIndex > 0 {
				m.cursorIndex--
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.cursorIndex < len(m.templates)-1 {
				m.cursorIndex++
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys(" ", "x"))):
			m.selected[m.cursorIndex] = !m.selected[m.cursorIndex]
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			names := m.Selected()
			if len(names) == 0 {
				return m, nil
			}
			m.comparing = true
			m.err = nil
			return m, func() tea.Msg {
				return tuimsg.ComparisonStartedMsg{Templates: names}
			}

		case key.Matches(msg, key.NewBinding(key.WithKeys("backspace"))):
			m.selected = make(map[int]bool)
			m.results = nil
			m.err = nil
			return m, nil
		}
	}

	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render("What-if templates"))
	content.WriteString("\n\n")

	for i, t := range m.templates {
		cursor := "  "
		style := tuistyles.UnselectedItemStyle
		if i == m.cursorIndex {
			cursor = "> "
			style = tuistyles.SelectedItemStyle
		}
		check := "[ ]"
		if m.selected[i] {
			check = "[x]"
		}
		content.WriteString(style.Render(fmt.Sprintf("%s%s %-24s %s", cursor, check, t.Name, t.Description)))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("space: toggle • enter: compare • backspace: clear"))
	content.WriteString("\n\n")

	switch {
	case m.comparing:
		content.WriteString(tuistyles.InfoStyle.Render("Comparing..."))
	case m.err != nil:
		content.WriteString(tuistyles.ErrorStyle.Render("Comparison failed: " + m.err.Error()))
	case m.results != nil:
		formatter := &compare.TableFormatter{}
		content.WriteString(formatter.Format(m.results))
	}

	return content.String()
}
