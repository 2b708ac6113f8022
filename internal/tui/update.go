package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/state"
	"github.com/rgehrsitz/fidash/internal/tui/tuimsg"
)

// monthlyStep is how much +/- moves a monthly contribution
var monthlyStep = decimal.NewFromInt(50)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if m.edit != editNone {
			return m.updateInput(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.dashboardModel.SetSize(msg.Width, msg.Height)
		m.projectionModel.SetSize(msg.Width, msg.Height)
		m.historyModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.currentScene = msg.Scene
		return m, nil

	case tuimsg.DashboardUpdatedMsg:
		m.portfolio = msg.Portfolio
		m.dashboard = msg.Dashboard
		m.dashboardModel, _ = m.dashboardModel.Update(msg)
		m.projectionModel, _ = m.projectionModel.Update(msg)
		m.historyModel, _ = m.historyModel.Update(msg)
		m.compareModel, _ = m.compareModel.Update(msg)
		return m, nil

	case tuimsg.ComparisonStartedMsg:
		return m, m.compareCmd(msg.Templates)

	case tuimsg.ComparisonCompleteMsg:
		var cmd tea.Cmd
		m.compareModel, cmd = m.compareModel.Update(msg)
		return m, cmd

	case tuimsg.StatusMsg:
		m.status = msg.Text
		m.statusIsError = msg.IsError
		return m, nil

	case tuimsg.ErrorMsg:
		m.status = msg.Err.Error()
		m.statusIsError = true
		return m, nil

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			m.statusIsError = true
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Dashboard):
		return m.navigate(SceneDashboard)
	case key.Matches(msg, m.keys.Projection):
		return m.navigate(SceneProjection)
	case key.Matches(msg, m.keys.History):
		return m.navigate(SceneHistory)
	case key.Matches(msg, m.keys.Compare):
		return m.navigate(SceneCompare)

	case key.Matches(msg, m.keys.Snapshot):
		point := m.store.Snapshot(m.now())
		return m.changed(fmt.Sprintf("Recorded %s on %s", FormatCurrency(point.NetWorth), point.Date.Format("2006-01-02")))

	case key.Matches(msg, m.keys.Undo):
		point, err := m.store.UndoLastSnapshot()
		if errors.Is(err, state.ErrNoSnapshots) {
			return m.setStatus("No snapshot to undo", true)
		} else if err != nil {
			return m.setStatus(err.Error(), true)
		}
		return m.changed("Removed snapshot from " + point.Date.Format("2006-01-02"))

	case key.Matches(msg, m.keys.MoreContribution):
		return m.stepContribution(1)
	case key.Matches(msg, m.keys.LessContribution):
		return m.stepContribution(-1)

	case key.Matches(msg, m.keys.ToggleFrequency):
		freq := domain.FrequencyAnnual
		if m.portfolio.Assumptions.ContributionFrequency == domain.FrequencyAnnual {
			freq = domain.FrequencyMonthly
		}
		m.store.PatchAssumptions(domain.AssumptionsPatch{ContributionFrequency: &freq})
		return m.changed("Contribution frequency is now " + string(freq))

	case key.Matches(msg, m.keys.LongerHorizon):
		return m.stepYears(1)
	case key.Matches(msg, m.keys.ShorterHorizon):
		return m.stepYears(-1)

	case key.Matches(msg, m.keys.EditContribution):
		return m.startEdit(editContribution, m.portfolio.Assumptions.ContributionAmount.String())
	case key.Matches(msg, m.keys.EditHorizon):
		return m.startEdit(editYears, strconv.Itoa(m.portfolio.Assumptions.Years))

	case key.Matches(msg, m.keys.ContributeSavings):
		amount, err := m.store.ContributeSavings()
		if errors.Is(err, state.ErrNoSavings) {
			return m.setStatus("No positive monthly savings to contribute", true)
		} else if err != nil {
			return m.setStatus(err.Error(), true)
		}
		return m.changed("Contribution set to " + FormatCurrency(amount) + " monthly")
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(s Scene) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg { return NavigateMsg{Scene: s} }
}

func (m Model) setStatus(text string, isError bool) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusIsError = isError
	return m, nil
}

// changed recomputes the dashboard synchronously and persists in the background
func (m Model) changed(status string) (tea.Model, tea.Cmd) {
	p := m.store.Portfolio()
	msg := tuimsg.DashboardUpdatedMsg{Portfolio: p, Dashboard: m.engine.BuildDashboard(p)}
	updated, _ := m.Update(msg)
	m = updated.(Model)
	m.status = status
	m.statusIsError = false
	cmd := m.saveCmd(p)
	m.saving = cmd != nil
	return m, cmd
}

func (m Model) stepContribution(direction int64) (tea.Model, tea.Cmd) {
	a := m.portfolio.Assumptions
	step := monthlyStep
	if a.ContributionFrequency != domain.FrequencyMonthly {
		step = step.Mul(decimal.NewFromInt(12))
	}
	amount := a.ContributionAmount.Add(step.Mul(decimal.NewFromInt(direction)))
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	m.store.PatchAssumptions(domain.AssumptionsPatch{ContributionAmount: &amount})
	return m.changed("Contribution " + FormatCurrency(amount) + " " + string(a.ContributionFrequency))
}

func (m Model) stepYears(delta int) (tea.Model, tea.Cmd) {
	years := max(0, m.portfolio.Assumptions.Years+delta)
	m.store.PatchAssumptions(domain.AssumptionsPatch{Years: &years})
	return m.changed(fmt.Sprintf("Horizon %d years", years))
}

func (m Model) startEdit(field editField, value string) (tea.Model, tea.Cmd) {
	m.edit = field
	m.input.SetValue("")
	m.input.Placeholder = value
	if field == editYears {
		m.input.Prompt = "Years: "
	} else {
		m.input.Prompt = "Contribution: "
	}
	cmd := m.input.Focus()
	return m, cmd
}

// updateInput handles the input line while an assumption is being edited
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.edit = editNone
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		field := m.edit
		raw := strings.TrimSpace(m.input.Value())
		m.edit = editNone
		m.input.Blur()
		return m.applyEdit(field, raw)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) applyEdit(field editField, raw string) (tea.Model, tea.Cmd) {
	switch field {
	case editContribution:
		amount, err := decimal.NewFromString(strings.TrimPrefix(raw, "$"))
		if err != nil || amount.IsNegative() {
			return m.setStatus(fmt.Sprintf("invalid contribution %q", raw), true)
		}
		m.store.PatchAssumptions(domain.AssumptionsPatch{ContributionAmount: &amount})
		return m.changed("Contribution " + FormatCurrency(amount))

	case editYears:
		years, err := strconv.Atoi(raw)
		if err != nil || years < 0 {
			return m.setStatus(fmt.Sprintf("invalid number of years %q", raw), true)
		}
		m.store.PatchAssumptions(domain.AssumptionsPatch{Years: &years})
		return m.changed(fmt.Sprintf("Horizon %d years", years))
	}
	return m, nil
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneDashboard:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case SceneProjection:
		m.projectionModel, cmd = m.projectionModel.Update(msg)
	case SceneHistory:
		m.historyModel, cmd = m.historyModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
