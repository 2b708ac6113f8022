package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/state"
	"github.com/rgehrsitz/fidash/internal/tui/tuimsg"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testStore() *state.Store {
	p := domain.NewPortfolio()
	p.Assets = []domain.Asset{
		{ID: "1", Name: "Stocks", Value: decimal.NewFromInt(80000), TargetPercent: decimal.NewFromInt(70)},
		{ID: "2", Name: "Bonds", Value: decimal.NewFromInt(20000), TargetPercent: decimal.NewFromInt(30)},
	}
	p.Incomes = domain.NewCategoryLedger(domain.Category{ID: "salary", Name: "Salary", Amount: decimal.NewFromInt(5000)})
	p.Expenses = domain.NewCategoryLedger(domain.Category{ID: "rent", Name: "Rent", Amount: decimal.NewFromInt(2000)})
	return state.NewStore(p)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and flattens batches into their messages
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// send delivers msg and feeds every resulting message back into the model
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	for _, next := range runCmd(cmd) {
		if _, quit := next.(tea.QuitMsg); quit {
			continue
		}
		m = send(t, m, next)
	}
	return m
}

func startedModel(t *testing.T, store *state.Store, opts ...Option) Model {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	m := NewModel(store, opts...)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	msgs := runCmd(m.Init())
	require.Len(t, msgs, 1)
	_, ok := msgs[0].(tuimsg.DashboardUpdatedMsg)
	require.True(t, ok)
	return send(t, m, msgs[0])
}

func TestModel_InitialView(t *testing.T) {
	m := NewModel(testStore())
	assert.Contains(t, m.View(), "Loading")

	m = startedModel(t, testStore())
	require.NotNil(t, m.dashboard)
	assert.True(t, m.dashboard.NetWorth.Equal(decimal.NewFromInt(100000)))

	view := m.View()
	assert.Contains(t, view, "fidash - Financial Independence Dashboard")
	assert.Contains(t, view, "Dashboard")
	assert.Contains(t, view, "Net Worth")
}

func TestModel_Navigation(t *testing.T) {
	m := startedModel(t, testStore())

	m = send(t, m, keyPress("p"))
	assert.Equal(t, SceneProjection, m.currentScene)
	m = send(t, m, keyPress("h"))
	assert.Equal(t, SceneHistory, m.currentScene)
	m = send(t, m, keyPress("c"))
	assert.Equal(t, SceneCompare, m.currentScene)
	m = send(t, m, keyPress("d"))
	assert.Equal(t, SceneDashboard, m.currentScene)
}

func TestModel_StepContribution(t *testing.T) {
	store := testStore()
	var saved []domain.Portfolio
	m := startedModel(t, store, WithPersist(func(p domain.Portfolio) error {
		saved = append(saved, p)
		return nil
	}))

	m = send(t, m, keyPress("+"))
	assert.True(t, store.Portfolio().Assumptions.ContributionAmount.Equal(decimal.NewFromInt(550)))
	assert.True(t, m.dashboard.Assumptions.ContributionAmount.Equal(decimal.NewFromInt(550)))
	require.Len(t, saved, 1)
	assert.True(t, saved[0].Assumptions.ContributionAmount.Equal(decimal.NewFromInt(550)))
	assert.False(t, m.saving)

	m = send(t, m, keyPress("f"))
	assert.Equal(t, domain.FrequencyAnnual, store.Portfolio().Assumptions.ContributionFrequency)

	m = send(t, m, keyPress("-"))
	assert.True(t, store.Portfolio().Assumptions.ContributionAmount.IsZero(), "never below zero")

	send(t, m, keyPress("+"))
	assert.True(t, store.Portfolio().Assumptions.ContributionAmount.Equal(decimal.NewFromInt(600)))
}

func TestModel_Horizon(t *testing.T) {
	store := testStore()
	m := startedModel(t, store)

	m = send(t, m, keyPress("]"))
	assert.Equal(t, 31, store.Portfolio().Assumptions.Years)
	assert.Len(t, m.dashboard.Scenarios.Realistic, 32)

	zero := 0
	store.PatchAssumptions(domain.AssumptionsPatch{Years: &zero})
	m = send(t, m, refreshCmd(store, m.engine)())
	m = send(t, m, keyPress("["))
	assert.Equal(t, 0, store.Portfolio().Assumptions.Years)
	assert.Contains(t, m.status, "0 years")
}

func TestModel_SnapshotAndUndo(t *testing.T) {
	store := testStore()
	m := startedModel(t, store)

	m = send(t, m, keyPress("u"))
	assert.True(t, m.statusIsError)
	assert.Contains(t, m.status, "No snapshot")

	m = send(t, m, keyPress("n"))
	require.Len(t, store.Portfolio().History, 1)
	assert.True(t, store.Portfolio().History[0].Date.Equal(fixedNow))
	assert.Len(t, m.dashboard.History, 1)
	assert.Contains(t, m.status, "2025-03-01")

	m = send(t, m, keyPress("u"))
	assert.Empty(t, store.Portfolio().History)
	assert.False(t, m.statusIsError)
}

func TestModel_ContributeSavings(t *testing.T) {
	store := testStore()
	m := startedModel(t, store)

	m = send(t, m, keyPress("S"))
	a := store.Portfolio().Assumptions
	assert.True(t, a.ContributionAmount.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, domain.FrequencyMonthly, a.ContributionFrequency)
	assert.False(t, m.statusIsError)

	empty := state.NewStore(domain.NewPortfolio())
	m = startedModel(t, empty)
	m = send(t, m, keyPress("S"))
	assert.True(t, m.statusIsError)
	assert.True(t, empty.Portfolio().Assumptions.ContributionAmount.Equal(decimal.NewFromInt(500)))
}

func TestModel_EditContribution(t *testing.T) {
	store := testStore()
	m := startedModel(t, store)

	m = send(t, m, keyPress("e"))
	require.Equal(t, editContribution, m.edit)
	assert.Contains(t, m.View(), "Contribution: ")

	// scene keys are captured by the input while editing
	m = send(t, m, keyPress("7"))
	m = send(t, m, keyPress("5"))
	m = send(t, m, keyPress("0"))
	m = send(t, m, keyPress("enter"))
	assert.Equal(t, editNone, m.edit)
	assert.True(t, store.Portfolio().Assumptions.ContributionAmount.Equal(decimal.NewFromInt(750)))
}

func TestModel_EditYears(t *testing.T) {
	store := testStore()
	m := startedModel(t, store)

	m = send(t, m, keyPress("y"))
	m = send(t, m, keyPress("x"))
	m = send(t, m, keyPress("enter"))
	assert.True(t, m.statusIsError)
	assert.Equal(t, 30, store.Portfolio().Assumptions.Years)

	m = send(t, m, keyPress("y"))
	m = send(t, m, keyPress("1"))
	m = send(t, m, keyPress("esc"))
	assert.Equal(t, editNone, m.edit)
	assert.Equal(t, 30, store.Portfolio().Assumptions.Years)

	m = send(t, m, keyPress("y"))
	m = send(t, m, keyPress("1"))
	m = send(t, m, keyPress("5"))
	send(t, m, keyPress("enter"))
	assert.Equal(t, 15, store.Portfolio().Assumptions.Years)
}

func TestModel_SaveFailure(t *testing.T) {
	m := startedModel(t, testStore(), WithPersist(func(domain.Portfolio) error {
		return errors.New("disk full")
	}))

	m = send(t, m, keyPress("]"))
	assert.True(t, m.statusIsError)
	assert.Equal(t, "save failed: disk full", m.status)
}

func TestModel_Compare(t *testing.T) {
	m := startedModel(t, testStore())

	m = send(t, m, keyPress("c"))
	m = send(t, m, keyPress(" "))
	m = send(t, m, keyPress("enter"))

	view := m.View()
	assert.Contains(t, view, "WHAT-IF SCENARIO COMPARISON")
	assert.NotContains(t, view, "Comparison failed")
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := startedModel(t, testStore())
	short := m.View()

	m = send(t, m, keyPress("?"))
	assert.True(t, m.help.ShowAll)
	assert.Greater(t, strings.Count(m.View(), "\n"), strings.Count(short, "\n"))

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
