package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fidash/internal/calculation"
	"github.com/rgehrsitz/fidash/internal/compare"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/state"
	"github.com/rgehrsitz/fidash/internal/tui/scenes"
	"github.com/rgehrsitz/fidash/internal/tui/tuimsg"
)

// editField is the assumption being typed into the input line
type editField int

const (
	editNone editField = iota
	editContribution
	editYears
)

// Model represents the entire application state
type Model struct {
	currentScene Scene

	width  int
	height int

	store         *state.Store
	engine        *calculation.CalculationEngine
	compareEngine *compare.CompareEngine
	persist       func(domain.Portfolio) error
	now           func() time.Time

	portfolio domain.Portfolio
	dashboard *domain.Dashboard

	dashboardModel  *scenes.DashboardModel
	projectionModel *scenes.ProjectionModel
	historyModel    *scenes.HistoryModel
	compareModel    *scenes.CompareModel

	keys  keyMap
	help  help.Model
	input textinput.Model
	edit  editField

	status        string
	statusIsError bool
	saving        bool
}

// Option configures a Model
type Option func(*Model)

// WithPersist sets the function that stores the portfolio after every change
func WithPersist(fn func(domain.Portfolio) error) Option {
	return func(m *Model) { m.persist = fn }
}

// WithEngine replaces the default calculation engine
func WithEngine(e *calculation.CalculationEngine) Option {
	return func(m *Model) { m.engine = e }
}

// WithClock sets the clock used to date snapshots
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// NewModel creates a new application model over store
func NewModel(store *state.Store, opts ...Option) Model {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 20
	ti.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		currentScene:    SceneDashboard,
		store:           store,
		engine:          calculation.NewCalculationEngine(),
		now:             time.Now,
		dashboardModel:  scenes.NewDashboardModel(),
		projectionModel: scenes.NewProjectionModel(),
		historyModel:    scenes.NewHistoryModel(),
		keys:            defaultKeyMap(),
		help:            help.New(),
		input:           ti,
		width:           80,
		height:          24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.compareEngine = compare.NewCompareEngine(m.engine)
	m.compareModel = scenes.NewCompareModel(m.compareEngine.TemplateRegistry)
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return refreshCmd(m.store, m.engine)
}

// refreshCmd returns a command that recomputes the dashboard from the store
func refreshCmd(store *state.Store, engine *calculation.CalculationEngine) tea.Cmd {
	return func() tea.Msg {
		p := store.Portfolio()
		return tuimsg.DashboardUpdatedMsg{Portfolio: p, Dashboard: engine.BuildDashboard(p)}
	}
}

// saveCmd returns a command that persists p
func (m Model) saveCmd(p domain.Portfolio) tea.Cmd {
	if m.persist == nil {
		return nil
	}
	persist := m.persist
	return func() tea.Msg {
		return savedMsg{err: persist(p)}
	}
}

// compareCmd runs the selected templates against the current portfolio
func (m Model) compareCmd(templates []string) tea.Cmd {
	engine := m.compareEngine
	p := m.portfolio
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), p, compare.CompareOptions{Templates: templates})
		return tuimsg.ComparisonCompleteMsg{Results: set, Err: err}
	}
}
