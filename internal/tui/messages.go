package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneDashboard Scene = iota
	SceneProjection
	SceneHistory
	SceneCompare
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneDashboard:
		return "Dashboard"
	case SceneProjection:
		return "Projection"
	case SceneHistory:
		return "History"
	case SceneCompare:
		return "Compare"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// savedMsg reports the outcome of persisting the portfolio
type savedMsg struct {
	err error
}
