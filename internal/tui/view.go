package tui

import "strings"

// View renders the current state of the application
func (m Model) View() string {
	if m.dashboard == nil {
		return InfoStyle.Render("Loading portfolio...")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("fidash - Financial Independence Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.renderBreadcrumb())
	b.WriteString("\n\n")
	b.WriteString(m.renderScene())
	b.WriteString("\n")

	if m.edit != editNone {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString(SubtitleStyle.Render("  enter to apply, esc to cancel"))
	}

	if status := m.renderStatus(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderScene() string {
	switch m.currentScene {
	case SceneProjection:
		return m.projectionModel.View()
	case SceneHistory:
		return m.historyModel.View()
	case SceneCompare:
		return m.compareModel.View()
	default:
		return m.dashboardModel.View()
	}
}

// renderBreadcrumb shows the scenes with the active one highlighted
func (m Model) renderBreadcrumb() string {
	all := []Scene{SceneDashboard, SceneProjection, SceneHistory, SceneCompare}
	parts := make([]string, 0, len(all))
	for _, s := range all {
		if s == m.currentScene {
			parts = append(parts, StatusKeyStyle.Render(s.String()))
		} else {
			parts = append(parts, SubtitleStyle.Render(s.String()))
		}
	}
	return strings.Join(parts, SubtitleStyle.Render(" | "))
}

func (m Model) renderStatus() string {
	text := m.status
	if m.saving && text == "" {
		text = "Saving..."
	}
	if text == "" {
		return ""
	}
	if m.statusIsError {
		return ErrorStyle.Render(text)
	}
	return StatusBarStyle.Render(text)
}
