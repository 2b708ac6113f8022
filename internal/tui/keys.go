package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every global binding. It satisfies help.KeyMap.
type keyMap struct {
	Dashboard         key.Binding
	Projection        key.Binding
	History           key.Binding
	Compare           key.Binding
	Snapshot          key.Binding
	Undo              key.Binding
	MoreContribution  key.Binding
	LessContribution  key.Binding
	EditContribution  key.Binding
	ToggleFrequency   key.Binding
	LongerHorizon     key.Binding
	ShorterHorizon    key.Binding
	EditHorizon       key.Binding
	ContributeSavings key.Binding
	Help              key.Binding
	Quit              key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dashboard:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard")),
		Projection:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projection")),
		History:           key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Compare:           key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		Snapshot:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "snapshot")),
		Undo:              key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo snapshot")),
		MoreContribution:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "contribution")),
		LessContribution:  key.NewBinding(key.WithKeys("-", "_")),
		EditContribution:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit contribution")),
		ToggleFrequency:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "monthly/annual")),
		LongerHorizon:     key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "horizon")),
		ShorterHorizon:    key.NewBinding(key.WithKeys("[")),
		EditHorizon:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "edit years")),
		ContributeSavings: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "contribute savings")),
		Help:              key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:              key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the status line
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dashboard, k.Projection, k.History, k.Compare, k.Snapshot, k.Help, k.Quit}
}

// FullHelp returns every binding grouped into columns
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Projection, k.History, k.Compare},
		{k.Snapshot, k.Undo, k.ContributeSavings},
		{k.MoreContribution, k.EditContribution, k.ToggleFrequency},
		{k.LongerHorizon, k.EditHorizon, k.Help, k.Quit},
	}
}
