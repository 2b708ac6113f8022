// Package tuimsg holds the messages exchanged between the root model and its
// scenes.
package tuimsg

import (
	"github.com/rgehrsitz/fidash/internal/compare"
	"github.com/rgehrsitz/fidash/internal/domain"
)

// DashboardUpdatedMsg carries a freshly computed dashboard for the scenes
type DashboardUpdatedMsg struct {
	Portfolio domain.Portfolio
	Dashboard *domain.Dashboard
}

// ComparisonStartedMsg asks the root model to run the named templates
type ComparisonStartedMsg struct {
	Templates []string
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Results *compare.ComparisonSet
	Err     error
}

// StatusMsg shows a transient line in the status bar
type StatusMsg struct {
	Text    string
	IsError bool
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
