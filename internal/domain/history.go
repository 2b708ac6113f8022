package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryPoint is a recorded net-worth snapshot
type HistoryPoint struct {
	Date     time.Time       `yaml:"date" json:"date"`
	NetWorth decimal.Decimal `yaml:"net_worth" json:"net_worth"`
}

// HistoryChange describes the movement between the first and last snapshot
type HistoryChange struct {
	From    HistoryPoint    `json:"from"`
	To      HistoryPoint    `json:"to"`
	Delta   decimal.Decimal `json:"delta"`
	Percent decimal.Decimal `json:"percent"` // fractional; zero when From.NetWorth is zero
}

// SummarizeHistory reports the change across the snapshot log. ok is false
// when fewer than two snapshots exist.
func SummarizeHistory(history []HistoryPoint) (change HistoryChange, ok bool) {
	if len(history) < 2 {
		return HistoryChange{}, false
	}
	first := history[0]
	last := history[len(history)-1]
	change = HistoryChange{
		From:  first,
		To:    last,
		Delta: last.NetWorth.Sub(first.NetWorth),
	}
	if !first.NetWorth.IsZero() {
		change.Percent = change.Delta.Div(first.NetWorth.Abs())
	}
	return change, true
}
