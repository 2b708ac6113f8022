package domain

// Portfolio is the complete user document the dashboard works from
type Portfolio struct {
	Assets      []Asset        `yaml:"assets" json:"assets"`
	Assumptions Assumptions    `yaml:"assumptions" json:"assumptions"`
	Incomes     Ledger         `yaml:"incomes" json:"incomes"`
	Expenses    Ledger         `yaml:"expenses" json:"expenses"`
	History     []HistoryPoint `yaml:"history" json:"history"`
}

// NewPortfolio returns an empty document with default assumptions
func NewPortfolio() Portfolio {
	return Portfolio{
		Assets:      []Asset{},
		Assumptions: DefaultAssumptions(),
		Incomes:     NewCategoryLedger(),
		Expenses:    NewCategoryLedger(),
		History:     []HistoryPoint{},
	}
}

// Clone returns a deep copy so callers can never alias the original slices
func (p Portfolio) Clone() Portfolio {
	out := Portfolio{
		Assumptions: p.Assumptions,
		Incomes:     p.Incomes.Clone(),
		Expenses:    p.Expenses.Clone(),
	}
	out.Assets = make([]Asset, len(p.Assets))
	copy(out.Assets, p.Assets)
	out.History = make([]HistoryPoint, len(p.History))
	copy(out.History, p.History)
	return out
}

// FindAsset returns the index of the asset with the given id, or -1
func (p Portfolio) FindAsset(id string) int {
	for i, a := range p.Assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}
