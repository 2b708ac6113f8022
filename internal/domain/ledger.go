package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Category is a named monthly income or expense line
type Category struct {
	ID     string          `yaml:"id" json:"id"`
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"` // monthly
}

// CategoryPatch carries optional field updates for a category
type CategoryPatch struct {
	Name   *string
	Amount *decimal.Decimal
}

// Apply returns a copy of the category with the patch applied
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Amount != nil {
		c.Amount = *p.Amount
	}
	return c
}

// LedgerShape tags which representation a Ledger carries
type LedgerShape string

const (
	// LedgerShapeCategories is a list of named monthly categories
	LedgerShapeCategories LedgerShape = "categories"
	// LedgerShapeLegacyMonthly is a single monthly figure from older documents
	LedgerShapeLegacyMonthly LedgerShape = "legacy_monthly"
)

// Ledger is the income or expense side of a budget. Older documents stored a
// single monthly number; newer ones a category list. The shape is resolved once
// when a document is decoded and never re-guessed afterwards.
type Ledger struct {
	Shape      LedgerShape
	Categories []Category
	Monthly    decimal.Decimal // only meaningful for LedgerShapeLegacyMonthly
}

// NewCategoryLedger builds a categories-shaped ledger
func NewCategoryLedger(categories ...Category) Ledger {
	if categories == nil {
		categories = []Category{}
	}
	return Ledger{Shape: LedgerShapeCategories, Categories: categories}
}

// NewLegacyLedger builds a ledger holding a single monthly amount
func NewLegacyLedger(monthly decimal.Decimal) Ledger {
	return Ledger{Shape: LedgerShapeLegacyMonthly, Monthly: monthly}
}

// IsLegacy reports whether the ledger still uses the single-figure shape
func (l Ledger) IsLegacy() bool {
	return l.Shape == LedgerShapeLegacyMonthly
}

// MonthlyTotal returns the ledger's monthly figure for either shape
func (l Ledger) MonthlyTotal() decimal.Decimal {
	if l.Shape == LedgerShapeLegacyMonthly {
		return l.Monthly
	}
	total := decimal.Zero
	for _, c := range l.Categories {
		total = total.Add(c.Amount)
	}
	return total
}

// Clone returns a deep copy of the ledger
func (l Ledger) Clone() Ledger {
	out := l
	if l.Categories != nil {
		out.Categories = make([]Category, len(l.Categories))
		copy(out.Categories, l.Categories)
	}
	return out
}

type categoriesDocument struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

type legacyDocument struct {
	Monthly decimal.Decimal `yaml:"monthly" json:"monthly"`
}

func (l Ledger) document() interface{} {
	if l.Shape == LedgerShapeLegacyMonthly {
		return legacyDocument{Monthly: l.Monthly}
	}
	categories := l.Categories
	if categories == nil {
		categories = []Category{}
	}
	return categoriesDocument{Categories: categories}
}

// MarshalYAML writes the ledger in the shape it was read in
func (l Ledger) MarshalYAML() (interface{}, error) {
	return l.document(), nil
}

// MarshalJSON writes the ledger in the shape it was read in
func (l Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.document())
}

// FindCategory returns the index of the category with the given id, or -1
func (l Ledger) FindCategory(id string) int {
	for i, c := range l.Categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}
