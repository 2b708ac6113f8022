// Package state owns the mutable portfolio document: edits, snapshots and
// change notification. Every read hands out a deep copy.
package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/fidash/internal/calculation"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoSnapshots      = errors.New("no snapshots to undo")
	ErrNoSavings        = errors.New("monthly savings are not positive")
	ErrUnknownLedger    = errors.New("unknown ledger")
)

// LedgerKind selects the income or expense side of the budget
type LedgerKind string

const (
	Incomes  LedgerKind = "incomes"
	Expenses LedgerKind = "expenses"
)

// legacyCategoryName labels the single figure carried over when a legacy
// ledger is converted to categories
const legacyCategoryName = "Monthly"

// Store holds the current portfolio. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	doc   domain.Portfolio
	subs  map[int]func(domain.Portfolio)
	next  int
	newID func() string
	log   calculation.Logger
}

// NewStore wraps an initial document
func NewStore(initial domain.Portfolio) *Store {
	return &Store{
		doc:   initial.Clone(),
		subs:  make(map[int]func(domain.Portfolio)),
		newID: uuid.NewString,
		log:   calculation.NopLogger{},
	}
}

// SetLogger sets the logger. Nil installs a no-op logger. Call it before the
// store is shared.
func (s *Store) SetLogger(l Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.log = l
}

// Logger is the logging surface shared with the calculation engine
type Logger = calculation.Logger

// Portfolio returns a copy of the current document
func (s *Store) Portfolio() domain.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Subscribe registers fn to receive a copy of the document after every
// change. Callbacks run on the goroutine that made the change, outside the
// store lock. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(domain.Portfolio)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// update applies fn under the write lock and notifies subscribers on success
func (s *Store) update(fn func(p *domain.Portfolio) error) error {
	s.mu.Lock()
	if err := fn(&s.doc); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := s.doc.Clone()
	subs := make([]func(domain.Portfolio), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot.Clone())
	}
	return nil
}

// Replace swaps in a whole document, e.g. one pulled from the remote store
func (s *Store) Replace(p domain.Portfolio) {
	_ = s.update(func(doc *domain.Portfolio) error {
		*doc = p.Clone()
		return nil
	})
}

// Reset restores an empty portfolio with default assumptions
func (s *Store) Reset() {
	s.Replace(domain.NewPortfolio())
}

// AddAsset appends an asset with a fresh id
func (s *Store) AddAsset(name string, value, targetPercent decimal.Decimal) domain.Asset {
	a := domain.Asset{ID: s.newID(), Name: name, Value: value, TargetPercent: targetPercent}
	_ = s.update(func(p *domain.Portfolio) error {
		p.Assets = append(p.Assets, a)
		return nil
	})
	s.log.Debugf("added asset %s (%s)", a.ID, a.Name)
	return a
}

// UpdateAsset patches the asset with the given id
func (s *Store) UpdateAsset(id string, patch domain.AssetPatch) (domain.Asset, error) {
	var out domain.Asset
	err := s.update(func(p *domain.Portfolio) error {
		i := p.FindAsset(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
		}
		p.Assets[i] = patch.Apply(p.Assets[i])
		out = p.Assets[i]
		return nil
	})
	return out, err
}

// RemoveAsset deletes the asset with the given id
func (s *Store) RemoveAsset(id string) error {
	return s.update(func(p *domain.Portfolio) error {
		i := p.FindAsset(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
		}
		p.Assets = append(p.Assets[:i], p.Assets[i+1:]...)
		return nil
	})
}

func ledgerFor(p *domain.Portfolio, kind LedgerKind) (*domain.Ledger, error) {
	switch kind {
	case Incomes:
		return &p.Incomes, nil
	case Expenses:
		return &p.Expenses, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLedger, kind)
	}
}

// AddCategory appends a category to the income or expense ledger. A legacy
// single-figure ledger is converted first, keeping its figure as a category.
func (s *Store) AddCategory(kind LedgerKind, name string, amount decimal.Decimal) (domain.Category, error) {
	c := domain.Category{ID: s.newID(), Name: name, Amount: amount}
	err := s.update(func(p *domain.Portfolio) error {
		l, err := ledgerFor(p, kind)
		if err != nil {
			return err
		}
		if l.IsLegacy() {
			var carried []domain.Category
			if !l.Monthly.IsZero() {
				carried = append(carried, domain.Category{ID: s.newID(), Name: legacyCategoryName, Amount: l.Monthly})
			}
			*l = domain.NewCategoryLedger(carried...)
			s.log.Infof("converted legacy %s ledger to categories", kind)
		}
		l.Categories = append(l.Categories, c)
		return nil
	})
	if err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

// UpdateCategory patches a category in the given ledger
func (s *Store) UpdateCategory(kind LedgerKind, id string, patch domain.CategoryPatch) (domain.Category, error) {
	var out domain.Category
	err := s.update(func(p *domain.Portfolio) error {
		l, err := ledgerFor(p, kind)
		if err != nil {
			return err
		}
		i := l.FindCategory(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
		}
		l.Categories[i] = patch.Apply(l.Categories[i])
		out = l.Categories[i]
		return nil
	})
	return out, err
}

// RemoveCategory deletes a category from the given ledger
func (s *Store) RemoveCategory(kind LedgerKind, id string) error {
	return s.update(func(p *domain.Portfolio) error {
		l, err := ledgerFor(p, kind)
		if err != nil {
			return err
		}
		i := l.FindCategory(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
		}
		l.Categories = append(l.Categories[:i], l.Categories[i+1:]...)
		return nil
	})
}

// SetAssumptions replaces the assumptions wholesale
func (s *Store) SetAssumptions(a domain.Assumptions) {
	_ = s.update(func(p *domain.Portfolio) error {
		p.Assumptions = a
		return nil
	})
}

// PatchAssumptions applies a partial update and returns the result
func (s *Store) PatchAssumptions(patch domain.AssumptionsPatch) domain.Assumptions {
	var out domain.Assumptions
	_ = s.update(func(p *domain.Portfolio) error {
		p.Assumptions = patch.Apply(p.Assumptions)
		out = p.Assumptions
		return nil
	})
	return out
}

// Snapshot records the current net worth at the given time
func (s *Store) Snapshot(now time.Time) domain.HistoryPoint {
	var point domain.HistoryPoint
	_ = s.update(func(p *domain.Portfolio) error {
		point = domain.HistoryPoint{Date: now.UTC(), NetWorth: calculation.NetWorth(p.Assets)}
		p.History = append(p.History, point)
		return nil
	})
	return point
}

// UndoLastSnapshot removes and returns the most recent snapshot
func (s *Store) UndoLastSnapshot() (domain.HistoryPoint, error) {
	var removed domain.HistoryPoint
	err := s.update(func(p *domain.Portfolio) error {
		if len(p.History) == 0 {
			return ErrNoSnapshots
		}
		removed = p.History[len(p.History)-1]
		p.History = p.History[:len(p.History)-1]
		return nil
	})
	return removed, err
}

// ContributeSavings sets the projection contribution to the current monthly
// savings, rounded to whole units. It refuses when there is nothing saved.
func (s *Store) ContributeSavings() (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := s.update(func(p *domain.Portfolio) error {
		savings := calculation.CalculateSavings(p.Incomes, p.Expenses)
		if !savings.MonthlySavings.IsPositive() {
			return fmt.Errorf("%w: %s", ErrNoSavings, savings.MonthlySavings.StringFixed(2))
		}
		amount = decimal.Max(decimal.Zero, savings.MonthlySavings.Round(0))
		p.Assumptions.ContributionAmount = amount
		p.Assumptions.ContributionFrequency = domain.FrequencyMonthly
		return nil
	})
	return amount, err
}
