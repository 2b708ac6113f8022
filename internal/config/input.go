package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultStateFile is used when no --file flag is given
const DefaultStateFile = "fidash.yaml"

// InputParser handles parsing of portfolio state files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a portfolio from a YAML or JSON file. Numeric fields
// are coerced leniently; see Parse.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Portfolio, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	p, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return p, nil
}

// LoadOrDefault is LoadFromFile, except that a missing file yields a fresh
// portfolio with default assumptions.
func (ip *InputParser) LoadOrDefault(filename string) (*domain.Portfolio, error) {
	p, err := ip.LoadFromFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		fresh := domain.NewPortfolio()
		return &fresh, nil
	}
	return p, err
}

// Parse decodes a portfolio document. Since YAML is a superset of JSON the
// same path serves state files and remote documents.
//
// Missing or non-numeric numbers decode to zero, missing assumption fields
// take their defaults, and a ledger is read as categories when it holds a
// category list, as a legacy monthly figure when it holds "monthly", and as
// an empty category list otherwise. Assets and categories without an id get
// a fresh one.
func (ip *InputParser) Parse(data []byte) (*domain.Portfolio, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	p := domain.NewPortfolio()
	if raw == nil {
		return &p, nil
	}
	doc, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("failed to parse YAML: document is a %T, not a mapping", raw)
	}

	if list, ok := doc["assets"].([]interface{}); ok {
		for _, item := range list {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			p.Assets = append(p.Assets, decodeAsset(m))
		}
	}
	if m, ok := doc["assumptions"].(map[string]interface{}); ok {
		p.Assumptions = decodeAssumptions(m)
	}
	p.Incomes = decodeLedger(doc["incomes"])
	p.Expenses = decodeLedger(doc["expenses"])
	if list, ok := doc["history"].([]interface{}); ok {
		for _, item := range list {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			p.History = append(p.History, decodeHistoryPoint(m))
		}
	}
	return &p, nil
}

func newID(v interface{}) string {
	if id := toString(v); id != "" {
		return id
	}
	return uuid.NewString()
}

func decodeAsset(m map[string]interface{}) domain.Asset {
	target, _ := lookup(m, "target_percent", "targetPercent")
	return domain.Asset{
		ID:            newID(m["id"]),
		Name:          toString(m["name"]),
		Value:         toDecimal(m["value"]),
		TargetPercent: toDecimal(target),
	}
}

func decodeAssumptions(m map[string]interface{}) domain.Assumptions {
	a := domain.DefaultAssumptions()
	if v, ok := m["pessimistic"]; ok {
		a.Pessimistic = toDecimal(v)
	}
	if v, ok := m["realistic"]; ok {
		a.Realistic = toDecimal(v)
	}
	if v, ok := m["optimistic"]; ok {
		a.Optimistic = toDecimal(v)
	}
	if v, ok := lookup(m, "contribution_amount", "contributionAmount"); ok {
		a.ContributionAmount = toDecimal(v)
	}
	if v, ok := lookup(m, "contribution_frequency", "contributionFrequency"); ok {
		a.ContributionFrequency = domain.Frequency(toString(v))
	}
	if v, ok := m["years"]; ok {
		a.Years = toInt(v)
	}
	return a
}

func decodeLedger(v interface{}) domain.Ledger {
	m, ok := v.(map[string]interface{})
	if !ok {
		return domain.NewCategoryLedger()
	}
	if list, ok := m["categories"].([]interface{}); ok {
		cats := make([]domain.Category, 0, len(list))
		for _, item := range list {
			cm, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			cats = append(cats, domain.Category{
				ID:     newID(cm["id"]),
				Name:   toString(cm["name"]),
				Amount: toDecimal(cm["amount"]),
			})
		}
		return domain.NewCategoryLedger(cats...)
	}
	if monthly, ok := m["monthly"]; ok {
		return domain.NewLegacyLedger(toDecimal(monthly))
	}
	return domain.NewCategoryLedger()
}

func decodeHistoryPoint(m map[string]interface{}) domain.HistoryPoint {
	nw, _ := lookup(m, "net_worth", "netWorth")
	return domain.HistoryPoint{
		Date:     toTime(m["date"]),
		NetWorth: toDecimal(nw),
	}
}

// SaveToFile writes the portfolio as YAML, replacing the file atomically
func (ip *InputParser) SaveToFile(filename string, p *domain.Portfolio) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode portfolio: %w", err)
	}
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".fidash-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	return nil
}

// ValidateConfiguration reports problems that make a portfolio unusable for
// editing or projection. Softer issues are reported by Warnings.
func (ip *InputParser) ValidateConfiguration(p *domain.Portfolio) error {
	if p == nil {
		return fmt.Errorf("portfolio is required")
	}
	seen := make(map[string]bool, len(p.Assets))
	for i, a := range p.Assets {
		if err := ip.validateAsset(a); err != nil {
			return fmt.Errorf("asset %d (%s) validation failed: %w", i, a.Name, err)
		}
		if seen[a.ID] {
			return fmt.Errorf("asset %d (%s) validation failed: duplicate id %s", i, a.Name, a.ID)
		}
		seen[a.ID] = true
	}
	if err := ip.validateAssumptions(&p.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	if err := ip.validateLedger(p.Incomes); err != nil {
		return fmt.Errorf("incomes validation failed: %w", err)
	}
	if err := ip.validateLedger(p.Expenses); err != nil {
		return fmt.Errorf("expenses validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateAsset(a domain.Asset) error {
	if a.ID == "" {
		return fmt.Errorf("id is required")
	}
	if a.Value.IsNegative() {
		return fmt.Errorf("value cannot be negative")
	}
	if a.TargetPercent.IsNegative() || a.TargetPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("target percent must be between 0 and 100")
	}
	return nil
}

func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	minRate := decimal.NewFromInt(-1)
	rates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"pessimistic", a.Pessimistic},
		{"realistic", a.Realistic},
		{"optimistic", a.Optimistic},
	}
	for _, r := range rates {
		if r.rate.LessThanOrEqual(minRate) {
			return fmt.Errorf("%s rate must be greater than -100%%", r.name)
		}
	}
	if a.ContributionAmount.IsNegative() {
		return fmt.Errorf("contribution amount cannot be negative")
	}
	if a.Years < 0 {
		return fmt.Errorf("years cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateLedger(l domain.Ledger) error {
	seen := make(map[string]bool, len(l.Categories))
	for i, c := range l.Categories {
		if seen[c.ID] {
			return fmt.Errorf("category %d (%s) has duplicate id %s", i, c.Name, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// Warnings lists issues that do not block projection but probably are not
// what the user meant.
func (ip *InputParser) Warnings(p *domain.Portfolio) []string {
	var warnings []string
	if len(p.Assets) > 0 {
		total := domain.TargetPercentTotal(p.Assets)
		if !total.Equal(decimal.NewFromInt(100)) {
			warnings = append(warnings, fmt.Sprintf("target allocations sum to %s%%, not 100%%", total.String()))
		}
	}
	if !p.Assumptions.ContributionFrequency.IsKnown() {
		warnings = append(warnings, fmt.Sprintf("unknown contribution frequency %q is treated as annual", p.Assumptions.ContributionFrequency))
	}
	if p.Assumptions.Years == 0 {
		warnings = append(warnings, "projection horizon is 0 years")
	}
	a := p.Assumptions
	if a.Pessimistic.GreaterThan(a.Realistic) || a.Realistic.GreaterThan(a.Optimistic) {
		warnings = append(warnings, "growth rates are not ordered pessimistic <= realistic <= optimistic")
	}
	if p.Incomes.IsLegacy() {
		warnings = append(warnings, "incomes use the legacy single monthly figure")
	}
	if p.Expenses.IsLegacy() {
		warnings = append(warnings, "expenses use the legacy single monthly figure")
	}
	return warnings
}
