package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/fidash/internal/domain"
)

// CSVFormatter writes one row per projection year: the three scenarios, the
// FI income at each charted rate and annual expenses.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(d *domain.Dashboard) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"year", "pessimistic", "realistic", "optimistic"}
	if len(d.FIIncome) > 0 {
		for _, ri := range d.FIIncome[0].Incomes {
			header = append(header, ri.Key)
		}
	}
	header = append(header, "expenses")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i, p := range d.Scenarios.Realistic {
		row := []string{strconv.Itoa(p.Year)}
		for _, name := range domain.AllScenarios() {
			v, _ := d.Scenarios.Get(name).ValueAt(p.Year)
			row = append(row, v.StringFixed(2))
		}
		if i < len(d.FIIncome) {
			for _, ri := range d.FIIncome[i].Incomes {
				row = append(row, ri.Income.StringFixed(2))
			}
		}
		row = append(row, d.AnnualExpenses.StringFixed(2))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
