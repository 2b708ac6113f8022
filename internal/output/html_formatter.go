package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct {
	Options
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

type htmlRow struct {
	Year                               int
	Pessimistic, Realistic, Optimistic decimal.Decimal
}

func (h HTMLFormatter) Format(d *domain.Dashboard) ([]byte, error) {
	cur := h.currency()
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"curr":   func(v decimal.Decimal) string { return FormatCurrency(v, cur) },
		"pct":    FormatPercentage,
		"pctp":   FormatPercentagePtr,
		"target": func(v decimal.Decimal) string { return FormatPercentage(v.Div(hundred)) },
	}).Parse(htmlTemplateSource)
	if err != nil {
		return nil, err
	}

	var rows []htmlRow
	for _, y := range milestoneYears(len(d.Scenarios.Realistic) - 1) {
		r := htmlRow{Year: y}
		r.Pessimistic, _ = d.Scenarios.Pessimistic.ValueAt(y)
		r.Realistic, _ = d.Scenarios.Realistic.ValueAt(y)
		r.Optimistic, _ = d.Scenarios.Optimistic.ValueAt(y)
		rows = append(rows, r)
	}

	data := struct {
		*domain.Dashboard
		FIText          string
		AssumptionLines []string
		Rows            []htmlRow
		Notes           []string
	}{d, fiHorizonText(d), AssumptionLines(d.Assumptions, cur), rows, ModelNotes}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
