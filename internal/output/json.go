package output

import (
	"encoding/json"

	"github.com/rgehrsitz/fidash/internal/domain"
)

// JSONFormatter emits the dashboard as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(d *domain.Dashboard) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
