package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/fidash/internal/domain"
)

// Formatter renders a dashboard into bytes
type Formatter interface {
	Name() string
	Format(d *domain.Dashboard) ([]byte, error)
}

// FormatterFunc adapts a plain function to Formatter
type FormatterFunc struct {
	ID string
	F  func(d *domain.Dashboard) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(d *domain.Dashboard) ([]byte, error) { return f.F(d) }

// Options carries presentation settings shared by the formatters
type Options struct {
	Currency string // ISO 4217 code, display only
	Width    int    // word wrap for rendered markdown; 0 picks a default
}

func (o Options) currency() string {
	if o.Currency == "" {
		return DefaultCurrency
	}
	return strings.ToUpper(o.Currency)
}

var formatters = map[string]func(Options) Formatter{
	"console":  func(o Options) Formatter { return ConsoleFormatter{Options: o} },
	"json":     func(o Options) Formatter { return JSONFormatter{} },
	"csv":      func(o Options) Formatter { return CSVFormatter{} },
	"markdown": func(o Options) Formatter { return MarkdownFormatter{Options: o} },
	"pretty":   func(o Options) Formatter { return PrettyFormatter{Options: o} },
	"html":     func(o Options) Formatter { return HTMLFormatter{Options: o} },
}

var aliases = map[string]string{
	"table": "console",
	"text":  "console",
	"md":    "markdown",
	"glow":  "pretty",
}

// AvailableFormatterNames lists the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases maps each alias to the formatter it selects
func AvailableFormatAliases() map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}

// GetFormatterByName resolves a formatter by name or alias, case-insensitively
func GetFormatterByName(name string, opts Options) (Formatter, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		key = target
	}
	ctor, ok := formatters[key]
	if !ok {
		return nil, false
	}
	return ctor(opts), true
}

// WriteFormatted renders d and writes it to a timestamped file in the current
// directory, returning the file name.
func WriteFormatted(f Formatter, d *domain.Dashboard, ext string) (string, error) {
	data, err := f.Format(d)
	if err != nil {
		return "", fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("fidash_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
