package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tirecycle/feasibility/internal/domain"
)

// ErrUnsupportedFormat is returned for a format name no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter renders a feasibility report to bytes.
// Implementations must be pure: the same report always yields the same output.
type Formatter interface {
	Format(report *domain.FeasibilityReport) ([]byte, error)
	// Name returns the canonical format name used on the command line.
	Name() string
}

// FormatterFunc adapts an ordinary function to a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.FeasibilityReport) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.FeasibilityReport) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                       { return ff.ID }

// nowFunc is swapped in tests to pin report filenames.
var nowFunc = time.Now

// WriteFormatted runs a formatter and writes its output to a timestamped file in dir.
func WriteFormatted(f Formatter, report *domain.FeasibilityReport, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("feasibility_report_%s.%s", nowFunc().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVScenarioExporter{},
	HTMLFormatter{},
	JSONFormatter{},
	MarkdownFormatter{},
}

// fileExtensions maps a canonical format name to the extension of its report file.
var fileExtensions = map[string]string{
	"console":       "txt",
	"console-lite":  "txt",
	"csv":           "csv",
	"scenarios-csv": "csv",
	"html":          "html",
	"json":          "json",
	"markdown":      "md",
}

// GetFormatterByName fetches a registered formatter by canonical name or alias.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

var aliasMap = map[string]string{
	"verbose":       "console",
	"text":          "console",
	"summary":       "console-lite",
	"csv-summary":   "csv",
	"csv-scenarios": "scenarios-csv",
	"detailed-csv":  "scenarios-csv",
	"html-report":   "html",
	"md":            "markdown",
	"json-pretty":   "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnsupportedFormatError lists the available formats and aliases for an unknown name.
func UnsupportedFormatError(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
