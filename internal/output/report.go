package output

import (
	"github.com/tirecycle/feasibility/internal/domain"
)

// GenerateReport writes the report in the requested format to dir and returns the
// written file names. The pseudo-format "all" writes the verbose console, scenario CSV
// and HTML reports.
func GenerateReport(report *domain.FeasibilityReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range []string{"console", "scenarios-csv", "html"} {
			written, err := GenerateReport(report, name, dir)
			if err != nil {
				return files, err
			}
			files = append(files, written...)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, UnsupportedFormatError(format)
	}
	filename, err := WriteFormatted(f, report, dir, fileExtensions[f.Name()])
	if err != nil {
		return nil, err
	}
	return []string{filename}, nil
}
