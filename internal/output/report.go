package output

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/finplan/cashflow-projector/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when no formatter matches the requested name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// GenerateReport resolves a formatter by name and writes its output to a
// timestamped report file. Returns the written filename.
func GenerateReport(result *domain.ProjectionResult, format string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("%w: %q. Try one of: %s", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "))
	}
	ext := f.Name()
	if ext == "console" {
		ext = "txt"
	}
	return WriteFormatted(f, result, ext)
}

// SavePlan writes a plan back out as YAML, e.g. for the generated example file.
func SavePlan(plan *domain.Plan, filename string) error {
	b, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
