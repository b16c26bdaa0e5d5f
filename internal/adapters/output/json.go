// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
)

// JSONReport es el documento que escribe JSONSink.
type JSONReport struct {
	Identifier string                `json:"identifier"`
	Kind       string                `json:"kind"`
	Date       string                `json:"date"`
	Total      int                   `json:"total"`
	Categories map[string]int        `json:"categories"`
	Accounts   []domain.FoundAccount `json:"accounts"`
}

// JSONSink exporta un ResultSet como JSON indentado.
type JSONSink struct{}

// Format retorna el formato JSON.
func (JSONSink) Format() domain.SinkFormat {
	return domain.SinkJSON
}

// Export escribe <dir>/<slug>_<fecha>_blackbird.json.
func (s JSONSink) Export(results domain.ResultSet, job ports.ExportJob) (string, error) {
	path := filepath.Join(job.Dir, job.FileName(s.Format()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	report := JSONReport{
		Identifier: job.Identifier.Value,
		Kind:       job.Identifier.Kind.String(),
		Date:       job.DatePretty,
		Total:      results.Len(),
		Categories: results.Categories(),
		Accounts:   results,
	}

	// Codificar JSON con indentación
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}

	return path, f.Close()
}
