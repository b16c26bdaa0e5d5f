// internal/adapters/output/csv.go
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
)

// CSVHeader columnas del archivo CSV.
var CSVHeader = []string{"name", "category", "url", "status", "metadata"}

// CSVSink exporta un ResultSet como tabla CSV, una fila por cuenta.
type CSVSink struct{}

// Format retorna el formato CSV.
func (CSVSink) Format() domain.SinkFormat {
	return domain.SinkCSV
}

// Export escribe <dir>/<slug>_<fecha>_blackbird.csv.
func (s CSVSink) Export(results domain.ResultSet, job ports.ExportJob) (string, error) {
	path := filepath.Join(job.Dir, job.FileName(s.Format()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, a := range results {
		row := []string{a.Site, a.Category, a.URL, strconv.Itoa(a.Status), a.MetadataString()}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	return path, f.Close()
}
