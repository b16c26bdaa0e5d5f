// internal/adapters/output/pdf.go
package output

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
)

// PDFSink exporta un ResultSet como informe A4.
type PDFSink struct {
	// Version se imprime en el pie de página (opcional)
	Version string
}

// Format retorna el formato PDF.
func (PDFSink) Format() domain.SinkFormat {
	return domain.SinkPDF
}

// Export escribe <dir>/<slug>_<fecha>_blackbird.pdf.
func (s PDFSink) Export(results domain.ResultSet, job ports.ExportJob) (string, error) {
	path := filepath.Join(job.Dir, job.FileName(s.Format()))

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	title := cases.Title(language.English)

	pdf.SetTitle("Blackbird report for "+job.Identifier.Value, true)
	pdf.SetAuthor("Blackbird", true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("Blackbird %s - page %d", s.Version, pdf.PageNo())
		pdf.CellFormat(0, 6, tr(strings.Join(strings.Fields(footer), " ")), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Cabecera
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(20, 20, 40)
	pdf.CellFormat(0, 12, "Blackbird", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(70, 70, 70)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s: %s", title.String(job.Identifier.Kind.String()), job.Identifier.Value)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(job.DatePretty), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("%d accounts found", results.Len()), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeCategorySummary(pdf, tr, title, results)

	for _, a := range results {
		writeAccount(pdf, tr, title, a)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return path, nil
}

func writeCategorySummary(pdf *fpdf.Fpdf, tr func(string) string, title cases.Caser, results domain.ResultSet) {
	stats := results.Categories()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s (%d)", title.String(name), stats[name]))
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(0, 5, tr(strings.Join(parts, "   ")), "", "C", false)
	pdf.Ln(3)

	pdf.SetDrawColor(200, 200, 200)
	y := pdf.GetY()
	pdf.Line(15, y, 195, y)
	pdf.Ln(3)
}

func writeAccount(pdf *fpdf.Fpdf, tr func(string) string, title cases.Caser, a domain.FoundAccount) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(20, 20, 40)
	pdf.CellFormat(120, 7, tr(a.Site), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 7, tr(title.String(a.Category)), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "U", 9)
	pdf.SetTextColor(30, 80, 200)
	pdf.CellFormat(0, 5, tr(a.URL), "", 1, "L", false, 0, a.URL)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(50, 50, 50)
	for _, m := range a.Metadata {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s: %s", m.Name, m.Value)), "", "L", false)
	}
	if len(a.Entities) > 0 {
		ents := make([]string, 0, len(a.Entities))
		for _, e := range a.Entities {
			ents = append(ents, fmt.Sprintf("%s [%s]", e.Text, e.Label))
		}
		pdf.MultiCell(0, 5, tr("Entities: "+strings.Join(ents, ", ")), "", "L", false)
	}
	pdf.Ln(3)
}
