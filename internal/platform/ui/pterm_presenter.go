// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar banner, colores y símbolos en la terminal.
type PTermPresenter struct {
	mu      sync.Mutex
	verbose bool

	runStart time.Time
	current  domain.Identifier
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm.
// Con verbose se muestran también los sitios sin cuenta y los errores.
func NewPTermPresenter(verbose bool) *PTermPresenter {
	return &PTermPresenter{verbose: verbose}
}

// Start muestra el banner y la configuración del run
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.runStart = time.Now()

	pterm.Println(StylePrimary.Sprint(BlackbirdBanner))

	infoPanel := pterm.DefaultBox.
		WithTitle("Run Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan))

	content := fmt.Sprintf("%s Usernames: %d   Emails: %d\n", IconTarget, info.Usernames, info.Emails)
	content += fmt.Sprintf("   Permutation: %s\n", pterm.Yellow(string(info.Permutation)))
	content += fmt.Sprintf("%s Concurrency: %d\n", IconWorkers, info.MaxConcurrent)
	content += fmt.Sprintf("%s Timeout: %ds\n", IconTime, info.TimeoutS)
	content += fmt.Sprintf("   Exports: %s   Dump: %s\n", formatsOrNone(info.Sinks), boolToString(info.Dump))
	content += fmt.Sprintf("   NSFW excluded: %s   Proxy: %s   AI: %s",
		boolToString(info.NoNSFW), boolToString(info.Proxy), boolToString(info.AI))
	if info.Filter != "" {
		content += fmt.Sprintf("\n   Filter: %s", pterm.Cyan(info.Filter))
	}

	infoPanel.Println(content)
	pterm.Println()
}

// CatalogUpdated muestra el resultado de la actualización del catálogo
func (p *PTermPresenter) CatalogUpdated(result domain.UpdateResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch result.Status {
	case domain.UpdateFailed:
		pterm.Warning.Printfln("Sites list could not be updated, using the local copy: %s", result.Reason)
	case domain.UpdateUpdated:
		if result.Changed {
			pterm.Info.Printfln("Sites list updated (%d sites)", result.Sites)
		} else {
			pterm.Info.Printfln("Sites list already up to date (%d sites)", result.Sites)
		}
	default:
		pterm.Info.Println("Sites list update skipped")
	}
}

// Permutations informa las permutaciones generadas
func (p *PTermPresenter) Permutations(seeds []string, generated int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Info.Printfln("Generated %s permutations from %s",
		pterm.Cyan(fmt.Sprintf("%d", generated)),
		strings.Join(seeds, " "),
	)
}

// StartIdentifier muestra la cabecera de un identificador
func (p *PTermPresenter) StartIdentifier(id domain.Identifier, index, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = id
	title := fmt.Sprintf("%s Searching %s %s", IconStage, id.Kind, pterm.Cyan(id.Value))
	if total > 1 {
		title += pterm.Gray(fmt.Sprintf(" (%d/%d)", index, total))
	}
	pterm.DefaultSection.WithLevel(2).Println(title)
}

// SiteChecked muestra coincidencias siempre y el resto solo en verbose
func (p *PTermPresenter) SiteChecked(outcome ports.CheckOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case outcome.Found:
		StatusSuccess.Style().Printfln("  %s [%s] %s", StatusSuccess.Symbol(), outcome.Site, outcome.URL)
		for _, m := range outcome.Metadata {
			pterm.Printfln("      %s %s: %s", pterm.Gray("↳"), m.Name, m.Value)
		}
	case !p.verbose:
	case outcome.Err != nil:
		StatusError.Style().Printfln("  %s [%s] %v", StatusError.Symbol(), outcome.Site, outcome.Err)
	default:
		StatusSkipped.Style().Printfln("  %s [%s] %s (%d)", StatusSkipped.Symbol(), outcome.Site, outcome.URL, outcome.Status)
	}
}

// FinishIdentifier muestra el cierre de un identificador
func (p *PTermPresenter) FinishIdentifier(id domain.Identifier, results domain.ResultSet, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if results.IsEmpty() {
		pterm.Info.Printfln("No accounts found for %s (%s)", id.Value, formatDuration(duration))
	} else {
		pterm.Success.Printfln("%d accounts found for %s (%s)", results.Len(), id.Value, formatDuration(duration))
	}
	pterm.Println(pterm.Gray(SeparatorLight))
	p.current = domain.Identifier{}
}

// Exported informa un archivo generado
func (p *PTermPresenter) Exported(format domain.SinkFormat, path string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Info.Printfln("%s %s saved to %s", IconArtifacts, strings.ToUpper(format.String()), path)
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Info.Println(msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Warning.Println(msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Error.Println(msg)
}

// Finish muestra el resumen del run
func (p *PTermPresenter) Finish(stats RunStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	statsPanel := pterm.DefaultBox.
		WithTitle("Summary").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen))

	content := fmt.Sprintf("%s Duration: %s\n", IconTime, pterm.Green(formatDuration(stats.TotalDuration)))
	content += fmt.Sprintf("%s Identifiers: %d (%d with accounts)\n", IconTarget, stats.Identifiers, stats.WithMatches)
	content += fmt.Sprintf("%s Accounts found: %s", IconSuccess, pterm.Cyan(fmt.Sprintf("%d", stats.TotalMatches)))
	if stats.ExportFailures > 0 {
		content += fmt.Sprintf("\n%s Export failures: %s", IconError, pterm.Red(fmt.Sprintf("%d", stats.ExportFailures)))
	}
	statsPanel.Println(content)

	if len(stats.ByCategory) > 0 {
		tableData := pterm.TableData{{"Category", "Accounts"}}
		keys := make([]string, 0, len(stats.ByCategory))
		for k := range stats.ByCategory {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tableData = append(tableData, []string{k, fmt.Sprintf("%d", stats.ByCategory[k])})
		}

		pterm.DefaultTable.
			WithHasHeader().
			WithBoxed().
			WithData(tableData).
			Render()
	}
	pterm.Println()
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	return nil
}

func formatsOrNone(formats []domain.SinkFormat) string {
	if len(formats) == 0 {
		return pterm.Gray("none")
	}
	return pterm.Green(strings.ToUpper(joinFormats(formats)))
}
