// internal/platform/ui/presenter.go
package ui

import (
	"time"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
)

// Presenter define la interfaz para presentar el progreso de un run
// al usuario. Los logs estructurados van por logx; esto es la salida visible.
type Presenter interface {
	// Start muestra el banner y la configuración del run
	Start(info RunInfo)

	// CatalogUpdated muestra el resultado de la compuerta de actualización
	CatalogUpdated(result domain.UpdateResult)

	// Permutations informa cuántos identificadores se generaron a partir de las semillas
	Permutations(seeds []string, generated int)

	// StartIdentifier notifica el inicio del ciclo de un identificador
	StartIdentifier(id domain.Identifier, index, total int)

	// SiteChecked recibe el resultado de cada objetivo verificado
	SiteChecked(outcome ports.CheckOutcome)

	// FinishIdentifier notifica el fin del ciclo de un identificador
	FinishIdentifier(id domain.Identifier, results domain.ResultSet, duration time.Duration)

	// Exported informa un archivo generado por un sink
	Exported(format domain.SinkFormat, path string)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish muestra el resumen del run
	Finish(stats RunStats)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene la configuración visible del run.
type RunInfo struct {
	RunID         string
	Usernames     int
	Emails        int
	Permutation   domain.PermutationMode
	Sinks         []domain.SinkFormat
	Dump          bool
	Filter        string
	NoNSFW        bool
	Proxy         bool
	AI            bool
	TimeoutS      int
	MaxConcurrent int
	OutputDir     string
}

// RunStats contiene estadísticas finales del run.
type RunStats struct {
	TotalDuration  time.Duration
	Identifiers    int
	WithMatches    int
	TotalMatches   int
	ExportFailures int
	ByCategory     map[string]int
}
