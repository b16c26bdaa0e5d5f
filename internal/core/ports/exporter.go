// internal/core/ports/exporter.go
package ports

import (
	"blackbird/internal/core/domain"
)

// Sink es el port para exportar un ResultSet en un formato concreto.
type Sink interface {
	// Format retorna el formato que produce el sink
	Format() domain.SinkFormat

	// Export escribe el ResultSet y retorna la ruta del archivo generado
	Export(results domain.ResultSet, job ExportJob) (string, error)
}

// ExportJob indica cómo persistir un ResultSet no vacío.
type ExportJob struct {
	// Identifier al que pertenecen los resultados
	Identifier domain.Identifier

	// Dir directorio ya creado del identificador
	Dir string

	// DateStamp sello de fecha del run (MM_DD_YYYY)
	DateStamp string

	// DatePretty fecha legible para informes
	DatePretty string
}

// FileName construye el nombre de archivo para un formato.
func (j ExportJob) FileName(format domain.SinkFormat) string {
	return j.Identifier.Slug() + "_" + j.DateStamp + "_blackbird" + format.Extension()
}

// Workspace resuelve las rutas de salida de un run.
type Workspace interface {
	// Dir retorna el directorio perezoso de un identificador
	Dir(id domain.Identifier) OutputDir

	// Job construye el ExportJob para un directorio ya creado
	Job(id domain.Identifier, dir string) ExportJob
}
