// internal/core/domain/enums.go
package domain

// PermutationMode controla cómo se expanden varias semillas de username.
type PermutationMode string

const (
	// PermuteNone no genera permutaciones
	PermuteNone PermutationMode = "none"

	// PermuteStrict combina al menos dos semillas, ignorando elementos sueltos
	PermuteStrict PermutationMode = "strict"

	// PermuteAll combina todas las semillas, incluidos los elementos sueltos
	PermuteAll PermutationMode = "all"
)

// IsValid verifica si el modo de permutación es válido.
func (m PermutationMode) IsValid() bool {
	switch m {
	case PermuteNone, PermuteStrict, PermuteAll:
		return true
	default:
		return false
	}
}

// Enabled indica si el modo genera permutaciones.
func (m PermutationMode) Enabled() bool {
	return m == PermuteStrict || m == PermuteAll
}

// String retorna la representación string del modo.
func (m PermutationMode) String() string {
	return string(m)
}

// SinkFormat identifica un destino de exportación.
type SinkFormat string

const (
	// SinkCSV exportación tabular
	SinkCSV SinkFormat = "csv"

	// SinkPDF informe en documento
	SinkPDF SinkFormat = "pdf"

	// SinkJSON serialización estructurada
	SinkJSON SinkFormat = "json"
)

// SinkOrder es el orden fijo en el que se invocan los sinks.
var SinkOrder = []SinkFormat{SinkCSV, SinkPDF, SinkJSON}

// IsValid verifica si el formato es conocido.
func (f SinkFormat) IsValid() bool {
	switch f {
	case SinkCSV, SinkPDF, SinkJSON:
		return true
	default:
		return false
	}
}

// Extension retorna la extensión de archivo del formato.
func (f SinkFormat) Extension() string {
	return "." + string(f)
}

// String retorna la representación string del formato.
func (f SinkFormat) String() string {
	return string(f)
}

// UpdateStatus es el resultado de la compuerta de actualización del catálogo.
type UpdateStatus string

const (
	// UpdateSkipped la actualización fue omitida explícitamente
	UpdateSkipped UpdateStatus = "skipped"

	// UpdateUpdated el catálogo se refrescó (puede no haber cambiado)
	UpdateUpdated UpdateStatus = "updated"

	// UpdateFailed la actualización falló; se usa el catálogo existente
	UpdateFailed UpdateStatus = "failed"
)

// String retorna la representación string del estado.
func (s UpdateStatus) String() string {
	return string(s)
}

// UpdateResult describe qué hizo la compuerta de actualización.
type UpdateResult struct {
	Status  UpdateStatus
	Reason  string // solo cuando Status == UpdateFailed
	Sites   int    // número de sitios en el catálogo descargado
	Changed bool   // el contenido en disco fue reemplazado
}

// Skipped construye un UpdateResult omitido.
func Skipped() UpdateResult {
	return UpdateResult{Status: UpdateSkipped}
}

// Updated construye un UpdateResult exitoso.
func Updated(sites int, changed bool) UpdateResult {
	return UpdateResult{Status: UpdateUpdated, Sites: sites, Changed: changed}
}

// Failed construye un UpdateResult fallido con su motivo.
func Failed(reason string) UpdateResult {
	return UpdateResult{Status: UpdateFailed, Reason: reason}
}
