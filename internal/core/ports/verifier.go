// internal/core/ports/verifier.go
package ports

import (
	"context"
	"time"

	"blackbird/internal/core/domain"
)

// Verifier es el port hacia el motor de verificación.
// Para un identificador retorna todas las coincidencias confirmadas.
// Los fallos por objetivo (timeouts, hosts caídos) se absorben dentro del motor;
// un error retornado significa que los parámetros del run son inválidos.
type Verifier interface {
	// Verify bloquea hasta tener el ResultSet completo del identificador
	Verify(ctx context.Context, id domain.Identifier, opts VerifyOptions) (domain.ResultSet, error)
}

// VerifyOptions son los parámetros del run que el pipeline pasa sin modificar.
type VerifyOptions struct {
	// Filter expresión de filtro sobre el catálogo (vacío = todos)
	Filter string

	// ExcludeNSFW descarta objetivos de la categoría NSFW
	ExcludeNSFW bool

	// Timeout por petición
	Timeout time.Duration

	// MaxConcurrent límite de peticiones simultáneas
	MaxConcurrent int

	// ProxyURL proxy para todas las peticiones (opcional)
	ProxyURL string

	// Dump persiste el contenido crudo de las coincidencias en DumpDir
	Dump    bool
	DumpDir OutputDir

	// KeepContent conserva el cuerpo de las coincidencias en memoria (enriquecimiento)
	KeepContent bool

	// Progress recibe el resultado de cada objetivo (opcional)
	Progress func(CheckOutcome)
}

// CheckOutcome es el resultado de verificar un único objetivo.
type CheckOutcome struct {
	Site   string
	URL    string
	Found  bool
	Status int
	Err    error

	// Metadata extraída de la respuesta, solo cuando Found
	Metadata []domain.MetadataField
}

// OutputDir es el directorio de salida de un identificador, creado de forma perezosa.
type OutputDir interface {
	// Path retorna la ruta sin crearla
	Path() string

	// Ensure crea el directorio la primera vez y retorna su ruta
	Ensure() (string, error)

	// Created indica si Ensure ya creó el directorio
	Created() bool
}
