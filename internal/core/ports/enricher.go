// internal/core/ports/enricher.go
package ports

import (
	"context"

	"blackbird/internal/core/domain"
)

// Enricher es la capacidad opcional de extraer metadata con un modelo de lenguaje.
// Se inicializa una vez por run y se comparte en solo lectura entre identificadores.
type Enricher interface {
	// Name retorna el nombre del modelo
	Name() string

	// Init carga el modelo; un error aquí es fatal para el run
	Init(ctx context.Context) error

	// Enrich agrega entidades a la cuenta a partir de su contenido
	Enrich(ctx context.Context, account *domain.FoundAccount) error
}
