// internal/core/usecases/aggregator.go
package usecases

import (
	"fmt"

	"blackbird/internal/core/domain"
)

// Aggregator guarda el identificador activo y su ResultSet.
// Contiene como máximo un identificador; Reset limpia ambos a la vez.
type Aggregator struct {
	current *domain.Identifier
	results domain.ResultSet
}

// NewAggregator crea un agregador vacío.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Begin ocupa el slot con un identificador. Falla si otro sigue activo.
func (a *Aggregator) Begin(id domain.Identifier) error {
	if a.current != nil {
		return fmt.Errorf("%w: %q", domain.ErrIdentifierActive, a.current.Value)
	}
	a.current = &id
	a.results = nil
	return nil
}

// Set reemplaza el ResultSet del identificador activo.
func (a *Aggregator) Set(results domain.ResultSet) {
	a.results = results
}

// IsEmpty indica si el identificador activo no tiene coincidencias.
func (a *Aggregator) IsEmpty() bool {
	return a.results.IsEmpty()
}

// Results retorna el ResultSet del identificador activo.
func (a *Aggregator) Results() domain.ResultSet {
	return a.results
}

// Current retorna el identificador activo.
func (a *Aggregator) Current() (domain.Identifier, bool) {
	if a.current == nil {
		return domain.Identifier{}, false
	}
	return *a.current, true
}

// Reset vacía el slot y el ResultSet.
func (a *Aggregator) Reset() {
	a.current = nil
	a.results = nil
}
