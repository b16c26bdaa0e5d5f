// internal/core/usecases/expander.go
package usecases

import (
	"fmt"

	"blackbird/internal/core/domain"
	"blackbird/internal/platform/permute"
)

// Expansion es la lista de usernames a verificar tras aplicar el modo de permutación.
type Expansion struct {
	Identifiers []domain.Identifier

	// Generated cuántos identificadores produjo la permutación (0 sin permutación)
	Generated int

	// Orderings selecciones ordenadas de semillas recorridas, antes de separadores y dedupe
	Orderings int
}

// Expand aplica el modo de permutación a las semillas.
// Con modo none o menos de dos semillas las semillas pasan sin cambios y en orden.
func Expand(seeds []string, mode domain.PermutationMode) (Expansion, error) {
	if len(seeds) == 0 {
		return Expansion{}, nil
	}
	if !mode.Enabled() || len(seeds) < 2 {
		return Expansion{Identifiers: domain.Usernames(seeds)}, nil
	}

	values, err := permute.Gather(seeds, permute.Method(mode))
	if err != nil {
		return Expansion{}, fmt.Errorf("expand usernames: %w", err)
	}
	return Expansion{
		Identifiers: domain.Usernames(values),
		Generated:   len(values),
		Orderings:   permute.Count(len(seeds), permute.Method(mode)),
	}, nil
}
