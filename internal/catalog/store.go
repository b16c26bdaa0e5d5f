package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"blackbird/internal/core/domain"
)

//go:embed data/email-data.json
var defaultEmailCatalog []byte

// Load lee y valida un catálogo desde disco.
// Un archivo inexistente retorna domain.ErrCatalogNotFound.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Catalog{}, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, path)
		}
		return Catalog{}, fmt.Errorf("%w: %s: %v", domain.ErrCatalogNotFound, path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadEmail lee el catálogo de email desde disco y usa el catálogo
// incluido en el binario cuando el archivo no existe.
func LoadEmail(path string) (Catalog, error) {
	if path != "" {
		c, err := Load(path)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, domain.ErrCatalogNotFound) {
			return Catalog{}, err
		}
	}
	return DefaultEmail()
}

// DefaultEmail retorna el catálogo de email incluido en el binario.
func DefaultEmail() (Catalog, error) {
	return Parse(defaultEmailCatalog)
}
