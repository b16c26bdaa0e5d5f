// internal/core/ports/catalog.go
package ports

import "context"

// CatalogUpdater refresca el catálogo de objetivos en disco.
type CatalogUpdater interface {
	// Update descarga el catálogo y reemplaza la copia local si cambió
	Update(ctx context.Context) (CatalogReport, error)
}

// CatalogReport resume una actualización exitosa.
type CatalogReport struct {
	Source  string
	Path    string
	Sites   int
	Changed bool
}
