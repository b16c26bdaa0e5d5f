// internal/core/usecases/catalog_gate.go
package usecases

import (
	"context"
	"errors"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/platform/config"
	"blackbird/internal/platform/logx"
)

var errNoUpdater = errors.New("no catalog updater configured")

// CatalogGate decide si refrescar el catálogo antes de verificar identificadores.
// Un fallo nunca aborta el run: se sigue con la copia local.
type CatalogGate struct {
	updater ports.CatalogUpdater
	source  string
	logger  logx.Logger
}

// NewCatalogGate crea la compuerta. source solo se usa en mensajes.
func NewCatalogGate(updater ports.CatalogUpdater, source string, logger logx.Logger) *CatalogGate {
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &CatalogGate{
		updater: updater,
		source:  source,
		logger:  logger.With("component", "catalog_gate"),
	}
}

// EnsureFresh omite la actualización con --no-update; en otro caso la ejecuta
// y convierte cualquier error en un resultado Failed.
func (g *CatalogGate) EnsureFresh(ctx context.Context, cfg config.Config) domain.UpdateResult {
	if cfg.NoUpdate {
		g.logger.Info("catalog update skipped")
		return domain.Skipped()
	}

	if g.updater == nil {
		return g.fail(errNoUpdater)
	}

	report, err := g.updater.Update(ctx)
	if err != nil {
		return g.fail(err)
	}

	g.logger.Info("catalog updated",
		"source", report.Source,
		"path", report.Path,
		"sites", report.Sites,
		"changed", report.Changed,
	)
	return domain.Updated(report.Sites, report.Changed)
}

func (g *CatalogGate) fail(err error) domain.UpdateResult {
	updateErr := &domain.CatalogUpdateError{Source: g.source, Err: err}
	g.logger.Warn("catalog update failed, using local copy", "error", updateErr.Error())
	return domain.Failed(updateErr.Error())
}
