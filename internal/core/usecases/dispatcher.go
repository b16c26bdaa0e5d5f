// internal/core/usecases/dispatcher.go
package usecases

import (
	"context"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/platform/config"
	"blackbird/internal/platform/logx"
	"blackbird/internal/platform/ui"
)

// Dispatcher verifica un identificador con el Verifier y, si hay enriquecedor,
// enriquece cada coincidencia.
type Dispatcher struct {
	verifier  ports.Verifier
	enricher  ports.Enricher
	presenter ui.Presenter
	logger    logx.Logger
}

// NewDispatcher crea el dispatcher. enricher puede ser nil.
func NewDispatcher(verifier ports.Verifier, enricher ports.Enricher, presenter ui.Presenter, logger logx.Logger) *Dispatcher {
	if presenter == nil {
		presenter = ui.NewNoopPresenter()
	}
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &Dispatcher{
		verifier:  verifier,
		enricher:  enricher,
		presenter: presenter,
		logger:    logger.With("component", "dispatcher"),
	}
}

// Options traduce la configuración del run a parámetros del Verifier.
func (d *Dispatcher) Options(cfg config.Config, dir ports.OutputDir) ports.VerifyOptions {
	return ports.VerifyOptions{
		Filter:        cfg.Filter,
		ExcludeNSFW:   cfg.NoNSFW,
		Timeout:       cfg.Timeout(),
		MaxConcurrent: cfg.MaxConcurrent,
		ProxyURL:      cfg.ProxyURL,
		Dump:          cfg.Outputs.Dump,
		DumpDir:       dir,
		KeepContent:   d.enricher != nil,
		Progress:      d.presenter.SiteChecked,
	}
}

// Verify bloquea hasta tener el ResultSet del identificador.
// Cualquier error del Verifier se retorna como *domain.VerificationError.
func (d *Dispatcher) Verify(ctx context.Context, id domain.Identifier, cfg config.Config, dir ports.OutputDir) (domain.ResultSet, error) {
	if d.verifier == nil {
		return nil, &domain.VerificationError{Identifier: id, Err: domain.ErrVerifierMissing}
	}

	results, err := d.verifier.Verify(ctx, id, d.Options(cfg, dir))
	if err != nil {
		return nil, &domain.VerificationError{Identifier: id, Err: err}
	}

	if d.enricher != nil {
		d.enrich(ctx, results)
	}
	return results, nil
}

// enrich agrega entidades a cada coincidencia con contenido; los fallos solo se registran.
func (d *Dispatcher) enrich(ctx context.Context, results domain.ResultSet) {
	for i := range results {
		account := &results[i]
		if len(account.Content) == 0 {
			continue
		}
		if err := d.enricher.Enrich(ctx, account); err != nil {
			d.logger.Warn("enrichment failed", "site", account.Site, "error", err.Error())
		}
		account.Content = nil
	}
}
