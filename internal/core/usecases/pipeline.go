// internal/core/usecases/pipeline.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/platform/config"
	"blackbird/internal/platform/logx"
	"blackbird/internal/platform/ui"
)

// Pipeline ejecuta un run completo: compuerta del catálogo, rama de usernames
// y luego rama de emails, un identificador a la vez.
type Pipeline struct {
	gate       *CatalogGate
	dispatcher *Dispatcher
	aggregator *Aggregator
	router     *ExportRouter
	workspace  ports.Workspace
	enricher   ports.Enricher
	presenter  ui.Presenter
	logger     logx.Logger
	runID      string
}

// PipelineOptions configura el pipeline.
type PipelineOptions struct {
	RunID         string
	Updater       ports.CatalogUpdater
	CatalogSource string
	Verifier      ports.Verifier
	Sinks         []ports.Sink
	Workspace     ports.Workspace

	// Enricher solo se usa cuando la configuración pide enriquecimiento
	Enricher ports.Enricher

	Presenter ui.Presenter
	Logger    logx.Logger
}

// NewPipeline crea una nueva instancia del pipeline.
func NewPipeline(opts PipelineOptions) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = logx.NewSilent()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}

	return &Pipeline{
		gate:       NewCatalogGate(opts.Updater, opts.CatalogSource, opts.Logger),
		aggregator: NewAggregator(),
		router:     NewExportRouter(opts.Sinks, opts.Workspace, opts.Presenter, opts.Logger),
		workspace:  opts.Workspace,
		enricher:   opts.Enricher,
		presenter:  opts.Presenter,
		logger:     opts.Logger.With("component", "pipeline"),
		runID:      opts.RunID,
		dispatcher: NewDispatcher(opts.Verifier, nil, opts.Presenter, opts.Logger),
	}
}

// Run ejecuta el run. Solo retorna error ante fallos fatales: verificación
// inválida, fallo al inicializar el enriquecedor o cancelación.
func (p *Pipeline) Run(ctx context.Context, cfg config.Config) (ui.RunStats, error) {
	start := time.Now()
	stats := ui.RunStats{ByCategory: make(map[string]int)}

	p.presenter.Start(p.runInfo(cfg))
	p.logger.Info("starting run",
		"usernames", len(cfg.Usernames),
		"emails", len(cfg.Emails),
		"permutation", cfg.Permutation.String(),
		"sinks", len(cfg.Outputs.Sinks()),
	)

	update := p.gate.EnsureFresh(ctx, cfg)
	p.presenter.CatalogUpdated(update)

	enricher, err := p.initEnricher(ctx, cfg)
	if err != nil {
		return stats, err
	}
	p.dispatcher.enricher = enricher

	if len(cfg.Usernames) > 0 {
		expansion, err := Expand(cfg.Usernames, cfg.Permutation)
		if err != nil {
			return stats, err
		}
		if expansion.Generated > 0 {
			p.presenter.Permutations(cfg.Usernames, expansion.Generated)
			p.logger.Info("permutations generated",
				"seeds", len(cfg.Usernames),
				"orderings", expansion.Orderings,
				"generated", expansion.Generated,
			)
		}
		if err := p.runBranch(ctx, expansion.Identifiers, cfg, &stats); err != nil {
			return stats, err
		}
	}

	if len(cfg.Emails) > 0 {
		if err := p.runBranch(ctx, domain.Emails(cfg.Emails), cfg, &stats); err != nil {
			return stats, err
		}
	}

	stats.TotalDuration = time.Since(start)
	p.logger.Info("run completed",
		"identifiers", stats.Identifiers,
		"with_matches", stats.WithMatches,
		"matches", stats.TotalMatches,
		"export_failures", stats.ExportFailures,
		"duration_ms", stats.TotalDuration.Milliseconds(),
	)
	p.presenter.Finish(stats)
	return stats, nil
}

// initEnricher inicializa el enriquecedor una sola vez, antes de cualquier identificador.
func (p *Pipeline) initEnricher(ctx context.Context, cfg config.Config) (ports.Enricher, error) {
	if !cfg.AI {
		return nil, nil
	}
	if p.enricher == nil {
		return nil, fmt.Errorf("%w: no enricher available", domain.ErrEnricherInit)
	}
	if err := p.enricher.Init(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrEnricherInit, p.enricher.Name(), err)
	}
	p.logger.Info("enricher ready", "name", p.enricher.Name())
	return p.enricher, nil
}

// runBranch procesa los identificadores de un dominio en orden, uno a la vez.
func (p *Pipeline) runBranch(ctx context.Context, ids []domain.Identifier, cfg config.Config, stats *ui.RunStats) error {
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.runIdentifier(ctx, id, i+1, len(ids), cfg, stats); err != nil {
			return err
		}
	}
	return nil
}

// runIdentifier ejecuta el ciclo de un identificador: verificar, agregar, exportar.
func (p *Pipeline) runIdentifier(ctx context.Context, id domain.Identifier, index, total int, cfg config.Config, stats *ui.RunStats) error {
	if err := p.aggregator.Begin(id); err != nil {
		return err
	}
	defer p.aggregator.Reset()

	p.presenter.StartIdentifier(id, index, total)
	start := time.Now()

	dir := p.workspace.Dir(id)
	results, err := p.dispatcher.Verify(ctx, id, cfg, dir)
	if err != nil {
		p.logger.Err(err, "identifier", id.Value)
		return err
	}
	// un ResultSet obtenido tras la cancelación puede estar incompleto
	if err := ctx.Err(); err != nil {
		p.logger.Warn("identifier interrupted, results discarded", "identifier", id.Value, "partial", results.Len())
		return err
	}
	p.aggregator.Set(results)
	p.presenter.FinishIdentifier(id, results, time.Since(start))

	stats.Identifiers++
	if !p.aggregator.IsEmpty() {
		stats.WithMatches++
		stats.TotalMatches += results.Len()
		for cat, n := range results.Categories() {
			stats.ByCategory[cat] += n
		}
	}

	outcomes := p.router.Route(p.aggregator.Results(), id, cfg, dir)
	stats.ExportFailures += Failures(outcomes)
	return nil
}

func (p *Pipeline) runInfo(cfg config.Config) ui.RunInfo {
	return ui.RunInfo{
		RunID:         p.runID,
		Usernames:     len(cfg.Usernames),
		Emails:        len(cfg.Emails),
		Permutation:   cfg.Permutation,
		Sinks:         cfg.Outputs.Sinks(),
		Dump:          cfg.Outputs.Dump,
		Filter:        cfg.Filter,
		NoNSFW:        cfg.NoNSFW,
		Proxy:         cfg.ProxyURL != "",
		AI:            cfg.AI,
		TimeoutS:      cfg.TimeoutS,
		MaxConcurrent: cfg.MaxConcurrent,
		OutputDir:     cfg.OutputDir,
	}
}
