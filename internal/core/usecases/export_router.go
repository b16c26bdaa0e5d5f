// internal/core/usecases/export_router.go
package usecases

import (
	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/platform/config"
	"blackbird/internal/platform/logx"
	"blackbird/internal/platform/ui"
)

// ExportOutcome es el resultado de un sink para un identificador.
type ExportOutcome struct {
	Format domain.SinkFormat
	Path   string
	Err    error
}

// ExportRouter envía un ResultSet no vacío a los sinks pedidos, en orden fijo.
// Los fallos de un sink no bloquean a los demás.
type ExportRouter struct {
	sinks     map[domain.SinkFormat]ports.Sink
	workspace ports.Workspace
	presenter ui.Presenter
	logger    logx.Logger
}

// NewExportRouter crea el router con los sinks disponibles.
func NewExportRouter(sinks []ports.Sink, workspace ports.Workspace, presenter ui.Presenter, logger logx.Logger) *ExportRouter {
	if presenter == nil {
		presenter = ui.NewNoopPresenter()
	}
	if logger == nil {
		logger = logx.NewSilent()
	}
	bySink := make(map[domain.SinkFormat]ports.Sink, len(sinks))
	for _, s := range sinks {
		bySink[s.Format()] = s
	}
	return &ExportRouter{
		sinks:     bySink,
		workspace: workspace,
		presenter: presenter,
		logger:    logger.With("component", "export_router"),
	}
}

// Route exporta los resultados de un identificador. Sin coincidencias o sin
// sinks pedidos no hace nada, ni siquiera crear el directorio.
func (r *ExportRouter) Route(results domain.ResultSet, id domain.Identifier, cfg config.Config, dir ports.OutputDir) []ExportOutcome {
	formats := cfg.Outputs.Sinks()
	if results.IsEmpty() || len(formats) == 0 {
		return nil
	}

	outcomes := make([]ExportOutcome, 0, len(formats))

	path, err := dir.Ensure()
	if err != nil {
		for _, f := range formats {
			outcomes = append(outcomes, r.failed(f, id, err))
		}
		return outcomes
	}

	job := r.workspace.Job(id, path)
	for _, f := range formats {
		sink, ok := r.sinks[f]
		if !ok {
			outcomes = append(outcomes, r.failed(f, id, domain.ErrUnsupportedFormat))
			continue
		}

		file, err := sink.Export(results, job)
		if err != nil {
			outcomes = append(outcomes, r.failed(f, id, err))
			continue
		}

		r.logger.Info("results exported", "identifier", id.Value, "format", f.String(), "path", file)
		r.presenter.Exported(f, file)
		outcomes = append(outcomes, ExportOutcome{Format: f, Path: file})
	}
	return outcomes
}

func (r *ExportRouter) failed(f domain.SinkFormat, id domain.Identifier, err error) ExportOutcome {
	exportErr := &domain.ExportError{Format: f, Identifier: id, Err: err}
	r.logger.Warn("export failed", "identifier", id.Value, "format", f.String(), "error", err.Error())
	r.presenter.Warning(exportErr.Error())
	return ExportOutcome{Format: f, Err: exportErr}
}

// Failures cuenta los sinks fallidos.
func Failures(outcomes []ExportOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
