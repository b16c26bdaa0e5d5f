// internal/platform/ui/noop_presenter.go
package ui

import (
	"time"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
)

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para tests o modo headless.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Start(info RunInfo)                        {}
func (n *NoopPresenter) CatalogUpdated(result domain.UpdateResult) {}
func (n *NoopPresenter) Permutations(seeds []string, generated int) {}
func (n *NoopPresenter) StartIdentifier(id domain.Identifier, index, total int) {
}
func (n *NoopPresenter) SiteChecked(outcome ports.CheckOutcome) {}
func (n *NoopPresenter) FinishIdentifier(id domain.Identifier, results domain.ResultSet, duration time.Duration) {
}
func (n *NoopPresenter) Exported(format domain.SinkFormat, path string) {}
func (n *NoopPresenter) Info(msg string)                               {}
func (n *NoopPresenter) Warning(msg string)                            {}
func (n *NoopPresenter) Error(msg string)                              {}
func (n *NoopPresenter) Finish(stats RunStats)                         {}

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
