package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"blackbird/internal/core/ports"
	"blackbird/internal/platform/httpclient"
	"blackbird/internal/platform/logx"
)

// Updater descarga el catálogo de usernames y reemplaza la copia en disco
// solo cuando el contenido cambió.
type Updater struct {
	url    string
	path   string
	client *httpclient.Client
	logger logx.Logger
}

// UpdaterOptions configura el Updater.
type UpdaterOptions struct {
	URL    string
	Path   string
	Client *httpclient.Client
	Logger logx.Logger
}

// NewUpdater crea un Updater.
func NewUpdater(opts UpdaterOptions) *Updater {
	if opts.Logger == nil {
		opts.Logger = logx.NewSilent()
	}
	return &Updater{
		url:    opts.URL,
		path:   opts.Path,
		client: opts.Client,
		logger: opts.Logger.With("component", "catalog-updater"),
	}
}

// Update descarga, valida y persiste el catálogo de forma atómica.
// Ante cualquier error la copia en disco no se toca.
func (u *Updater) Update(ctx context.Context) (ports.CatalogReport, error) {
	report := ports.CatalogReport{Source: u.url, Path: u.path}

	data, err := u.client.FetchJSON(ctx, u.url)
	if err != nil {
		return report, fmt.Errorf("download: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return report, err
	}
	report.Sites = len(c.Sites)

	current, err := os.ReadFile(u.path)
	if err == nil && sameContent(current, data) {
		u.logger.Debug("catalog unchanged", "path", u.path, "sites", report.Sites)
		return report, nil
	}

	if err := writeAtomic(u.path, data); err != nil {
		return report, err
	}
	report.Changed = true

	u.logger.Info("catalog updated", "path", u.path, "sites", report.Sites)
	return report, nil
}

func sameContent(a, b []byte) bool {
	ha := sha256.Sum256(a)
	hb := sha256.Sum256(b)
	return bytes.Equal(ha[:], hb[:])
}

// writeAtomic escribe en un archivo temporal del mismo directorio y lo renombra.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op después del rename

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp catalog: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp catalog: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}
