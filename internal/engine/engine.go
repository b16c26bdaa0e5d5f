// Package engine implements ports.Verifier with HTTP checks driven by catalog rules.
package engine

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"blackbird/internal/catalog"
	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/platform/cache"
	"blackbird/internal/platform/config"
	"blackbird/internal/platform/httpclient"
	"blackbird/internal/platform/logx"
	"blackbird/internal/platform/workerpool"
)

// Options configura el motor de verificación.
type Options struct {
	// CatalogPath catálogo WhatsMyName para usernames
	CatalogPath string

	// EmailCatalogPath catálogo de sitios para emails (fallback al embebido)
	EmailCatalogPath string

	// SessionID credencial para los sitios que la requieren (vacío = se omiten)
	SessionID string

	// MaxRetries reintentos ante errores de red por petición
	MaxRetries int

	// UserAgents pool de user agents (default: httpclient.DefaultUserAgents)
	UserAgents []string

	Logger logx.Logger
}

// Engine verifica identificadores contra el catálogo de su tipo.
type Engine struct {
	opts   Options
	logger logx.Logger

	// catalogs catálogos ya parseados, por ruta y fecha de modificación
	catalogs *cache.LRU[catalog.Catalog]
}

// catalogCacheSize cubre un catálogo por tipo más versiones reemplazadas
const catalogCacheSize = 8

var _ ports.Verifier = (*Engine)(nil)

// New crea el motor de verificación.
func New(opts Options) *Engine {
	if opts.CatalogPath == "" {
		opts.CatalogPath = config.DefaultCatalogPath
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewSilent()
	}
	return &Engine{
		opts:     opts,
		logger:   opts.Logger.With("component", "engine"),
		catalogs: cache.New[catalog.Catalog](catalogCacheSize),
	}
}

// Verify carga el catálogo del tipo de identificador, aplica filtro y exclusión NSFW,
// y verifica cada sitio con concurrencia acotada. Solo retorna error cuando los
// parámetros del run son inválidos (catálogo ausente, filtro mal formado, proxy inválido).
func (e *Engine) Verify(ctx context.Context, id domain.Identifier, opts ports.VerifyOptions) (domain.ResultSet, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	sites, err := e.sites(id.Kind, opts)
	if err != nil {
		return nil, err
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:    opts.Timeout,
		MaxRetries: e.opts.MaxRetries,
		UserAgents: e.opts.UserAgents,
		ProxyURL:   opts.ProxyURL,
	}, e.logger)
	if err != nil {
		return nil, err
	}

	logger := e.logger.With("identifier", id.Value, "kind", id.Kind.String())
	logger.Debug("verifying identifier", "sites", len(sites), "max_concurrent", opts.MaxConcurrent)

	c := &checker{
		client:  client,
		id:      id,
		session: e.opts.SessionID,
		opts:    opts,
		logger:  logger,
	}

	var (
		mu      sync.Mutex
		results domain.ResultSet
	)

	tasks := make([]workerpool.Task, 0, len(sites))
	for _, site := range sites {
		tasks = append(tasks, workerpool.TaskFunc{
			TaskName: site.Name,
			Fn: func(ctx context.Context) error {
				account, outcome := c.check(ctx, site)
				if opts.Progress != nil {
					opts.Progress(outcome)
				}
				if account != nil {
					mu.Lock()
					results = append(results, *account)
					mu.Unlock()
				}
				return outcome.Err
			},
		})
	}

	start := time.Now()
	pool := workerpool.NewWorkerPool(workerpool.WorkerPoolConfig{
		Workers: opts.MaxConcurrent,
		Logger:  logger,
	})
	taskResults := pool.Submit(ctx, tasks)

	failed, timeouts := 0, 0
	for _, r := range taskResults {
		if r.Error != nil {
			failed++
			if failureReason(r.Error) == "timeout" {
				timeouts++
			}
		}
	}

	logger.Info("identifier verified",
		"sites", len(sites),
		"found", len(results),
		"errors", failed,
		"timeouts", timeouts,
		"workers", pool.Workers(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	// con el contexto cancelado parte de los sitios no se verificó
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results.Sorted(), nil
}

// sites retorna los sitios a verificar para un tipo de identificador.
func (e *Engine) sites(kind domain.IdentifierKind, opts ports.VerifyOptions) ([]catalog.Site, error) {
	cat, err := e.catalog(kind)
	if err != nil {
		return nil, err
	}

	filter, err := catalog.ParseFilter(opts.Filter)
	if err != nil {
		return nil, err
	}

	selected := filter.Apply(cat.Sites)
	out := make([]catalog.Site, 0, len(selected))
	for _, s := range selected {
		if opts.ExcludeNSFW && s.IsNSFW() {
			continue
		}
		if s.NeedsSession() && e.opts.SessionID == "" {
			e.logger.Debug("site skipped, session not configured", "site", s.Name, "env", config.SessionEnv)
			continue
		}
		out = append(out, s)
	}

	if len(out) == 0 {
		e.logger.Warn("no sites left to check", "kind", kind.String(), "filter", opts.Filter)
	}
	return out, nil
}

// catalog carga el catálogo del tipo, reutilizando la versión parseada mientras
// el archivo no cambie. El catálogo de emails embebido se parsea cada vez.
func (e *Engine) catalog(kind domain.IdentifierKind) (catalog.Catalog, error) {
	var (
		path string
		load func(string) (catalog.Catalog, error)
	)
	switch kind {
	case domain.KindUsername:
		path, load = e.opts.CatalogPath, catalog.Load
	case domain.KindEmail:
		path, load = e.opts.EmailCatalogPath, catalog.LoadEmail
	default:
		return catalog.Catalog{}, domain.ErrInvalidIdentifierKind
	}

	key := catalogKey(kind, path)
	if key != "" {
		if cat, ok := e.catalogs.Get(key); ok {
			return cat, nil
		}
	}

	cat, err := load(path)
	if err != nil {
		return catalog.Catalog{}, err
	}
	if key != "" {
		e.catalogs.Set(key, cat, 0)
	}
	return cat, nil
}

// catalogKey retorna "" cuando el archivo no existe.
func catalogKey(kind domain.IdentifierKind, path string) string {
	if path == "" {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return fmt.Sprintf("%s|%s|%d|%d", kind.String(), path, info.ModTime().UnixNano(), info.Size())
}

// Describe resume el motor para logs.
func (e *Engine) Describe() string {
	return fmt.Sprintf("engine(catalog=%s, email_catalog=%s, session=%t)",
		e.opts.CatalogPath, e.opts.EmailCatalogPath, e.opts.SessionID != "")
}
