// cmd/blackbird/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"blackbird/internal/adapters/output"
	"blackbird/internal/catalog"
	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/core/usecases"
	"blackbird/internal/engine"
	"blackbird/internal/enrich"
	"blackbird/internal/platform/config"
	"blackbird/internal/platform/httpclient"
	"blackbird/internal/platform/logx"
	"blackbird/internal/platform/ui"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	exitOK     = 0
	exitFatal  = 1
	exitConfig = 2
)

// deps agrupa los colaboradores que main construye, reemplazables en tests.
type deps struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	newVerifier  func(cfg config.Config, logger logx.Logger) ports.Verifier
	newUpdater   func(cfg config.Config, logger logx.Logger) (ports.CatalogUpdater, error)
	newEnricher  func(logger logx.Logger) ports.Enricher
	newPresenter func(cfg config.Config, stdout io.Writer) ui.Presenter
}

func defaultDeps() deps {
	return deps{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		now:          time.Now,
		newVerifier:  newEngine,
		newUpdater:   newUpdater,
		newEnricher:  func(logger logx.Logger) ports.Enricher { return enrich.NewNER(0, logger) },
		newPresenter: newPresenter,
	}
}

func main() {
	os.Exit(run(os.Args[1:], defaultDeps()))
}

// run ejecuta blackbird y retorna el código de salida.
func run(args []string, d deps) int {
	// 1. Config: defaults -> --config -> ENV -> flags
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(d.stderr, "Error: %v\n", err)
		fmt.Fprintln(d.stderr, "Try: blackbird -h for help")
		return exitConfig
	}

	// 2. Flags informativos, sin pasar por el pipeline
	switch {
	case cfg.About:
		config.PrintAbout(d.stdout)
		return exitOK
	case cfg.Help:
		config.PrintHelp(d.stdout)
		return exitOK
	case cfg.PrintVersion:
		config.PrintVersion(d.stdout, version, commit, date)
		return exitOK
	}

	// 3. Validación previa a cualquier I/O de red
	cfg, err = config.Validate(cfg)
	if err != nil {
		fmt.Fprintf(d.stderr, "Error: %v\n", err)
		fmt.Fprintln(d.stderr, "Usage: blackbird -u <username> | -e <email>")
		fmt.Fprintln(d.stderr, "Try: blackbird -h for help")
		return exitConfig
	}

	// 4. Logger compartido, con archivo de debug opcional
	runID := uuid.NewString()
	base, closeLog, err := logx.NewWithOptions(logx.Options{
		Level:    logx.ParseLevel(cfg.LogLevel),
		Console:  d.stderr,
		FilePath: cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(d.stderr, "Error: %v\n", err)
		return exitFatal
	}
	defer closeLog()
	logger := base.With("run_id", runID)

	logger.Info("blackbird starting",
		"version", version,
		"commit", commit,
		"usernames", len(cfg.Usernames),
		"emails", len(cfg.Emails),
		"output_dir", cfg.OutputDir,
	)

	// 5. Context y señales para apagado limpio
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	presenter := d.newPresenter(cfg, d.stdout)
	defer func() {
		if err := presenter.Close(); err != nil {
			logger.Warn("failed to close presenter", "error", err.Error())
		}
	}()

	updater, err := d.newUpdater(cfg, logger)
	if err != nil {
		logger.Err(err, "phase", "catalog-updater")
		presenter.Error(err.Error())
		return exitFatal
	}

	var enricher ports.Enricher
	if cfg.AI {
		enricher = d.newEnricher(logger)
	}

	// 6. Pipeline: catálogo -> usernames -> emails
	pipeline := usecases.NewPipeline(usecases.PipelineOptions{
		RunID:         runID,
		Updater:       updater,
		CatalogSource: cfg.CatalogURL,
		Verifier:      d.newVerifier(cfg, logger),
		Sinks:         output.Sinks(version),
		Workspace:     output.NewWorkspace(cfg.OutputDir, d.now()),
		Enricher:      enricher,
		Presenter:     presenter,
		Logger:        logger,
	})

	start := time.Now()
	stats, runErr := pipeline.Run(ctx, cfg)
	if runErr != nil {
		logger.Err(runErr, "phase", "run", "elapsed_ms", time.Since(start).Milliseconds())
		presenter.Error(describe(runErr))
		return exitFatal
	}

	logger.Info("blackbird finished",
		"elapsed_ms", stats.TotalDuration.Milliseconds(),
		"identifiers", stats.Identifiers,
		"matches", stats.TotalMatches,
	)
	return exitOK
}

// describe arma el mensaje visible de un error fatal.
func describe(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "run interrupted"
	case errors.Is(err, domain.ErrCatalogNotFound):
		return fmt.Sprintf("%v (run without --no-update to download it)", err)
	default:
		return err.Error()
	}
}

func newEngine(cfg config.Config, logger logx.Logger) ports.Verifier {
	e := engine.New(engine.Options{
		CatalogPath:      cfg.CatalogPath,
		EmailCatalogPath: cfg.EmailCatalogPath,
		SessionID:        cfg.SessionID,
		Logger:           logger,
	})
	logger.Debug("verifier ready", "engine", e.Describe())
	return e
}

func newUpdater(cfg config.Config, logger logx.Logger) (ports.CatalogUpdater, error) {
	client, err := httpclient.New(httpclient.Config{
		Timeout:    cfg.Timeout(),
		MaxRetries: 2,
		ProxyURL:   cfg.ProxyURL,
	}, logger)
	if err != nil {
		return nil, err
	}
	return catalog.NewUpdater(catalog.UpdaterOptions{
		URL:    cfg.CatalogURL,
		Path:   cfg.CatalogPath,
		Client: client,
		Logger: logger,
	}), nil
}

// newPresenter usa pterm en una terminal y líneas logfmt en pipes.
func newPresenter(cfg config.Config, stdout io.Writer) ui.Presenter {
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ui.NewPTermPresenter(cfg.Verbose)
	}
	return ui.NewRawPresenter(stdout, ui.LogFormatText, cfg.Verbose)
}

// rootContextWithSignals crea el context raíz cancelado por SIGINT/SIGTERM.
// La función retornada libera el handler de señales.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}
	return base, cleanup
}
