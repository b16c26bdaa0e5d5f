// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/platform/config"
)

// mockVerifier es un mock de ports.Verifier que registra cada llamada
type mockVerifier struct {
	mu       sync.Mutex
	results  map[string]domain.ResultSet
	errFor   map[string]error
	calls    []domain.Identifier
	lastOpts ports.VerifyOptions
	verifyFn func(ctx context.Context, id domain.Identifier, opts ports.VerifyOptions) (domain.ResultSet, error)
}

func newMockVerifier(results map[string]domain.ResultSet) *mockVerifier {
	return &mockVerifier{results: results, errFor: map[string]error{}}
}

func (m *mockVerifier) Verify(ctx context.Context, id domain.Identifier, opts ports.VerifyOptions) (domain.ResultSet, error) {
	m.mu.Lock()
	m.calls = append(m.calls, id)
	m.lastOpts = opts
	m.mu.Unlock()

	if m.verifyFn != nil {
		return m.verifyFn(ctx, id, opts)
	}
	if err := m.errFor[id.Value]; err != nil {
		return nil, err
	}
	// copia para que el pipeline no modifique el fixture
	rs := m.results[id.Value]
	out := make(domain.ResultSet, len(rs))
	copy(out, rs)
	return out, nil
}

func (m *mockVerifier) callValues() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.Value)
	}
	return out
}

// mockUpdater es un mock de ports.CatalogUpdater
type mockUpdater struct {
	report ports.CatalogReport
	err    error
	calls  int
}

func (m *mockUpdater) Update(ctx context.Context) (ports.CatalogReport, error) {
	m.calls++
	if m.err != nil {
		return ports.CatalogReport{}, m.err
	}
	return m.report, nil
}

// mockSink escribe un archivo vacío o falla con err
type mockSink struct {
	format domain.SinkFormat
	err    error
	calls  []ports.ExportJob
}

func (m *mockSink) Format() domain.SinkFormat { return m.format }

func (m *mockSink) Export(results domain.ResultSet, job ports.ExportJob) (string, error) {
	m.calls = append(m.calls, job)
	if m.err != nil {
		return "", m.err
	}
	path := filepath.Join(job.Dir, job.FileName(m.format))
	return path, os.WriteFile(path, []byte("ok"), 0o644)
}

func allSinks() (*mockSink, *mockSink, *mockSink) {
	return &mockSink{format: domain.SinkCSV}, &mockSink{format: domain.SinkPDF}, &mockSink{format: domain.SinkJSON}
}

// mockEnricher agrega una entidad por cuenta
type mockEnricher struct {
	initErr   error
	enrichErr error
	initCalls int
	enriched  []string
}

func (m *mockEnricher) Name() string { return "mock" }

func (m *mockEnricher) Init(ctx context.Context) error {
	m.initCalls++
	return m.initErr
}

func (m *mockEnricher) Enrich(ctx context.Context, account *domain.FoundAccount) error {
	m.enriched = append(m.enriched, account.Site)
	if m.enrichErr != nil {
		return m.enrichErr
	}
	account.Entities = append(account.Entities, domain.Entity{Text: string(account.Content), Label: "PERSON"})
	return nil
}

// mockWorkspace crea directorios <root>/<slug> de forma perezosa
type mockWorkspace struct {
	root string
}

func (w *mockWorkspace) Dir(id domain.Identifier) ports.OutputDir {
	return &mockDir{path: filepath.Join(w.root, id.Slug())}
}

func (w *mockWorkspace) Job(id domain.Identifier, dir string) ports.ExportJob {
	return ports.ExportJob{Identifier: id, Dir: dir, DateStamp: "01_05_2026", DatePretty: "January 05, 2026"}
}

type mockDir struct {
	path    string
	created bool
	err     error
}

func (d *mockDir) Path() string { return d.path }

func (d *mockDir) Ensure() (string, error) {
	if d.err != nil {
		return "", d.err
	}
	if !d.created {
		if err := os.MkdirAll(d.path, 0o755); err != nil {
			return "", err
		}
		d.created = true
	}
	return d.path, nil
}

func (d *mockDir) Created() bool { return d.created }

func matches(sites ...string) domain.ResultSet {
	rs := make(domain.ResultSet, 0, len(sites))
	for _, s := range sites {
		rs = append(rs, domain.FoundAccount{Site: s, Category: "social", URL: "https://" + s + ".example", Status: 200})
	}
	return rs
}

func testConfig(usernames ...string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Usernames = usernames
	cfg.NoUpdate = true
	return cfg
}
