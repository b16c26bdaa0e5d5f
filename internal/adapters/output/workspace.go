// internal/adapters/output/workspace.go
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
)

const (
	// DateStampLayout sello de fecha para carpetas y archivos (MM_DD_YYYY)
	DateStampLayout = "01_02_2006"

	// DatePrettyLayout fecha legible para informes
	DatePrettyLayout = "January 02, 2006"
)

// Workspace resuelve los directorios de salida de un run bajo una raíz común.
// La fecha se fija al crear el Workspace para que todo el run use el mismo sello.
// Cada nombre de carpeta pertenece a un solo identificador durante el run.
type Workspace struct {
	root string
	date time.Time

	mu     sync.Mutex
	owners map[string]string // nombre de carpeta -> identificador
	names  map[string]string // identificador -> nombre de carpeta
}

var _ ports.Workspace = (*Workspace)(nil)

// NewWorkspace crea un Workspace. No toca el disco.
func NewWorkspace(root string, date time.Time) *Workspace {
	if root == "" {
		root = "."
	}
	return &Workspace{
		root:   root,
		date:   date,
		owners: make(map[string]string),
		names:  make(map[string]string),
	}
}

// DateStamp retorna la fecha del run como MM_DD_YYYY.
func (w *Workspace) DateStamp() string {
	return w.date.Format(DateStampLayout)
}

// DatePretty retorna la fecha del run para informes.
func (w *Workspace) DatePretty() string {
	return w.date.Format(DatePrettyLayout)
}

// Dir retorna el directorio del identificador: <root>/<slug>_<MM_DD_YYYY>.
// Un username y un email con el mismo valor comparten slug; el segundo en
// pedirlo recibe <slug>_<n>_<MM_DD_YYYY>. La carpeta no se crea hasta el primer Ensure.
func (w *Workspace) Dir(id domain.Identifier) ports.OutputDir {
	return &IdentifierDir{path: filepath.Join(w.root, w.claim(id))}
}

// claim reserva un nombre de carpeta para el identificador.
func (w *Workspace) claim(id domain.Identifier) string {
	key := id.Kind.String() + ":" + id.Value

	w.mu.Lock()
	defer w.mu.Unlock()

	if name, ok := w.names[key]; ok {
		return name
	}

	slug, stamp := id.Slug(), w.DateStamp()
	name := fmt.Sprintf("%s_%s", slug, stamp)
	for n := 2; ; n++ {
		if _, taken := w.owners[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s_%d_%s", slug, n, stamp)
	}

	w.owners[name] = key
	w.names[key] = name
	return name
}

// Job construye el ExportJob de un identificador.
func (w *Workspace) Job(id domain.Identifier, dir string) ports.ExportJob {
	return ports.ExportJob{
		Identifier: id,
		Dir:        dir,
		DateStamp:  w.DateStamp(),
		DatePretty: w.DatePretty(),
	}
}

// IdentifierDir es un ports.OutputDir creado de forma perezosa.
// Ensure es idempotente y seguro para uso concurrente.
type IdentifierDir struct {
	path string

	mu      sync.Mutex
	created bool
}

// Path retorna la ruta sin crearla.
func (d *IdentifierDir) Path() string {
	return d.path
}

// Ensure crea el directorio la primera vez. Un fallo se puede reintentar.
func (d *IdentifierDir) Ensure() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.created {
		return d.path, nil
	}
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	d.created = true
	return d.path, nil
}

// Created indica si Ensure ya creó el directorio.
func (d *IdentifierDir) Created() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created
}
