package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
)

// DumpDirName es la subcarpeta del directorio del identificador con los HTML guardados.
const DumpDirName = "dump"

// writeDump guarda el cuerpo de una coincidencia en <dir>/dump/<site>.html.
// El directorio del identificador se crea aquí si aún no existe.
func writeDump(dir ports.OutputDir, site string, body []byte) (string, error) {
	if dir == nil {
		return "", fmt.Errorf("no output directory for dump")
	}
	root, err := dir.Ensure()
	if err != nil {
		return "", err
	}

	dumpDir := filepath.Join(root, DumpDirName)
	if err := os.MkdirAll(dumpDir, 0o755); err != nil {
		return "", err
	}

	name := domain.Identifier{Value: site}.Slug()
	path := filepath.Join(dumpDir, name+".html")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
