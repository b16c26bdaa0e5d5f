// internal/adapters/output/sinks.go
package output

import (
	"fmt"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
)

// NewSink retorna el sink de un formato.
func NewSink(format domain.SinkFormat, version string) (ports.Sink, error) {
	switch format {
	case domain.SinkCSV:
		return CSVSink{}, nil
	case domain.SinkPDF:
		return PDFSink{Version: version}, nil
	case domain.SinkJSON:
		return JSONSink{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// Sinks construye los sinks de todos los formatos conocidos, en orden de invocación.
func Sinks(version string) []ports.Sink {
	out := make([]ports.Sink, 0, len(domain.SinkOrder))
	for _, f := range domain.SinkOrder {
		s, _ := NewSink(f, version)
		out = append(out, s)
	}
	return out
}
