// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// field es un par clave/valor con orden estable.
type field struct {
	key   string
	value interface{}
}

// RawPresenter implementa el Presenter para salidas que no son terminal
// (pipes, CI): una línea por evento, sin colores.
type RawPresenter struct {
	out     io.Writer
	format  LogFormat
	verbose bool
	mu      sync.Mutex
}

// NewRawPresenter crea un nuevo RawPresenter
func NewRawPresenter(out io.Writer, format LogFormat, verbose bool) *RawPresenter {
	if format != LogFormatJSON {
		format = LogFormatText
	}
	return &RawPresenter{out: out, format: format, verbose: verbose}
}

// log escribe un evento en el formato configurado
func (r *RawPresenter) log(level, message string, fields ...field) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		r.logJSON(timestamp, level, message, fields)
	} else {
		r.logText(timestamp, level, message, fields)
	}
}

// logText escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) logText(timestamp, level, message string, fields []field) {
	parts := []string{timestamp, fmt.Sprintf("%-5s", level), message}
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%s", f.key, r.formatValue(f.value)))
	}
	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields []field) {
	logEntry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}

	if len(fields) > 0 {
		data := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			if d, ok := f.value.(time.Duration); ok {
				data[f.key] = d.String()
				continue
			}
			data[f.key] = f.value
		}
		logEntry["data"] = data
	}

	jsonBytes, _ := json.Marshal(logEntry)
	fmt.Fprintln(r.out, string(jsonBytes))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func (r *RawPresenter) formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Start registra la configuración del run
func (r *RawPresenter) Start(info RunInfo) {
	r.log("INFO", "run_started",
		field{"run_id", info.RunID},
		field{"usernames", info.Usernames},
		field{"emails", info.Emails},
		field{"permutation", string(info.Permutation)},
		field{"sinks", joinFormats(info.Sinks)},
		field{"dump", info.Dump},
		field{"timeout", fmt.Sprintf("%ds", info.TimeoutS)},
		field{"max_concurrent", info.MaxConcurrent},
	)
}

// CatalogUpdated registra el resultado de la actualización del catálogo
func (r *RawPresenter) CatalogUpdated(result domain.UpdateResult) {
	switch result.Status {
	case domain.UpdateFailed:
		r.log("WARN", "catalog_update_failed", field{"reason", result.Reason})
	case domain.UpdateUpdated:
		r.log("INFO", "catalog_updated", field{"sites", result.Sites}, field{"changed", result.Changed})
	default:
		r.log("INFO", "catalog_update_skipped")
	}
}

// Permutations registra el número de identificadores generados
func (r *RawPresenter) Permutations(seeds []string, generated int) {
	r.log("INFO", "permutations_generated",
		field{"seeds", strings.Join(seeds, ",")},
		field{"generated", generated},
	)
}

// StartIdentifier registra el inicio de un identificador
func (r *RawPresenter) StartIdentifier(id domain.Identifier, index, total int) {
	r.log("INFO", "identifier_started",
		field{"kind", id.Kind.String()},
		field{"value", id.Value},
		field{"index", index},
		field{"total", total},
	)
}

// SiteChecked registra coincidencias siempre; fallos y ausencias solo en verbose
func (r *RawPresenter) SiteChecked(outcome ports.CheckOutcome) {
	switch {
	case outcome.Found:
		fields := []field{{"site", outcome.Site}, {"url", outcome.URL}}
		for _, m := range outcome.Metadata {
			fields = append(fields, field{"meta." + strings.ToLower(m.Name), m.Value})
		}
		r.log("INFO", "account_found", fields...)
	case !r.verbose:
	case outcome.Err != nil:
		r.log("WARN", "site_error", field{"site", outcome.Site}, field{"error", outcome.Err.Error()})
	default:
		r.log("DEBUG", "site_missing", field{"site", outcome.Site}, field{"status", outcome.Status})
	}
}

// FinishIdentifier registra el fin de un identificador
func (r *RawPresenter) FinishIdentifier(id domain.Identifier, results domain.ResultSet, duration time.Duration) {
	r.log("INFO", "identifier_completed",
		field{"value", id.Value},
		field{"matches", results.Len()},
		field{"duration", duration.Round(time.Millisecond)},
	)
}

// Exported registra un archivo generado
func (r *RawPresenter) Exported(format domain.SinkFormat, path string) {
	r.log("INFO", "exported", field{"format", format.String()}, field{"path", path})
}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) {
	r.log("INFO", msg)
}

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) {
	r.log("WARN", msg)
}

// Error muestra un error
func (r *RawPresenter) Error(msg string) {
	r.log("ERROR", msg)
}

// Finish registra el resumen del run
func (r *RawPresenter) Finish(stats RunStats) {
	r.log("INFO", "run_completed",
		field{"duration", stats.TotalDuration.Round(time.Millisecond)},
		field{"identifiers", stats.Identifiers},
		field{"with_matches", stats.WithMatches},
		field{"matches", stats.TotalMatches},
		field{"export_failures", stats.ExportFailures},
	)

	if len(stats.ByCategory) > 0 {
		keys := make([]string, 0, len(stats.ByCategory))
		for k := range stats.ByCategory {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]field, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, field{k, stats.ByCategory[k]})
		}
		r.log("INFO", "matches_by_category", fields...)
	}
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	return nil
}

func joinFormats(formats []domain.SinkFormat) string {
	parts := make([]string, 0, len(formats))
	for _, f := range formats {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, ",")
}
