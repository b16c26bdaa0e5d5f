// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio comunes.
var (
	// Identifier errors
	ErrEmptyIdentifier       = errors.New("identifier cannot be empty")
	ErrInvalidIdentifierKind = errors.New("invalid identifier kind")
	ErrIdentifierActive      = errors.New("another identifier is still active")

	// Configuration errors
	ErrNoIdentifiers          = errors.New("either --username or --email is required")
	ErrPermuteWithoutUsername = errors.New("permutations require --username")
	ErrUnreadableFile         = errors.New("could not read file")
	ErrConflictingSources     = errors.New("identifier list and file given for the same domain")
	ErrInvalidConfig          = errors.New("invalid configuration")

	// Catalog errors
	ErrCatalogNotFound = errors.New("catalog not found")
	ErrCatalogInvalid  = errors.New("catalog is invalid")

	// Verification errors
	ErrVerifierMissing = errors.New("no verifier available for identifier kind")

	// Enrichment errors
	ErrEnricherInit = errors.New("enrichment model initialization failed")

	// Export errors
	ErrExportFailed      = errors.New("export failed")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ConfigurationError es fatal y ocurre antes de cualquier I/O de red.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NewConfigurationError crea un ConfigurationError.
func NewConfigurationError(field string, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Err: err}
}

// CatalogUpdateError no es fatal: el run continúa con el catálogo existente.
type CatalogUpdateError struct {
	Source string
	Err    error
}

func (e *CatalogUpdateError) Error() string {
	return fmt.Sprintf("catalog update from %s failed: %v", e.Source, e.Err)
}

func (e *CatalogUpdateError) Unwrap() error { return e.Err }

// VerificationError aborta el run: los parámetros de verificación son inválidos.
type VerificationError struct {
	Identifier Identifier
	Err        error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification of %s %q failed: %v", e.Identifier.Kind, e.Identifier.Value, e.Err)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// ExportError no es fatal: solo afecta a un sink de un identificador.
type ExportError struct {
	Format     SinkFormat
	Identifier Identifier
	Err        error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export for %q failed: %v", e.Format, e.Identifier.Value, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// IsFatal indica si un error debe abortar el run completo.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var cfgErr *ConfigurationError
	var verErr *VerificationError
	return errors.As(err, &cfgErr) || errors.As(err, &verErr) || errors.Is(err, ErrEnricherInit)
}
