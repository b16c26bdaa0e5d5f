// internal/core/domain/identifier.go
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// IdentifierKind distingue los dos dominios de identificadores que procesa el pipeline.
type IdentifierKind string

const (
	// KindUsername identifica un nombre de usuario
	KindUsername IdentifierKind = "username"

	// KindEmail identifica una dirección de correo
	KindEmail IdentifierKind = "email"
)

// IsValid verifica si el tipo de identificador es conocido.
func (k IdentifierKind) IsValid() bool {
	switch k {
	case KindUsername, KindEmail:
		return true
	default:
		return false
	}
}

// String retorna la representación string del tipo.
func (k IdentifierKind) String() string {
	return string(k)
}

// Identifier es el valor que se verifica contra el catálogo de objetivos.
type Identifier struct {
	Kind  IdentifierKind `json:"kind"`
	Value string         `json:"value"`
}

// NewUsername crea un identificador de tipo username.
func NewUsername(value string) Identifier {
	return Identifier{Kind: KindUsername, Value: strings.TrimSpace(value)}
}

// NewEmail crea un identificador de tipo email.
func NewEmail(value string) Identifier {
	return Identifier{Kind: KindEmail, Value: strings.TrimSpace(value)}
}

// Usernames convierte una lista de valores en identificadores username, conservando el orden.
func Usernames(values []string) []Identifier {
	out := make([]Identifier, 0, len(values))
	for _, v := range values {
		out = append(out, NewUsername(v))
	}
	return out
}

// Emails convierte una lista de valores en identificadores email, conservando el orden.
func Emails(values []string) []Identifier {
	out := make([]Identifier, 0, len(values))
	for _, v := range values {
		out = append(out, NewEmail(v))
	}
	return out
}

// Validate verifica que el identificador tenga tipo conocido y valor no vacío.
func (i Identifier) Validate() error {
	if !i.Kind.IsValid() {
		return ErrInvalidIdentifierKind
	}
	if i.Value == "" {
		return ErrEmptyIdentifier
	}
	return nil
}

// IsZero indica si el identificador no tiene valor asignado.
func (i Identifier) IsZero() bool {
	return i.Kind == "" && i.Value == ""
}

// String retorna el valor crudo del identificador.
func (i Identifier) String() string {
	return i.Value
}

// Slug convierte el valor en un nombre válido para carpetas y archivos.
// Si hubo que reemplazar caracteres se agrega un hash corto del valor original,
// de modo que dos valores distintos nunca comparten slug.
// Ejemplo: "john.doe@mail.com" -> "john.doe@mail.com", "a/b" -> "a_b-<hash>"
func (i Identifier) Slug() string {
	lossy := false
	slug := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '_' || r == '-' || r == '.' || r == '@' || r == '+' {
			return r
		}
		lossy = true
		return '_'
	}, i.Value)

	// "." y ".." no son nombres de carpeta utilizables
	if strings.Trim(slug, ".") == "" {
		slug = strings.Repeat("_", len(slug))
		lossy = true
	}
	if lossy {
		sum := sha256.Sum256([]byte(i.Value))
		slug += "-" + hex.EncodeToString(sum[:])[:slugHashLen]
	}
	return slug
}

// slugHashLen caracteres hex del hash agregado a un slug con reemplazos
const slugHashLen = 8
