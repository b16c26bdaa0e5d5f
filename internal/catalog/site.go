// Package catalog loads, filters and refreshes the lists of sites that are
// checked for an identifier. Username sites use the WhatsMyName format; email
// sites use the same format plus request and metadata extensions.
package catalog

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"blackbird/internal/core/domain"
)

// NSFWCategory es la categoría de WhatsMyName para sitios para adultos.
const NSFWCategory = "xx NSFW xx"

// AccountPlaceholder se reemplaza por el identificador en URLs, cuerpos y headers.
const AccountPlaceholder = "{account}"

// SessionPlaceholder se reemplaza por la credencial de sesión en headers.
const SessionPlaceholder = "{session}"

// Catalog es una lista de sitios verificables.
type Catalog struct {
	Categories []string `json:"categories,omitempty"`
	Sites      []Site   `json:"sites"`
}

// Site describe cómo verificar un identificador en un sitio.
type Site struct {
	Name      string            `json:"name"`
	URICheck  string            `json:"uri_check"`
	URIPretty string            `json:"uri_pretty,omitempty"`
	Method    string            `json:"method,omitempty"`
	PostBody  string            `json:"post_body,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`

	// Regla de coincidencia
	ECode   int    `json:"e_code"`
	EString string `json:"e_string"`
	MCode   int    `json:"m_code"`
	MString string `json:"m_string"`

	Known        []string `json:"known,omitempty"`
	Category     string   `json:"cat"`
	StripBadChar string   `json:"strip_bad_char,omitempty"`

	// Extensiones de sitios de email
	InputOperation string         `json:"input_operation,omitempty"`
	Metadata       []MetadataRule `json:"metadata,omitempty"`
}

// MetadataRule extrae un campo de una respuesta JSON por ruta con puntos ("user.name", "users.0.bio").
type MetadataRule struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Type string `json:"type,omitempty"`
}

// Parse decodifica y valida un catálogo.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}
	if len(c.Sites) == 0 {
		return Catalog{}, fmt.Errorf("%w: no sites", domain.ErrCatalogInvalid)
	}
	for i, s := range c.Sites {
		if strings.TrimSpace(s.Name) == "" {
			return Catalog{}, fmt.Errorf("%w: site %d has no name", domain.ErrCatalogInvalid, i)
		}
		if !strings.Contains(s.URICheck, AccountPlaceholder) && !strings.Contains(s.PostBody, AccountPlaceholder) {
			return Catalog{}, fmt.Errorf("%w: site %q has no %s placeholder", domain.ErrCatalogInvalid, s.Name, AccountPlaceholder)
		}
	}
	return c, nil
}

// IsNSFW indica si el sitio pertenece a la categoría NSFW.
func (s Site) IsNSFW() bool {
	return s.Category == NSFWCategory
}

// Account prepara el identificador para este sitio: quita los caracteres
// de strip_bad_char y aplica input_operation.
func (s Site) Account(value string) string {
	if s.StripBadChar != "" {
		value = strings.Map(func(r rune) rune {
			if strings.ContainsRune(s.StripBadChar, r) {
				return -1
			}
			return r
		}, value)
	}

	switch strings.ToLower(s.InputOperation) {
	case "md5":
		sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(value))))
		value = hex.EncodeToString(sum[:])
	}
	return value
}

// CheckURL es la URL que se solicita para verificar la cuenta.
func (s Site) CheckURL(account string) string {
	return strings.ReplaceAll(s.URICheck, AccountPlaceholder, account)
}

// PrettyURL es la URL que se muestra al usuario (uri_pretty si existe).
func (s Site) PrettyURL(account string) string {
	if s.URIPretty != "" {
		return strings.ReplaceAll(s.URIPretty, AccountPlaceholder, account)
	}
	return s.CheckURL(account)
}

// Body es el cuerpo de la petición con la cuenta sustituida.
func (s Site) Body(account string) string {
	return strings.ReplaceAll(s.PostBody, AccountPlaceholder, account)
}

// HTTPMethod retorna el método de la petición: method si existe, POST si hay
// post_body y GET en otro caso.
func (s Site) HTTPMethod() string {
	if s.Method != "" {
		return strings.ToUpper(s.Method)
	}
	if s.PostBody != "" {
		return "POST"
	}
	return "GET"
}

// NeedsSession indica si algún header requiere la credencial de sesión.
func (s Site) NeedsSession() bool {
	for _, v := range s.Headers {
		if strings.Contains(v, SessionPlaceholder) {
			return true
		}
	}
	return false
}

// RequestHeaders retorna los headers con la cuenta y la sesión sustituidas.
func (s Site) RequestHeaders(account, session string) map[string]string {
	if len(s.Headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.Headers))
	for k, v := range s.Headers {
		v = strings.ReplaceAll(v, AccountPlaceholder, account)
		v = strings.ReplaceAll(v, SessionPlaceholder, session)
		out[k] = v
	}
	return out
}

// Matches aplica la regla de coincidencia a una respuesta.
func (s Site) Matches(status int, body []byte) bool {
	if status != s.ECode {
		return false
	}
	text := string(body)
	if !strings.Contains(text, s.EString) {
		return false
	}
	if s.MString != "" && strings.Contains(text, s.MString) {
		return false
	}
	if s.MCode != s.ECode && status == s.MCode {
		return false
	}
	return true
}
