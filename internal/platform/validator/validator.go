// internal/platform/validator/validator.go
package validator

import (
	"net/url"
	"strings"
	"unicode"
)

// Email validators

// NormalizeEmail normaliza un email a su forma canónica.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailDomain retorna la parte de dominio de un email ("" si no tiene).
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// Username validators

// IsUsername verifica que un username sea utilizable en una URL de perfil:
// no vacío, sin espacios ni caracteres de control, máximo 128 caracteres.
func IsUsername(username string) bool {
	if len(username) == 0 || len(username) > 128 {
		return false
	}
	for _, r := range username {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '/' {
			return false
		}
	}
	return true
}

// NormalizeUsername elimina espacios y un "@" inicial ("@alice" -> "alice").
func NormalizeUsername(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}

// URL validators

// IsURL verifica si un string es una URL válida.
func IsURL(urlStr string) bool {
	if len(urlStr) == 0 {
		return false
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	// Debe tener scheme y host
	return parsed.Scheme != "" && parsed.Host != ""
}

// IsProxyURL verifica que la URL use un esquema de proxy soportado por net/http.
func IsProxyURL(urlStr string) bool {
	if !IsURL(urlStr) {
		return false
	}
	parsed, _ := url.Parse(urlStr)
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "socks5", "socks5h":
		return true
	default:
		return false
	}
}

// Generic validators

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// IsComment indica si una línea de un archivo de entrada es un comentario.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}
