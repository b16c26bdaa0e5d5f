package engine

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/net/publicsuffix"

	"blackbird/internal/catalog"
	"blackbird/internal/core/domain"
	"blackbird/internal/platform/validator"
)

// addEmailMetadata agrega el dominio registrable del email y los campos
// declarados por el sitio en su respuesta JSON.
func addEmailMetadata(account *domain.FoundAccount, site catalog.Site, email string, body []byte) {
	if d := registrableDomain(email); d != "" {
		account.AddMetadata("Domain", d, "String")
	}
	if len(site.Metadata) == 0 {
		return
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return
	}
	for _, rule := range site.Metadata {
		if v, ok := lookup(doc, rule.Key); ok {
			account.AddMetadata(rule.Name, v, rule.Type)
		}
	}
}

// registrableDomain retorna eTLD+1 del dominio del email ("mail.example.co.uk" -> "example.co.uk").
func registrableDomain(email string) string {
	host := validator.EmailDomain(email)
	if host == "" {
		return ""
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}

// lookup resuelve una ruta con puntos sobre un documento JSON decodificado.
// Los segmentos numéricos indexan arrays. Solo retorna valores escalares.
func lookup(doc any, path string) (string, bool) {
	if path == "" {
		return "", false
	}
	cur := doc
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return "", false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return "", false
			}
			cur = node[i]
		default:
			return "", false
		}
	}

	switch v := cur.(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
