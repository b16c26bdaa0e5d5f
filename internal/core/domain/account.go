// internal/core/domain/account.go
package domain

import (
	"sort"
	"strings"
)

// MetadataField es un dato adicional extraído de la respuesta de un objetivo.
type MetadataField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"` // String, Image, Location, ...
}

// Entity es una entidad nombrada extraída del contenido de una cuenta.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// FoundAccount es una coincidencia confirmada para el identificador activo.
type FoundAccount struct {
	Site     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	URL      string          `json:"url"`
	Status   int             `json:"status"`
	Metadata []MetadataField `json:"metadata,omitempty"`
	Entities []Entity        `json:"entities,omitempty"`

	// Content cuerpo crudo de la respuesta, solo para dump y enriquecimiento
	Content []byte `json:"-"`
}

// AddMetadata agrega un campo de metadata ignorando valores vacíos.
func (a *FoundAccount) AddMetadata(name, value, typ string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	a.Metadata = append(a.Metadata, MetadataField{Name: name, Value: value, Type: typ})
}

// MetadataString aplana la metadata en "nombre: valor; ..." para formatos tabulares.
func (a FoundAccount) MetadataString() string {
	if len(a.Metadata) == 0 {
		return ""
	}
	parts := make([]string, 0, len(a.Metadata))
	for _, m := range a.Metadata {
		parts = append(parts, m.Name+": "+m.Value)
	}
	return strings.Join(parts, "; ")
}

// ResultSet contiene las coincidencias de un único ciclo de identificador.
type ResultSet []FoundAccount

// Len retorna el número de coincidencias.
func (rs ResultSet) Len() int {
	return len(rs)
}

// IsEmpty indica si no hubo coincidencias.
func (rs ResultSet) IsEmpty() bool {
	return len(rs) == 0
}

// Sorted retorna una copia ordenada por nombre de sitio (case-insensitive).
func (rs ResultSet) Sorted() ResultSet {
	out := make(ResultSet, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Site) < strings.ToLower(out[j].Site)
	})
	return out
}

// Categories cuenta las coincidencias por categoría.
func (rs ResultSet) Categories() map[string]int {
	stats := make(map[string]int)
	for _, a := range rs {
		cat := a.Category
		if cat == "" {
			cat = "other"
		}
		stats[cat]++
	}
	return stats
}
