// Package enrich extracts named entities from the pages of found accounts.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/platform/logx"
)

// DefaultMaxRunes límite de texto analizado por cuenta.
const DefaultMaxRunes = 20000

// NER extrae entidades nombradas (PERSON, GPE, ORG...) con prose.
type NER struct {
	maxRunes int
	logger   logx.Logger
	ready    bool
}

var _ ports.Enricher = (*NER)(nil)

// NewNER crea el enriquecedor. maxRunes <= 0 usa DefaultMaxRunes.
func NewNER(maxRunes int, logger logx.Logger) *NER {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &NER{
		maxRunes: maxRunes,
		logger:   logger.With("component", "enrich"),
	}
}

// Name retorna el nombre del modelo.
func (n *NER) Name() string {
	return "prose-ner"
}

// Init carga el modelo procesando un documento de prueba.
// El llamador decide cómo clasificar el error.
func (n *NER) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := prose.NewDocument("Blackbird is ready in Paris.", prose.WithSegmentation(false)); err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	n.ready = true
	n.logger.Debug("model loaded", "name", n.Name())
	return nil
}

// Enrich agrega a la cuenta las entidades del texto visible de su contenido.
// Sin contenido no hace nada.
func (n *NER) Enrich(ctx context.Context, account *domain.FoundAccount) error {
	if !n.ready {
		return fmt.Errorf("%w: model not initialized", domain.ErrEnricherInit)
	}
	if len(account.Content) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text := VisibleText(account.Content, n.maxRunes)
	if text == "" {
		return nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTokenization(true),
		prose.WithTagging(true),
		prose.WithExtraction(true),
	)
	if err != nil {
		return fmt.Errorf("entity extraction for %s: %w", account.Site, err)
	}

	seen := make(map[string]struct{})
	for _, ent := range doc.Entities() {
		text := strings.TrimSpace(ent.Text)
		if text == "" {
			continue
		}
		key := ent.Label + "|" + strings.ToLower(text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		account.Entities = append(account.Entities, domain.Entity{Text: text, Label: ent.Label})
	}

	n.logger.Debug("account enriched", "site", account.Site, "entities", len(account.Entities))
	return nil
}
