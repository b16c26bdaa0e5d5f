package enrich

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipped etiquetas cuyo contenido no es texto visible.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Svg:      true,
	atom.Iframe:   true,
}

// VisibleText extrae el texto visible de un documento HTML, una línea por bloque de texto.
// Se detiene tras maxRunes runas (0 = sin límite).
func VisibleText(content []byte, maxRunes int) string {
	z := html.NewTokenizer(bytes.NewReader(content))

	var (
		sb    strings.Builder
		depth int
		runes int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF o HTML truncado: se conserva lo leído
			return strings.TrimSpace(sb.String())

		case html.StartTagToken:
			name, _ := z.TagName()
			if skipped[atom.Lookup(name)] {
				depth++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if skipped[atom.Lookup(name)] && depth > 0 {
				depth--
			}

		case html.TextToken:
			if depth > 0 {
				continue
			}
			text := strings.Join(strings.Fields(string(z.Text())), " ")
			if text == "" {
				continue
			}
			sb.WriteString(text)
			sb.WriteByte('\n')
			runes += len([]rune(text))
			if maxRunes > 0 && runes >= maxRunes {
				return strings.TrimSpace(sb.String())
			}
		}
	}
}
