package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidFilter indica una expresión de filtro mal formada.
var ErrInvalidFilter = errors.New("invalid filter expression")

// filterKeys son las propiedades de un sitio sobre las que se puede filtrar.
var filterKeys = map[string]bool{
	"name": false, "cat": false, "uri_check": false,
	"e_string": false, "m_string": false,
	"e_code": true, "m_code": true, // numéricas
}

// Condition es una cláusula "key op value".
type Condition struct {
	Key   string
	Op    string
	Value string
}

// Filter es una disyunción de conjunciones: "a and b or c" = (a && b) || c.
type Filter struct {
	groups [][]Condition
}

// ParseFilter interpreta una expresión de filtro. Una expresión vacía acepta todos los sitios.
//
//	cat=social and e_code=200
//	name~git or cat="xx NSFW xx"
func ParseFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{}, nil
	}

	lx := &lexer{src: []rune(expr)}
	var f Filter
	group := []Condition{}

	for {
		cond, err := lx.condition()
		if err != nil {
			return Filter{}, err
		}
		group = append(group, cond)

		conn, ok, err := lx.connector()
		if err != nil {
			return Filter{}, err
		}
		if !ok {
			break
		}
		if conn == "or" {
			f.groups = append(f.groups, group)
			group = []Condition{}
		}
	}
	f.groups = append(f.groups, group)
	return f, nil
}

// Empty indica si el filtro acepta todo.
func (f Filter) Empty() bool {
	return len(f.groups) == 0
}

// Match evalúa el filtro contra un sitio.
func (f Filter) Match(s Site) bool {
	if f.Empty() {
		return true
	}
	for _, group := range f.groups {
		all := true
		for _, c := range group {
			if !c.match(s) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// Apply retorna los sitios que cumplen el filtro, conservando el orden.
func (f Filter) Apply(sites []Site) []Site {
	if f.Empty() {
		return sites
	}
	out := make([]Site, 0, len(sites))
	for _, s := range sites {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

func (c Condition) match(s Site) bool {
	if filterKeys[c.Key] {
		var got int
		if c.Key == "e_code" {
			got = s.ECode
		} else {
			got = s.MCode
		}
		want, _ := strconv.Atoi(c.Value) // validado en el parseo
		switch c.Op {
		case "=":
			return got == want
		case "!=":
			return got != want
		case ">":
			return got > want
		case "<":
			return got < want
		case ">=":
			return got >= want
		case "<=":
			return got <= want
		case "~":
			return strings.Contains(strconv.Itoa(got), c.Value)
		}
		return false
	}

	var got string
	switch c.Key {
	case "name":
		got = s.Name
	case "cat":
		got = s.Category
	case "uri_check":
		got = s.URICheck
	case "e_string":
		got = s.EString
	case "m_string":
		got = s.MString
	}
	got, want := strings.ToLower(got), strings.ToLower(c.Value)

	switch c.Op {
	case "=":
		return got == want
	case "!=":
		return got != want
	case "~":
		return strings.Contains(got, want)
	}
	return false
}

// lexer recorre la expresión cláusula por cláusula.
type lexer struct {
	src []rune
	pos int
}

func (l *lexer) skipSpaces() {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
}

func (l *lexer) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s (at %d)", ErrInvalidFilter, fmt.Sprintf(format, args...), l.pos)
}

func (l *lexer) condition() (Condition, error) {
	l.skipSpaces()

	start := l.pos
	for l.pos < len(l.src) && (unicode.IsLetter(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
	key := strings.ToLower(string(l.src[start:l.pos]))
	if key == "" {
		return Condition{}, l.errorf("expected a property name")
	}
	numeric, known := filterKeys[key]
	if !known {
		return Condition{}, l.errorf("unknown property %q", key)
	}

	l.skipSpaces()
	start = l.pos
	for l.pos < len(l.src) && strings.ContainsRune("=!<>~", l.src[l.pos]) {
		l.pos++
	}
	op := string(l.src[start:l.pos])
	switch op {
	case "=", "!=", "~":
	case ">", "<", ">=", "<=":
		if !numeric {
			return Condition{}, l.errorf("operator %q requires a numeric property", op)
		}
	case "":
		return Condition{}, l.errorf("expected an operator after %q", key)
	default:
		return Condition{}, l.errorf("unknown operator %q", op)
	}

	l.skipSpaces()
	value, err := l.value()
	if err != nil {
		return Condition{}, err
	}
	if numeric && op != "~" {
		if _, err := strconv.Atoi(value); err != nil {
			return Condition{}, l.errorf("%q expects a number, got %q", key, value)
		}
	}

	return Condition{Key: key, Op: op, Value: value}, nil
}

func (l *lexer) value() (string, error) {
	if l.pos >= len(l.src) {
		return "", l.errorf("expected a value")
	}

	if q := l.src[l.pos]; q == '"' || q == '\'' {
		l.pos++
		start := l.pos
		for l.pos < len(l.src) && l.src[l.pos] != q {
			l.pos++
		}
		if l.pos >= len(l.src) {
			return "", l.errorf("unterminated quoted value")
		}
		v := string(l.src[start:l.pos])
		l.pos++
		return v, nil
	}

	start := l.pos
	for l.pos < len(l.src) && !unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	return string(l.src[start:l.pos]), nil
}

// connector lee "and" u "or"; ok es false al final de la expresión.
func (l *lexer) connector() (string, bool, error) {
	l.skipSpaces()
	if l.pos >= len(l.src) {
		return "", false, nil
	}

	start := l.pos
	for l.pos < len(l.src) && unicode.IsLetter(l.src[l.pos]) {
		l.pos++
	}
	word := strings.ToLower(string(l.src[start:l.pos]))
	if word != "and" && word != "or" {
		l.pos = start
		return "", false, l.errorf("expected 'and' or 'or'")
	}
	return word, true, nil
}
