// Package slug genera identificadores legibles para URLs a partir de nombres
// de tiendas, categorías y productos ("Té Verde Orgánico" → "te-verde-organico").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

const maxLen = 80

var marks = runes.In(unicode.Mn)

// Make normaliza s: quita tildes, pasa a minúsculas y reemplaza cualquier
// secuencia de caracteres que no sean letras o dígitos por un único guion.
// Las escrituras no latinas se conservan con sus signos vocálicos
// ("गोपाल डेयरी" → "गोपाल-डेयरी"). El largo se mide en caracteres.
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	latin := false
	n := 0
	for _, r := range norm.NFD.String(s) {
		switch {
		case marks.Contains(r) || unicode.Is(unicode.Mc, r):
			if latin || dash || b.Len() == 0 {
				continue
			}
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if n >= maxLen {
				return finish(b.String())
			}
			b.WriteRune(unicode.ToLower(r))
			latin = unicode.Is(unicode.Latin, r)
			dash = false
			n++
		default:
			latin = false
			if !dash && b.Len() > 0 {
				if n >= maxLen {
					return finish(b.String())
				}
				b.WriteByte('-')
				dash = true
				n++
			}
		}
	}
	return finish(b.String())
}

func finish(s string) string {
	return norm.NFC.String(strings.TrimSuffix(s, "-"))
}

// WithSuffix agrega un sufijo corto para desambiguar slugs repetidos (ej. productos homónimos).
func WithSuffix(s, suffix string) string {
	base := Make(s)
	if suffix == "" {
		return base
	}
	if base == "" {
		return Make(suffix)
	}
	return base + "-" + Make(suffix)
}
