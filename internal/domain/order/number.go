// Package order contiene la lógica pura del pedido: numeración y máquina de estados.
package order

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	numberPrefix   = "ORDER"
	randomSuffix   = 9
	base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NumberGenerator produce números de pedido candidatos. El caso de uso reintenta con
// otro candidato si la base de datos reporta duplicado.
type NumberGenerator func(now time.Time) string

// NewNumber genera ORDER-<unix millis>-<9 caracteres base36 en mayúscula>.
func NewNumber(now time.Time) string {
	var b strings.Builder
	b.Grow(len(numberPrefix) + 2 + 13 + randomSuffix)
	b.WriteString(numberPrefix)
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('-')
	for i := 0; i < randomSuffix; i++ {
		b.WriteByte(base36Alphabet[rand.IntN(len(base36Alphabet))])
	}
	return b.String()
}

// ValidNumber comprueba el formato de un número de pedido (rastreo público).
func ValidNumber(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || parts[0] != numberPrefix {
		return false
	}
	if _, err := strconv.ParseInt(parts[1], 10, 64); err != nil {
		return false
	}
	if len(parts[2]) != randomSuffix {
		return false
	}
	for _, r := range parts[2] {
		if !strings.ContainsRune(base36Alphabet, r) {
			return false
		}
	}
	return true
}
