package slug_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/supermall-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Té Verde Orgánico":     "te-verde-organico",
		"  Handloom   Sarees  ": "handloom-sarees",
		"Spices & Masalas!!":    "spices-masalas",
		"Ghee (500 ml)":         "ghee-500-ml",
		"":                      "",
		"---":                   "",
		"Ñandú Crafts":          "nandu-crafts",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "input %q", in)
	}
}

func TestMake_EscriturasIndicas(t *testing.T) {
	assert.Equal(t, "गोपाल-डेयरी", slug.Make("गोपाल डेयरी"))
	assert.Equal(t, "गोपाल-dairy-२", slug.Make("गोपाल Dairy २"))

	kn := slug.Make("ಮೈಸೂರು ಸಿಲ್ಕ್")
	assert.NotEmpty(t, kn)
	assert.Equal(t, 1, strings.Count(kn, "-"))
	assert.False(t, strings.ContainsAny(kn, " "))
}

func TestMake_TruncaSlugsLargos(t *testing.T) {
	s := slug.Make(strings.Repeat("palabra ", 40))
	assert.LessOrEqual(t, len(s), 80)
	assert.False(t, strings.HasSuffix(s, "-"))

	hi := slug.Make(strings.Repeat("मसाला ", 40))
	assert.True(t, utf8.ValidString(hi))
	assert.False(t, strings.HasSuffix(hi, "-"))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "organic-honey-3f2a", slug.WithSuffix("Organic Honey", "3F2A"))
	assert.Equal(t, "organic-honey", slug.WithSuffix("Organic Honey", ""))
	assert.Equal(t, "abc", slug.WithSuffix("!!", "abc"))
}
