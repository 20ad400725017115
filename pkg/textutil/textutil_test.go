package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mardecortez-api/pkg/textutil"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "electronica", textutil.Fold("Electrónica"))
	assert.Equal(t, "anzuelo n°5", textutil.Fold("ANZUELO N°5"))
	assert.Equal(t, "nino", textutil.Fold("Niño"))
}

func TestContains(t *testing.T) {
	assert.True(t, textutil.Contains("Motor Fuera de Borda", "fuera"))
	assert.True(t, textutil.Contains("Cable eléctrico", "ELECTRICO"))
	assert.True(t, textutil.Contains("cualquier cosa", "  "), "needle vacío coincide")
	assert.False(t, textutil.Contains("Red de pesca", "ancla"))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Artículos de Pesca":  "articulos-de-pesca",
		"  Ferretería  ":      "ferreteria",
		"bebidas_frías":       "bebidas-frias",
		"Electrónica--Marina": "electronica-marina",
		"¡Otros!":             "otros",
	}
	for in, want := range cases {
		assert.Equal(t, want, textutil.Slugify(in), in)
	}
}
