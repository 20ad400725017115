package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

func TestOrderLines_JSONBConservaPrecioNulo(t *testing.T) {
	price := decimal.RequireFromString("139.20")
	lines := []entity.OrderLine{
		{ProductID: "p-1", ProductName: "Motor", Price: &price, Quantity: 2},
		{ProductName: "Pintura antifouling", Description: "galón rojo", Quantity: 1, IsCustom: true},
	}

	raw, err := encodeLines(lines)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":null`)

	got, err := decodeLines(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Price)
	assert.True(t, got[0].Price.Equal(price))
	assert.Nil(t, got[1].Price)
	assert.True(t, got[1].IsCustom)
	assert.Equal(t, "galón rojo", got[1].Description)
}

func TestDecodeLines_JSONInvalido(t *testing.T) {
	_, err := decodeLines([]byte(`{"no":"es un arreglo"}`))
	assert.Error(t, err)
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "abc", nullable("abc"))
	s := "x"
	assert.Equal(t, "x", deref(&s))
	assert.Equal(t, "", deref(nil))
}
