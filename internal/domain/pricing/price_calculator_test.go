package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Vector de referencia: 100 + 20% = 120; 120 * 1.16 = 139.20
func TestComputePrice_Porcentaje(t *testing.T) {
	price, err := pricing.ComputePrice(pricing.Input{
		BasePrice: dec("100"), ProfitType: entity.ProfitPercentage,
		ProfitValue: dec("20"), IVAPercentage: dec("16"),
	})
	require.NoError(t, err)
	assert.True(t, dec("139.20").Equal(price), "got %s", price)
}

func TestComputePrice_MontoFijo(t *testing.T) {
	// (250 + 35) * 1.08 = 307.80
	price, err := pricing.ComputePrice(pricing.Input{
		BasePrice: dec("250"), ProfitType: entity.ProfitFixed,
		ProfitValue: dec("35"), IVAPercentage: dec("8"),
	})
	require.NoError(t, err)
	assert.True(t, dec("307.80").Equal(price), "got %s", price)
}

func TestComputePrice_RedondeaADosDecimales(t *testing.T) {
	// (9.99 + 9.99*0.15) * 1.16 = 13.326666 -> 13.33
	price, err := pricing.ComputePrice(pricing.Input{
		BasePrice: dec("9.99"), ProfitType: entity.ProfitPercentage,
		ProfitValue: dec("15"), IVAPercentage: dec("16"),
	})
	require.NoError(t, err)
	assert.Equal(t, "13.33", price.StringFixed(2))
}

func TestComputePrice_SinIVA(t *testing.T) {
	price, err := pricing.ComputePrice(pricing.Input{
		BasePrice: dec("50"), ProfitType: entity.ProfitFixed,
		ProfitValue: dec("0"), IVAPercentage: decimal.Zero,
	})
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(price))
}

func TestComputePrice_TipoDeGananciaInvalido(t *testing.T) {
	_, err := pricing.ComputePrice(pricing.Input{
		BasePrice: dec("10"), ProfitType: "markup", ProfitValue: dec("1"), IVAPercentage: dec("16"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputePrice_NegativosRechazados(t *testing.T) {
	_, err := pricing.ComputePrice(pricing.Input{
		BasePrice: dec("-1"), ProfitType: entity.ProfitFixed, ProfitValue: dec("1"), IVAPercentage: dec("16"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_AsignaPrecioDerivado(t *testing.T) {
	p := &entity.Product{
		BasePrice: dec("100"), ProfitType: entity.ProfitPercentage,
		ProfitValue: dec("20"), IVAPercentage: dec("16"),
		Price: dec("1"), // valor enviado por el cliente, se ignora
	}
	require.NoError(t, pricing.Apply(p))
	assert.Equal(t, "139.20", p.Price.StringFixed(2))
}
