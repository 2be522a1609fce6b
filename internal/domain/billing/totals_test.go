package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ─────────────────────────────────────────────
// ComputeTotals
// ─────────────────────────────────────────────

func TestComputeTotals_LineaUnicaConIVA(t *testing.T) {
	lines := []LineItem{
		{Description: "Torta de tres leches", Quantity: d("1"), UnitPrice: d("150000")},
	}

	totals, err := ComputeTotals(lines, d("0.19"))

	require.NoError(t, err)
	assert.Equal(t, "150000.00", totals.LineExtensionAmount.StringFixed(2))
	assert.Equal(t, "150000.00", totals.TaxExclusiveAmount.StringFixed(2))
	assert.Equal(t, "178500.00", totals.TaxInclusiveAmount.StringFixed(2))
	assert.Equal(t, "178500.00", totals.PayableAmount.StringFixed(2))
	assert.Equal(t, "28500.00", totals.TaxAmount.StringFixed(2))
}

func TestComputeTotals_VariasLineasTasaCero(t *testing.T) {
	lines := []LineItem{
		{Description: "Pan de bono", Quantity: d("2"), UnitPrice: d("2000")},
		{Description: "Galleta de avena", Quantity: d("2"), UnitPrice: d("250")},
	}

	totals, err := ComputeTotals(lines, decimal.Zero)

	require.NoError(t, err)
	assert.Equal(t, "4500.00", totals.LineExtensionAmount.StringFixed(2))
	assert.Equal(t, "4500.00", totals.TaxInclusiveAmount.StringFixed(2))
	assert.True(t, totals.TaxAmount.IsZero())
}

func TestComputeTotals_SinRedondeoIntermedio(t *testing.T) {
	// 3 × 1666.666 = 4999.998; el redondeo se aplica una sola vez al final.
	lines := []LineItem{
		{Description: "Porción", Quantity: d("3"), UnitPrice: d("1666.666")},
	}

	totals, err := ComputeTotals(lines, d("0.19"))

	require.NoError(t, err)
	// 4999.998 × 1.19 = 5949.99762 → 5950.00
	assert.Equal(t, "5950.00", totals.TaxInclusiveAmount.StringFixed(2))
}

func TestComputeTotals_RedondeoBancario(t *testing.T) {
	// 100.125 × 1 cae exactamente en la mitad: half-to-even → 100.12.
	lines := []LineItem{
		{Description: "Mitad exacta", Quantity: d("1"), UnitPrice: d("100.125")},
	}

	totals, err := ComputeTotals(lines, decimal.Zero)

	require.NoError(t, err)
	assert.Equal(t, "100.12", totals.TaxInclusiveAmount.StringFixed(2))
}

func TestComputeTotals_SinLineas(t *testing.T) {
	totals, err := ComputeTotals(nil, d("0.19"))

	require.NoError(t, err)
	assert.Equal(t, "0.00", totals.PayableAmount.StringFixed(2))
}

func TestComputeTotals_TasaNegativa(t *testing.T) {
	_, err := ComputeTotals(nil, d("-0.19"))

	require.Error(t, err)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "taxRate", fe.Field)
}

func TestComputeTotals_CantidadNegativa(t *testing.T) {
	lines := []LineItem{
		{Description: "Pan de bono", Quantity: d("1"), UnitPrice: d("2000")},
		{Description: "Devolución", Quantity: d("-1"), UnitPrice: d("2000")},
	}

	_, err := ComputeTotals(lines, decimal.Zero)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "lines[1].quantity", fe.Field)
}

func TestComputeTotals_PrecioNegativo(t *testing.T) {
	lines := []LineItem{
		{Description: "Pan de bono", Quantity: d("1"), UnitPrice: d("-2000")},
	}

	_, err := ComputeTotals(lines, decimal.Zero)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "lines[0].unitPrice", fe.Field)
}
