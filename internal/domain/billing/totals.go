// Package billing contiene el núcleo puro de facturación: líneas, partes,
// numeración y cálculo de totales monetarios. Sin estado, sin I/O; todas las
// operaciones son seguras para llamarse concurrentemente.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem línea de compra tal como llega al builder. Inmutable una vez creada.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitCode    string // código de unidad DIAN (NIU por defecto)
	UnitPrice   decimal.Decimal
}

// Amount monto de la línea (cantidad × precio unitario), sin redondear.
func (l LineItem) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// MonetaryTotals totales del documento en la moneda de la factura,
// redondeados a 2 decimales (unidad menor del COP).
type MonetaryTotals struct {
	LineExtensionAmount decimal.Decimal
	TaxExclusiveAmount  decimal.Decimal
	TaxAmount           decimal.Decimal
	TaxInclusiveAmount  decimal.Decimal
	PayableAmount       decimal.Decimal
}

// ComputeTotals calcula los totales de la factura.
//
// Algoritmo: se suman cantidad × precio por línea sin redondeo intermedio;
// el subtotal es a la vez LineExtensionAmount y TaxExclusiveAmount.
// TaxInclusiveAmount = round(subtotal × (1 + tasa), 2) con redondeo bancario
// (half-to-even, decimal.RoundBank); el redondeo se aplica una sola vez, sobre
// la cifra final con impuesto. PayableAmount = TaxInclusiveAmount (no se
// modelan cargos, descuentos ni retenciones).
func ComputeTotals(lines []LineItem, taxRate decimal.Decimal) (MonetaryTotals, error) {
	if taxRate.IsNegative() {
		return MonetaryTotals{}, &FieldError{Field: "taxRate", Reason: "la tarifa de impuesto no puede ser negativa"}
	}
	var subtotal decimal.Decimal
	for i, l := range lines {
		if l.Quantity.IsNegative() {
			return MonetaryTotals{}, &FieldError{
				Field:  fmt.Sprintf("lines[%d].quantity", i),
				Reason: "la cantidad no puede ser negativa",
			}
		}
		if l.UnitPrice.IsNegative() {
			return MonetaryTotals{}, &FieldError{
				Field:  fmt.Sprintf("lines[%d].unitPrice", i),
				Reason: "el precio unitario no puede ser negativo",
			}
		}
		subtotal = subtotal.Add(l.Amount())
	}

	exclusive := subtotal.RoundBank(2)
	inclusive := subtotal.Mul(decimal.NewFromInt(1).Add(taxRate)).RoundBank(2)

	return MonetaryTotals{
		LineExtensionAmount: exclusive,
		TaxExclusiveAmount:  exclusive,
		TaxAmount:           inclusive.Sub(exclusive),
		TaxInclusiveAmount:  inclusive,
		PayableAmount:       inclusive,
	}, nil
}
