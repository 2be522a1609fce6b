package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa una factura electrónica emitida por la caja.
// El documento UBL se construye una sola vez y se guarda completo en XMLContent;
// la factura solo existe como estos campos derivados más el XML.
type Invoice struct {
	ID        string
	InvoiceID string // ID completo del documento (prefijo + número, ej. PN1001), único
	ClientID  string
	Currency  string
	IssueDate time.Time

	LineExtensionAmount decimal.Decimal
	TaxExclusiveAmount  decimal.Decimal
	TaxInclusiveAmount  decimal.Decimal
	PayableAmount       decimal.Decimal
	TaxRate             decimal.Decimal // decimal en [0,1], ej. 0.19

	CUFE            string // token de 32 hex (placeholder del digest SHA-384 real)
	VerificationURL string // URL de consulta en el catálogo DIAN
	XMLContent      string // documento UBL 2.1 completo

	CreatedAt time.Time
}
