// Package dian ensambla el documento UBL 2.1 de factura electrónica de venta
// con las extensiones DIAN, sobre el árbol tipado de pkg/xmltree.
package dian

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/easybill-co/caja-api/internal/domain/billing"
	"github.com/easybill-co/caja-api/internal/domain/entity"
)

// DocumentInput entrada completa del builder. Las partes llegan ya validadas
// (billing.PartyInfo.Validate); el builder asume campos obligatorios presentes
// y emitiría etiquetas vacías si no lo estuvieran.
type DocumentInput struct {
	InvoiceID          string // id completo; si viene vacío se sintetiza
	ProfileExecutionID string // "1" producción, "2" habilitación
	Currency           string
	IssueDate          time.Time
	PaymentDueDate     string // YYYY-MM-DD, opcional
	TaxRate            decimal.Decimal
	Supplier           billing.PartyInfo
	Customer           billing.PartyInfo
	Lines              []billing.LineItem
	Authorization      entity.AuthorizationWindow
}

// Document resultado del ensamblado: el XML serializado y los identificadores
// que el llamador persiste junto a la factura.
type Document struct {
	XML             string
	InvoiceID       string // id completo (prefijo + consecutivo)
	Prefix          string
	NumericID       string
	CUFE            string
	VerificationURL string
	Totals          billing.MonetaryTotals
}
