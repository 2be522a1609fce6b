package billing

import (
	"strings"
	"time"
	"unicode"
)

// DefaultPrefix prefijo de numeración usado cuando el id no trae letras.
const DefaultPrefix = "PN"

// SplitInvoiceID separa un id completo de factura en prefijo de numeración y
// parte numérica: la corrida inicial de letras es el prefijo (DefaultPrefix si
// no hay letras) y la corrida de dígitos que sigue es el consecutivo. Si el id
// no contiene dígitos, la parte numérica cae al id completo tal cual.
func SplitInvoiceID(invoiceID string) (prefix, numeric string) {
	var letters strings.Builder
	rest := invoiceID
	for i, r := range invoiceID {
		if !unicode.IsLetter(r) {
			rest = invoiceID[i:]
			break
		}
		letters.WriteRune(r)
		rest = ""
	}

	var digits strings.Builder
	for _, r := range rest {
		if !unicode.IsDigit(r) {
			break
		}
		digits.WriteRune(r)
	}

	prefix = letters.String()
	if prefix == "" {
		prefix = DefaultPrefix
	}
	numeric = digits.String()
	if numeric == "" {
		numeric = invoiceID
	}
	return prefix, numeric
}

// SynthesizeInvoiceID genera un id de factura a partir de la hora de pared
// (HHMMSS) con el prefijo por defecto. No garantiza unicidad entre facturas
// emitidas en el mismo segundo ni monotonía entre días; el llamador que
// necesite numeración real debe suministrar el id explícitamente.
func SynthesizeInvoiceID(now time.Time) string {
	return DefaultPrefix + now.Format("150405")
}
