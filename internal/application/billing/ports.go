// Package billing orquesta la emisión de facturas: valida las partes,
// construye el documento UBL, lo persiste y opcionalmente lo envía por correo.
package billing

import (
	"context"

	"github.com/easybill-co/caja-api/internal/domain/entity"
	infradian "github.com/easybill-co/caja-api/internal/infrastructure/dian"
)

// DocumentBuilder puerto hacia el ensamblador del documento UBL.
type DocumentBuilder interface {
	Build(in infradian.DocumentInput) (*infradian.Document, error)
}

// MailSender puerto hacia el envío de correo. El XML viaja como adjunto.
type MailSender interface {
	SendInvoice(ctx context.Context, to string, invoice *entity.Invoice, purchase *entity.Purchase) error
}

// PDFGenerator puerto hacia la generación del tirilla/representación gráfica.
type PDFGenerator interface {
	GenerateInvoicePDF(invoice *entity.Invoice, client *entity.Client) ([]byte, error)
}
