// Package mail envía la factura por correo con el XML UBL como adjunto.
package mail

import (
	"context"
	"fmt"
	"strings"

	gomail "gopkg.in/mail.v2"

	"github.com/easybill-co/caja-api/internal/application/billing"
	"github.com/easybill-co/caja-api/internal/domain/entity"
	"github.com/easybill-co/caja-api/pkg/config"
)

// GomailSender implementación de MailSender sobre SMTP con gomail.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

var _ billing.MailSender = (*GomailSender)(nil)

// NewGomailSender construye el sender con la configuración SMTP.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// SendInvoice envía la factura al cliente: resumen de la compra en el cuerpo
// y el documento UBL adjunto con el nombre del número de factura.
func (s *GomailSender) SendInvoice(ctx context.Context, to string, invoice *entity.Invoice, purchase *entity.Purchase) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Factura electrónica %s - Panadería", invoice.InvoiceID))
	m.SetBody("text/plain", buildBody(invoice, purchase))
	m.AttachReader(invoice.InvoiceID+".xml", strings.NewReader(invoice.XMLContent), gomail.SetHeader(map[string][]string{
		"Content-Type": {"application/xml; charset=UTF-8"},
	}))

	// gomail no acepta context; respetar la cancelación antes de marcar
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar factura %s a %s: %w", invoice.InvoiceID, to, err)
	}
	return nil
}

func buildBody(invoice *entity.Invoice, purchase *entity.Purchase) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Gracias por tu compra en la panadería.\n\n")
	fmt.Fprintf(&b, "Factura: %s\n", invoice.InvoiceID)
	fmt.Fprintf(&b, "Fecha: %s\n", invoice.IssueDate.Format("2006-01-02"))
	if purchase != nil {
		fmt.Fprintf(&b, "Compra: %s\n", purchase.PurchaseID)
		fmt.Fprintf(&b, "Método de pago: %s\n\nProductos:\n", purchase.PaymentMethod)
		for _, p := range purchase.Products {
			fmt.Fprintf(&b, "- %s ($%s)\n", p.Name, p.Price.StringFixed(0))
		}
	}
	fmt.Fprintf(&b, "\nTotal a pagar: $%s %s\n", invoice.PayableAmount.StringFixed(2), invoice.Currency)
	fmt.Fprintf(&b, "CUFE: %s\n", invoice.CUFE)
	fmt.Fprintf(&b, "Verifica tu factura en: %s\n", invoice.VerificationURL)
	return b.String()
}
