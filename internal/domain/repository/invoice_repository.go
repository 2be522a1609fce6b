package repository

import (
	"context"

	"github.com/easybill-co/caja-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas emitidas.
type InvoiceRepository interface {
	// Create inserta la factura. Si ya existe una con el mismo InvoiceID
	// retorna domain.ErrDuplicate: el número completo es llave única.
	Create(ctx context.Context, invoice *entity.Invoice) error

	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByInvoiceID(ctx context.Context, invoiceID string) (*entity.Invoice, error)
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
}
