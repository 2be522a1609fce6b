package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/easybill-co/caja-api/internal/domain"
	"github.com/easybill-co/caja-api/internal/domain/entity"
	"github.com/easybill-co/caja-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_id, client_id, currency, issue_date,
	line_extension_amount, tax_exclusive_amount, tax_inclusive_amount,
	payable_amount, tax_rate, cufe, verification_url, xml_content, created_at`

// Create persiste la factura. invoice_id (número completo) es único:
// un choque de numeración retorna domain.ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceID, inv.ClientID, inv.Currency, inv.IssueDate,
		inv.LineExtensionAmount, inv.TaxExclusiveAmount, inv.TaxInclusiveAmount,
		inv.PayableAmount, inv.TaxRate, inv.CUFE, inv.VerificationURL, inv.XMLContent, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por su id interno.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get invoice")
}

// GetByInvoiceID obtiene una factura por su número completo (ej. PN1001).
func (r *InvoiceRepo) GetByInvoiceID(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, invoiceID), "get invoice by invoice_id")
}

// ListByClient lista las facturas de un cliente, más recientes primero.
func (r *InvoiceRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, clientID, limit, offset)
}

// List lista las facturas emitidas, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) scanOne(row pgx.Row, op string) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := scanInvoice(row, &inv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &inv, nil
}

func scanInvoice(row pgx.Row, inv *entity.Invoice) error {
	return row.Scan(
		&inv.ID, &inv.InvoiceID, &inv.ClientID, &inv.Currency, &inv.IssueDate,
		&inv.LineExtensionAmount, &inv.TaxExclusiveAmount, &inv.TaxInclusiveAmount,
		&inv.PayableAmount, &inv.TaxRate, &inv.CUFE, &inv.VerificationURL, &inv.XMLContent, &inv.CreatedAt,
	)
}
