package billing

import (
	"context"

	"github.com/easybill-co/caja-api/internal/application/dto"
	"github.com/easybill-co/caja-api/internal/domain/entity"
	"github.com/easybill-co/caja-api/internal/domain/repository"
)

// DocumentUseCase consultas de facturas emitidas y sus representaciones
// (XML original y tirilla PDF).
type DocumentUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	pdf         PDFGenerator
}

func NewDocumentUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	pdf PDFGenerator,
) *DocumentUseCase {
	return &DocumentUseCase{invoiceRepo: invoiceRepo, clientRepo: clientRepo, pdf: pdf}
}

// Get devuelve la factura por su id interno.
func (uc *DocumentUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToInvoiceResponse(inv)
	return &resp, nil
}

// List devuelve las facturas más recientes, paginadas.
func (uc *DocumentUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoiceRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, dto.ToInvoiceResponse(inv))
	}
	return out, nil
}

// GetXML devuelve el documento UBL tal como se emitió, byte a byte, junto con
// el nombre de archivo sugerido para la descarga.
func (uc *DocumentUseCase) GetXML(ctx context.Context, id string) (xml string, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	return inv.XMLContent, inv.InvoiceID + ".xml", nil
}

// GetPDF genera la representación gráfica de la factura.
func (uc *DocumentUseCase) GetPDF(ctx context.Context, id string) (pdf []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	client, err := uc.clientRepo.GetByID(ctx, inv.ClientID)
	if err != nil {
		// la tirilla se puede generar sin los datos de contacto del cliente
		client = &entity.Client{ID: inv.ClientID}
	}
	out, err := uc.pdf.GenerateInvoicePDF(inv, client)
	if err != nil {
		return nil, "", err
	}
	return out, inv.InvoiceID + ".pdf", nil
}
