package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybill-co/caja-api/internal/application/dto"
	"github.com/easybill-co/caja-api/internal/domain"
	domainbilling "github.com/easybill-co/caja-api/internal/domain/billing"
	"github.com/easybill-co/caja-api/internal/domain/entity"
	infradian "github.com/easybill-co/caja-api/internal/infrastructure/dian"
	"github.com/easybill-co/caja-api/pkg/logger"
)

// ─────────────────────────────────────────────
// Fakes de persistencia y correo
// ─────────────────────────────────────────────

type fakeClientRepo struct {
	byDocument map[string]*entity.Client
	updated    int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byDocument: make(map[string]*entity.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.byDocument[c.DocumentNumber] = c
	return nil
}

func (r *fakeClientRepo) GetByDocumentNumber(_ context.Context, doc string) (*entity.Client, error) {
	c, ok := r.byDocument[doc]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	for _, c := range r.byDocument {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.byDocument[c.DocumentNumber] = c
	r.updated++
	return nil
}

func (r *fakeClientRepo) List(_ context.Context, _, _ int) ([]*entity.Client, error) {
	return nil, nil
}

type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	for _, existing := range r.invoices {
		if existing.InvoiceID == inv.InvoiceID {
			return domain.ErrDuplicate
		}
	}
	r.invoices = append(r.invoices, inv)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeInvoiceRepo) GetByInvoiceID(_ context.Context, invoiceID string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.InvoiceID == invoiceID {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeInvoiceRepo) ListByClient(_ context.Context, _ string, _, _ int) ([]*entity.Invoice, error) {
	return r.invoices, nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, _, _ int) ([]*entity.Invoice, error) {
	return r.invoices, nil
}

type fakeMail struct {
	sent []string
	err  error
}

func (m *fakeMail) SendInvoice(_ context.Context, to string, _ *entity.Invoice, _ *entity.Purchase) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

// ─────────────────────────────────────────────
// Arranque del caso de uso
// ─────────────────────────────────────────────

func issuerDePrueba() IssuerConfig {
	return IssuerConfig{
		Supplier: domainbilling.PartyInfo{
			RegistrationName: "Panadería La Espiga SAS",
			LegalName:        "Panadería La Espiga SAS",
			DocumentType:     "31",
			DocumentNumber:   "900123456",
			CityName:         "Bogotá",
			CountryCode:      "CO",
		},
		Authorization: entity.AuthorizationWindow{
			AuthorizationNumber: "18760000001",
			Prefix:              "PN",
			RangeFrom:           1,
			RangeTo:             999999,
			StartDate:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:             time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		Currency:           "COP",
		TaxRate:            decimal.RequireFromString("0.19"),
		ProfileExecutionID: "2",
	}
}

func nuevoUseCase(clients *fakeClientRepo, invoices *fakeInvoiceRepo, mail MailSender) *InvoiceUseCase {
	uc := NewInvoiceUseCase(
		clients,
		invoices,
		infradian.NewBuilder(),
		mail,
		issuerDePrueba(),
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
	uc.now = func() time.Time {
		return time.Date(2026, 3, 15, 9, 41, 7, 0, time.FixedZone("COT", -5*3600))
	}
	return uc
}

func requestBase() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		InvoiceID: "PN1001",
		Client: dto.PartyRequest{
			RegistrationName: "María Pérez",
			Name:             "María Pérez",
			DocumentType:     "13",
			DocumentNumber:   "1020304050",
			Email:            "maria@example.com",
		},
		Items: []dto.InvoiceItemRequest{
			{Description: "Torta de tres leches", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(150000)},
		},
	}
}

// ─────────────────────────────────────────────
// CreateInvoice
// ─────────────────────────────────────────────

func TestCreateInvoice_EmiteYPersiste(t *testing.T) {
	clients := newFakeClientRepo()
	invoices := &fakeInvoiceRepo{}
	uc := nuevoUseCase(clients, invoices, nil)

	resp, err := uc.CreateInvoice(context.Background(), requestBase())

	require.NoError(t, err)
	assert.Equal(t, "PN1001", resp.InvoiceID)
	assert.Equal(t, "178500.00", resp.PayableAmount.StringFixed(2))
	assert.Len(t, resp.CUFE, 32)
	assert.Contains(t, resp.VerificationURL, "documentKey=PN1001-2026")

	require.Len(t, invoices.invoices, 1)
	assert.Contains(t, invoices.invoices[0].XMLContent, "<cbc:ID>PN1001</cbc:ID>")
	assert.NotNil(t, clients.byDocument["1020304050"])
	assert.Equal(t, clients.byDocument["1020304050"].ID, resp.ClientID)
}

func TestCreateInvoice_ReutilizaClienteExistente(t *testing.T) {
	clients := newFakeClientRepo()
	existing := &entity.Client{
		ID:               "client-1",
		RegistrationName: "María Pérez",
		DocumentType:     "13",
		DocumentNumber:   "1020304050",
		Email:            "vieja@example.com",
	}
	require.NoError(t, clients.Create(context.Background(), existing))
	uc := nuevoUseCase(clients, &fakeInvoiceRepo{}, nil)

	resp, err := uc.CreateInvoice(context.Background(), requestBase())

	require.NoError(t, err)
	assert.Equal(t, "client-1", resp.ClientID)
	assert.Equal(t, 1, clients.updated)
	assert.Equal(t, "maria@example.com", existing.Email)
}

func TestCreateInvoice_RechazaParteIncompletaAntesDeConstruir(t *testing.T) {
	invoices := &fakeInvoiceRepo{}
	uc := nuevoUseCase(newFakeClientRepo(), invoices, nil)
	req := requestBase()
	req.Client.RegistrationName = ""

	_, err := uc.CreateInvoice(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "client.registrationName")
	assert.Empty(t, invoices.invoices)
}

func TestCreateInvoice_SinLineas(t *testing.T) {
	uc := nuevoUseCase(newFakeClientRepo(), &fakeInvoiceRepo{}, nil)
	req := requestBase()
	req.Items = nil

	_, err := uc.CreateInvoice(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "items")
}

func TestCreateInvoice_UnidadDesconocida(t *testing.T) {
	uc := nuevoUseCase(newFakeClientRepo(), &fakeInvoiceRepo{}, nil)
	req := requestBase()
	req.Items[0].UnitCode = "XYZ"

	_, err := uc.CreateInvoice(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit_code")
}

func TestCreateInvoice_NumeroDuplicado(t *testing.T) {
	clients := newFakeClientRepo()
	invoices := &fakeInvoiceRepo{}
	uc := nuevoUseCase(clients, invoices, nil)

	_, err := uc.CreateInvoice(context.Background(), requestBase())
	require.NoError(t, err)
	_, err = uc.CreateInvoice(context.Background(), requestBase())

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, invoices.invoices, 1)
}

func TestCreateInvoice_EnvioDeCorreo(t *testing.T) {
	mail := &fakeMail{}
	uc := nuevoUseCase(newFakeClientRepo(), &fakeInvoiceRepo{}, mail)
	req := requestBase()
	req.SendEmail = true

	resp, err := uc.CreateInvoice(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.EmailSent)
	assert.Equal(t, []string{"maria@example.com"}, mail.sent)
}

func TestCreateInvoice_FalloDeCorreoNoAnulaLaFactura(t *testing.T) {
	mail := &fakeMail{err: errors.New("smtp caído")}
	invoices := &fakeInvoiceRepo{}
	uc := nuevoUseCase(newFakeClientRepo(), invoices, mail)
	req := requestBase()
	req.SendEmail = true

	resp, err := uc.CreateInvoice(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, resp.EmailSent)
	assert.Len(t, invoices.invoices, 1)
}

// ─────────────────────────────────────────────
// IssueForPurchase
// ─────────────────────────────────────────────

func TestIssueForPurchase_FacturaLaCompraSimulada(t *testing.T) {
	clients := newFakeClientRepo()
	client := &entity.Client{
		ID:               "client-1",
		RegistrationName: "María Pérez",
		Name:             "María Pérez",
		DocumentType:     "13",
		DocumentNumber:   "1020304050",
		Email:            "maria@example.com",
	}
	require.NoError(t, clients.Create(context.Background(), client))
	mail := &fakeMail{}
	invoices := &fakeInvoiceRepo{}
	uc := nuevoUseCase(clients, invoices, mail)

	purchase := &entity.Purchase{
		PurchaseID: "PUR-123456",
		Timestamp:  time.Now(),
		Products: []entity.PurchaseProduct{
			{Name: "Pan de bono", Price: decimal.NewFromInt(2000)},
			{Name: "Café americano", Price: decimal.NewFromInt(3000)},
		},
		Total:         decimal.NewFromInt(5000),
		PaymentMethod: "efectivo",
	}

	invoice, sent, err := uc.IssueForPurchase(context.Background(), client, purchase)

	require.NoError(t, err)
	assert.True(t, sent)
	// sin id explícito la numeración se sintetiza desde la hora fija del test
	assert.Equal(t, "PN094107", invoice.InvoiceID)
	assert.Equal(t, "5950.00", invoice.PayableAmount.StringFixed(2))
	require.Len(t, invoices.invoices, 1)
}

func TestIssueForPurchase_RechazaClienteIncompleto(t *testing.T) {
	clients := newFakeClientRepo()
	// fila sembrada directamente en la base, sin razón social
	client := &entity.Client{
		ID:             "client-2",
		DocumentType:   "13",
		DocumentNumber: "1020304050",
	}
	require.NoError(t, clients.Create(context.Background(), client))
	invoices := &fakeInvoiceRepo{}
	uc := nuevoUseCase(clients, invoices, nil)

	purchase := &entity.Purchase{
		PurchaseID: "PUR-654321",
		Timestamp:  time.Now(),
		Products: []entity.PurchaseProduct{
			{Name: "Croissant", Price: decimal.NewFromInt(3500)},
		},
		Total:         decimal.NewFromInt(3500),
		PaymentMethod: "tarjeta",
	}

	_, _, err := uc.IssueForPurchase(context.Background(), client, purchase)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "client.registrationName")
	assert.Empty(t, invoices.invoices)
}
