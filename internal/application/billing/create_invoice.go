package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/easybill-co/caja-api/internal/application/dto"
	"github.com/easybill-co/caja-api/internal/domain"
	domainbilling "github.com/easybill-co/caja-api/internal/domain/billing"
	"github.com/easybill-co/caja-api/internal/domain/entity"
	"github.com/easybill-co/caja-api/internal/domain/repository"
	infradian "github.com/easybill-co/caja-api/internal/infrastructure/dian"
	"github.com/easybill-co/caja-api/pkg/logger"
)

// IssuerConfig datos fijos del emisor: la parte vendedora, la resolución de
// numeración y los parámetros tributarios. Vienen de configuración y no
// cambian entre facturas.
type IssuerConfig struct {
	Supplier           domainbilling.PartyInfo
	Authorization      entity.AuthorizationWindow
	Currency           string
	TaxRate            decimal.Decimal
	ProfileExecutionID string
}

// InvoiceUseCase caso de uso de emisión de facturas.
type InvoiceUseCase struct {
	clientRepo  repository.ClientRepository
	invoiceRepo repository.InvoiceRepository
	builder     DocumentBuilder
	mail        MailSender // puede ser nil si el correo no está configurado
	issuer      IssuerConfig
	log         *logger.Logger
	now         func() time.Time
}

func NewInvoiceUseCase(
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
	builder DocumentBuilder,
	mail MailSender,
	issuer IssuerConfig,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
		builder:     builder,
		mail:        mail,
		issuer:      issuer,
		log:         log,
		now:         time.Now,
	}
}

// CreateInvoice emite una factura para el cliente del request: valida partes,
// resuelve el cliente por número de documento (creándolo si no existe),
// construye el XML, persiste y opcionalmente envía el correo.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	customer := in.Client.ToPartyInfo()
	if err := customer.Validate("client"); err != nil {
		return nil, err
	}
	if err := uc.issuer.Supplier.Validate("supplier"); err != nil {
		return nil, err
	}

	client, err := uc.upsertClient(ctx, in.Client)
	if err != nil {
		return nil, err
	}

	lines := make([]domainbilling.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, domainbilling.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitCode:    it.UnitCode,
			UnitPrice:   it.UnitPrice,
		})
	}

	invoice, err := uc.issue(ctx, client, in.InvoiceID, in.PaymentDueDate, lines)
	if err != nil {
		return nil, err
	}

	resp := dto.ToInvoiceResponse(invoice)
	if in.SendEmail {
		resp.EmailSent = uc.sendByEmail(ctx, client, invoice, nil)
	}
	return &resp, nil
}

// IssueForPurchase emite la factura de una compra simulada para un cliente ya
// resuelto (flujo de reconocimiento). Envía el correo si el cliente tiene uno.
func (uc *InvoiceUseCase) IssueForPurchase(ctx context.Context, client *entity.Client, purchase *entity.Purchase) (*entity.Invoice, bool, error) {
	// el cliente viene de la base, pero una fila sembrada a mano puede estar
	// incompleta y produciría un XML sin receptor
	if err := partyFromClient(client).Validate("client"); err != nil {
		return nil, false, err
	}

	lines := make([]domainbilling.LineItem, 0, len(purchase.Products))
	for _, p := range purchase.Products {
		lines = append(lines, domainbilling.LineItem{
			Description: p.Name,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   p.Price,
		})
	}

	invoice, err := uc.issue(ctx, client, "", "", lines)
	if err != nil {
		return nil, false, err
	}
	sent := uc.sendByEmail(ctx, client, invoice, purchase)
	return invoice, sent, nil
}

// issue construye el documento, arma la entidad y la persiste.
func (uc *InvoiceUseCase) issue(ctx context.Context, client *entity.Client, invoiceID, dueDate string, lines []domainbilling.LineItem) (*entity.Invoice, error) {
	issuedAt := uc.now()
	doc, err := uc.builder.Build(infradian.DocumentInput{
		InvoiceID:          invoiceID,
		ProfileExecutionID: uc.issuer.ProfileExecutionID,
		Currency:           uc.issuer.Currency,
		IssueDate:          issuedAt,
		PaymentDueDate:     dueDate,
		TaxRate:            uc.issuer.TaxRate,
		Supplier:           uc.issuer.Supplier,
		Customer:           partyFromClient(client),
		Lines:              lines,
		Authorization:      uc.issuer.Authorization,
	})
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		ID:                  uuid.New().String(),
		InvoiceID:           doc.InvoiceID,
		ClientID:            client.ID,
		Currency:            uc.issuer.Currency,
		IssueDate:           issuedAt,
		LineExtensionAmount: doc.Totals.LineExtensionAmount,
		TaxExclusiveAmount:  doc.Totals.TaxExclusiveAmount,
		TaxInclusiveAmount:  doc.Totals.TaxInclusiveAmount,
		PayableAmount:       doc.Totals.PayableAmount,
		TaxRate:             uc.issuer.TaxRate,
		CUFE:                doc.CUFE,
		VerificationURL:     doc.VerificationURL,
		XMLContent:          doc.XML,
		CreatedAt:           issuedAt,
	}
	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("invoice_id", invoice.InvoiceID).
		Str("cufe", invoice.CUFE).
		Str("payable", invoice.PayableAmount.StringFixed(2)).
		Msg("factura emitida")
	return invoice, nil
}

// sendByEmail envía la factura sin afectar la emisión: un fallo de correo se
// registra y la factura ya persistida sigue siendo válida.
func (uc *InvoiceUseCase) sendByEmail(ctx context.Context, client *entity.Client, invoice *entity.Invoice, purchase *entity.Purchase) bool {
	if uc.mail == nil || client.Email == "" {
		return false
	}
	if err := uc.mail.SendInvoice(ctx, client.Email, invoice, purchase); err != nil {
		uc.log.Warn().
			Err(err).
			Str("invoice_id", invoice.InvoiceID).
			Str("to", client.Email).
			Msg("no se pudo enviar la factura por correo")
		return false
	}
	return true
}

// upsertClient resuelve el cliente por su número de documento; si no existe lo
// crea con los datos del request y si existe actualiza el contacto.
func (uc *InvoiceUseCase) upsertClient(ctx context.Context, in dto.PartyRequest) (*entity.Client, error) {
	client, err := uc.clientRepo.GetByDocumentNumber(ctx, in.DocumentNumber)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := uc.now()
	if client == nil {
		client = &entity.Client{
			ID:               uuid.New().String(),
			RegistrationName: in.RegistrationName,
			Name:             in.Name,
			DocumentType:     in.DocumentType,
			DocumentNumber:   in.DocumentNumber,
			Email:            in.Email,
			Telephone:        in.Telephone,
			Address:          in.Address,
			CityName:         in.CityName,
			CountrySubentity: in.CountrySubentity,
			PostalZone:       in.PostalZone,
			CountryCode:      in.CountryCode,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := uc.clientRepo.Create(ctx, client); err != nil {
			return nil, err
		}
		return client, nil
	}
	if in.Email != "" {
		client.Email = in.Email
	}
	if in.Telephone != "" {
		client.Telephone = in.Telephone
	}
	client.UpdatedAt = now
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func partyFromClient(c *entity.Client) domainbilling.PartyInfo {
	name := c.Name
	if name == "" {
		name = c.RegistrationName
	}
	return domainbilling.PartyInfo{
		RegistrationName: c.RegistrationName,
		LegalName:        name,
		DocumentType:     c.DocumentType,
		DocumentNumber:   c.DocumentNumber,
		Email:            c.Email,
		Telephone:        c.Telephone,
		Address:          c.Address,
		CityName:         c.CityName,
		CountrySubentity: c.CountrySubentity,
		PostalZone:       c.PostalZone,
		CountryCode:      c.CountryCode,
	}
}
