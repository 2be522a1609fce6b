package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/easybill-co/caja-api/internal/domain/billing"
	"github.com/easybill-co/caja-api/internal/domain/entity"
	"github.com/easybill-co/caja-api/pkg/dian"
)

// PartyRequest datos de una parte (cliente) en el body de creación de factura.
type PartyRequest struct {
	RegistrationName string `json:"registration_name"`
	Name             string `json:"name"`
	DocumentType     string `json:"document_type"`
	DocumentNumber   string `json:"document_number"`
	Email            string `json:"email,omitempty"`
	Telephone        string `json:"telephone,omitempty"`
	Address          string `json:"address,omitempty"`
	CityName         string `json:"city_name,omitempty"`
	CountrySubentity string `json:"country_subentity,omitempty"`
	PostalZone       string `json:"postal_zone,omitempty"`
	CountryCode      string `json:"country_code,omitempty"`
}

// ToPartyInfo convierte el request a la parte del dominio. Si no viene nombre
// comercial se usa la razón social.
func (p PartyRequest) ToPartyInfo() billing.PartyInfo {
	name := p.Name
	if name == "" {
		name = p.RegistrationName
	}
	return billing.PartyInfo{
		RegistrationName: p.RegistrationName,
		LegalName:        name,
		DocumentType:     p.DocumentType,
		DocumentNumber:   p.DocumentNumber,
		Email:            p.Email,
		Telephone:        p.Telephone,
		Address:          p.Address,
		CityName:         p.CityName,
		CountrySubentity: p.CountrySubentity,
		PostalZone:       p.PostalZone,
		CountryCode:      p.CountryCode,
	}
}

// InvoiceItemRequest línea de factura en el body.
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCode    string          `json:"unit_code,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// InvoiceID opcional: si va vacío la numeración se sintetiza desde la hora.
type CreateInvoiceRequest struct {
	InvoiceID      string               `json:"invoice_id,omitempty"`
	PaymentDueDate string               `json:"payment_due_date,omitempty"` // YYYY-MM-DD
	Client         PartyRequest         `json:"client"`
	Items          []InvoiceItemRequest `json:"items"`
	SendEmail      bool                 `json:"send_email,omitempty"`
}

// Validate chequeos de forma del request, antes de tocar el dominio.
func (r *CreateInvoiceRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("items: se requiere al menos una línea")
	}
	for i, it := range r.Items {
		if it.Description == "" {
			return fmt.Errorf("items[%d].description: es obligatorio", i)
		}
		if it.UnitCode != "" && !dian.ValidMeasurementUnitCodes[it.UnitCode] {
			return fmt.Errorf("items[%d].unit_code: código de unidad desconocido", i)
		}
	}
	return nil
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID                  string          `json:"id"`
	InvoiceID           string          `json:"invoice_id"`
	ClientID            string          `json:"client_id"`
	Currency            string          `json:"currency"`
	IssueDate           string          `json:"issue_date"`
	LineExtensionAmount decimal.Decimal `json:"line_extension_amount"`
	TaxExclusiveAmount  decimal.Decimal `json:"tax_exclusive_amount"`
	TaxInclusiveAmount  decimal.Decimal `json:"tax_inclusive_amount"`
	PayableAmount       decimal.Decimal `json:"payable_amount"`
	TaxRate             decimal.Decimal `json:"tax_rate"`
	CUFE                string          `json:"cufe"`
	VerificationURL     string          `json:"verification_url"`
	EmailSent           bool            `json:"email_sent,omitempty"`
}

// ToInvoiceResponse convierte la entidad al DTO de respuesta.
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                  inv.ID,
		InvoiceID:           inv.InvoiceID,
		ClientID:            inv.ClientID,
		Currency:            inv.Currency,
		IssueDate:           inv.IssueDate.Format("2006-01-02"),
		LineExtensionAmount: inv.LineExtensionAmount,
		TaxExclusiveAmount:  inv.TaxExclusiveAmount,
		TaxInclusiveAmount:  inv.TaxInclusiveAmount,
		PayableAmount:       inv.PayableAmount,
		TaxRate:             inv.TaxRate,
		CUFE:                inv.CUFE,
		VerificationURL:     inv.VerificationURL,
	}
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID               string `json:"id"`
	RegistrationName string `json:"registration_name"`
	Name             string `json:"name"`
	DocumentType     string `json:"document_type"`
	DocumentNumber   string `json:"document_number"`
	Email            string `json:"email,omitempty"`
	Telephone        string `json:"telephone,omitempty"`
	CityName         string `json:"city_name,omitempty"`
}

// ToClientResponse convierte la entidad al DTO de respuesta.
func ToClientResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:               c.ID,
		RegistrationName: c.RegistrationName,
		Name:             c.Name,
		DocumentType:     c.DocumentType,
		DocumentNumber:   c.DocumentNumber,
		Email:            c.Email,
		Telephone:        c.Telephone,
		CityName:         c.CityName,
	}
}
