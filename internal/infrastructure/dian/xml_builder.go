package dian

import (
	"strconv"
	"unicode"

	"github.com/easybill-co/caja-api/internal/domain/billing"
	domaindian "github.com/easybill-co/caja-api/internal/domain/dian"
	"github.com/easybill-co/caja-api/pkg/dian"
	"github.com/easybill-co/caja-api/pkg/xmltree"
)

// Namespaces del documento de factura. Se declaran una única vez en la raíz;
// el escritor rechaza cualquier prefijo fuera de esta lista.
var invoiceNamespaces = []xmltree.Namespace{
	{Prefix: "", URI: "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"},
	{Prefix: "cbc", URI: "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"},
	{Prefix: "cac", URI: "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"},
	{Prefix: "ext", URI: "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"},
	{Prefix: "sts", URI: "dian:gov:co:facturaelectronica:Structures-2-1"},
	{Prefix: "ds", URI: "http://www.w3.org/2000/09/xmldsig#"},
}

// Builder arma el documento UBL 2.1. No guarda estado entre llamadas;
// es seguro compartir una instancia entre requests.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build construye la factura completa: resuelve la numeración, calcula
// totales, acuña el CUFE y serializa el XML. Falla antes de emitir XML si las
// líneas o la tarifa son inválidas; nunca retorna un documento parcial.
func (b *Builder) Build(in DocumentInput) (*Document, error) {
	totals, err := billing.ComputeTotals(in.Lines, in.TaxRate)
	if err != nil {
		return nil, err
	}

	fullID := in.InvoiceID
	if fullID == "" {
		fullID = billing.SynthesizeInvoiceID(in.IssueDate)
	}
	prefix, numeric := billing.SplitInvoiceID(fullID)
	if !startsWithLetter(fullID) {
		fullID = prefix + fullID
	}

	cufe := domaindian.MintCUFE()
	verificationURL := domaindian.VerificationURL(prefix, numeric, in.IssueDate.Year())

	root := xmltree.New("", "Invoice")
	b.appendExtensions(root, in, verificationURL)
	b.appendHeader(root, in, fullID, cufe)
	b.appendParty(root, "AccountingSupplierParty", in.Supplier)
	b.appendParty(root, "AccountingCustomerParty", in.Customer)
	b.appendPaymentMeans(root, in.PaymentDueDate)
	b.appendLines(root, in)
	b.appendMonetaryTotal(root, in.Currency, totals)

	doc := xmltree.Document{Root: root, Namespaces: invoiceNamespaces}
	xml, err := doc.Serialize()
	if err != nil {
		return nil, err
	}

	return &Document{
		XML:             xml,
		InvoiceID:       fullID,
		Prefix:          prefix,
		NumericID:       numeric,
		CUFE:            cufe,
		VerificationURL: verificationURL,
		Totals:          totals,
	}, nil
}

// appendExtensions emite las dos ext:UBLExtension: el control de numeración
// DIAN y el contenedor de firma (relleno; ver appendSignature).
func (b *Builder) appendExtensions(root *xmltree.Element, in DocumentInput, verificationURL string) {
	exts := root.Child("ext", "UBLExtensions")

	content := exts.Child("ext", "UBLExtension").Child("ext", "ExtensionContent")
	dianExt := content.Child("sts", "DianExtensions")
	ctrl := dianExt.Child("sts", "InvoiceControl")
	period := ctrl.Child("sts", "AuthorizationPeriod")
	period.ChildText("cbc", "StartDate", in.Authorization.StartDate.Format("2006-01-02"))
	period.ChildText("cbc", "EndDate", in.Authorization.EndDate.Format("2006-01-02"))
	authorized := ctrl.Child("sts", "AuthorizedInvoices")
	authorized.ChildText("sts", "Prefix", in.Authorization.Prefix)
	authorized.ChildText("sts", "From", strconv.FormatInt(in.Authorization.RangeFrom, 10))
	authorized.ChildText("sts", "To", strconv.FormatInt(in.Authorization.RangeTo, 10))
	dianExt.ChildText("sts", "InvoiceAuthorization", in.Authorization.AuthorizationNumber)
	dianExt.ChildText("sts", "QRCode", verificationURL)

	b.appendSignature(exts.Child("ext", "UBLExtension").Child("ext", "ExtensionContent"))
}

// appendSignature emite el bloque ds:Signature de relleno. Los valores FAKE
// marcan que el documento NO está firmado: la integración real sustituye este
// bloque por una firma XAdES sin tocar el resto del ensamblado.
func (b *Builder) appendSignature(content *xmltree.Element) {
	sig := content.Child("ds", "Signature")
	signedInfo := sig.Child("ds", "SignedInfo")
	signedInfo.Child("ds", "CanonicalizationMethod").
		Attr("Algorithm", "http://www.w3.org/TR/2001/REC-xml-c14n-20010315")
	signedInfo.Child("ds", "SignatureMethod").
		Attr("Algorithm", "http://www.w3.org/2001/04/xmldsig-more#rsa-sha256")
	sig.ChildText("ds", "SignatureValue", "FAKE_SIGNATURE_SAMPLE_BASE64")
	rsa := sig.Child("ds", "KeyInfo").Child("ds", "KeyValue").Child("ds", "RSAKeyValue")
	rsa.ChildText("ds", "Modulus", "FAKE")
	rsa.ChildText("ds", "Exponent", "AQAB")
}

func (b *Builder) appendHeader(root *xmltree.Element, in DocumentInput, fullID, cufe string) {
	root.ChildText("cbc", "UBLVersionID", dian.UBLVersion)
	root.ChildText("cbc", "CustomizationID", dian.CustomizationID)
	root.ChildText("cbc", "ProfileExecutionID", in.ProfileExecutionID)
	root.ChildText("cbc", "ID", fullID)
	root.ChildText("cbc", "UUID", cufe).
		Attr("schemeID", dian.CufeSchemeID).
		Attr("schemeName", dian.CufeSchemeName)
	root.ChildText("cbc", "IssueDate", in.IssueDate.Format("2006-01-02"))
	// la hora lleva siempre el sufijo -05:00 (hora legal colombiana),
	// sin convertir: la caja opera en esa zona
	root.ChildText("cbc", "IssueTime", in.IssueDate.Format("15:04:05")+"-05:00")
	root.ChildText("cbc", "InvoiceTypeCode", dian.InvoiceTypeCode)
	root.ChildText("cbc", "DocumentCurrencyCode", in.Currency)
}

// appendParty emite el bloque de una parte. El emisor lleva dirección física;
// el adquiriente lleva contacto si hay correo o teléfono.
func (b *Builder) appendParty(root *xmltree.Element, wrapper string, p billing.PartyInfo) {
	party := root.Child("cac", wrapper).Child("cac", "Party")
	party.Child("cac", "PartyName").ChildText("cbc", "Name", p.LegalName)

	taxScheme := party.Child("cac", "PartyTaxScheme")
	taxScheme.ChildText("cbc", "RegistrationName", p.RegistrationName)
	taxScheme.ChildText("cbc", "CompanyID", p.DocumentNumber).
		Attr("schemeAgencyID", dian.SchemeAgencyDIAN).
		Attr("schemeID", p.DocumentType)
	scheme := taxScheme.Child("cac", "TaxScheme")
	scheme.ChildText("cbc", "ID", dian.TaxCodeIVA)
	scheme.ChildText("cbc", "Name", dian.TaxNameIVA)

	switch wrapper {
	case "AccountingSupplierParty":
		addr := party.Child("cac", "PhysicalLocation").Child("cac", "Address")
		if p.CityName != "" {
			addr.ChildText("cbc", "CityName", p.CityName)
		}
		if p.CountrySubentity != "" {
			addr.ChildText("cbc", "CountrySubentity", p.CountrySubentity)
		}
		if p.PostalZone != "" {
			addr.ChildText("cbc", "PostalZone", p.PostalZone)
		}
		country := p.CountryCode
		if country == "" {
			country = "CO"
		}
		addr.Child("cac", "Country").ChildText("cbc", "IdentificationCode", country)
	case "AccountingCustomerParty":
		if p.Email != "" || p.Telephone != "" {
			contact := party.Child("cac", "Contact")
			if p.Email != "" {
				contact.ChildText("cbc", "ElectronicMail", p.Email)
			}
			if p.Telephone != "" {
				contact.ChildText("cbc", "Telephone", p.Telephone)
			}
		}
	}
}

func (b *Builder) appendPaymentMeans(root *xmltree.Element, dueDate string) {
	means := root.Child("cac", "PaymentMeans")
	means.ChildText("cbc", "ID", "1")
	means.ChildText("cbc", "PaymentMeansCode", dian.PaymentMethodEfectivo)
	if dueDate != "" {
		means.ChildText("cbc", "PaymentDueDate", dueDate)
	}
}

func (b *Builder) appendLines(root *xmltree.Element, in DocumentInput) {
	for i, l := range in.Lines {
		line := root.Child("cac", "InvoiceLine")
		line.ChildText("cbc", "ID", strconv.Itoa(i+1))
		unit := l.UnitCode
		if unit == "" {
			unit = dian.UnitNIU
		}
		line.ChildText("cbc", "InvoicedQuantity", l.Quantity.String()).
			Attr("unitCode", unit)
		line.ChildText("cbc", "LineExtensionAmount", l.Amount().StringFixed(2)).
			Attr("currencyID", in.Currency)
		line.Child("cac", "Item").ChildText("cbc", "Description", l.Description)
		line.Child("cac", "Price").
			ChildText("cbc", "PriceAmount", l.UnitPrice.StringFixed(2)).
			Attr("currencyID", in.Currency)
	}
}

func (b *Builder) appendMonetaryTotal(root *xmltree.Element, currency string, t billing.MonetaryTotals) {
	total := root.Child("cac", "LegalMonetaryTotal")
	total.ChildText("cbc", "LineExtensionAmount", t.LineExtensionAmount.StringFixed(2)).
		Attr("currencyID", currency)
	total.ChildText("cbc", "TaxExclusiveAmount", t.TaxExclusiveAmount.StringFixed(2)).
		Attr("currencyID", currency)
	total.ChildText("cbc", "TaxInclusiveAmount", t.TaxInclusiveAmount.StringFixed(2)).
		Attr("currencyID", currency)
	total.ChildText("cbc", "PayableAmount", t.PayableAmount.StringFixed(2)).
		Attr("currencyID", currency)
}

func startsWithLetter(s string) bool {
	for _, r := range s {
		return unicode.IsLetter(r)
	}
	return false
}
