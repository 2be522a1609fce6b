package dian

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucarion/c14n"

	"github.com/easybill-co/caja-api/internal/domain/billing"
	"github.com/easybill-co/caja-api/internal/domain/entity"
)

func inputBase() DocumentInput {
	return DocumentInput{
		InvoiceID:          "PN1001",
		ProfileExecutionID: "2",
		Currency:           "COP",
		IssueDate:          time.Date(2026, 3, 15, 9, 41, 7, 0, time.FixedZone("COT", -5*3600)),
		PaymentDueDate:     "2026-03-15",
		TaxRate:            decimal.RequireFromString("0.19"),
		Supplier: billing.PartyInfo{
			RegistrationName: "Panadería La Espiga SAS",
			LegalName:        "Panadería La Espiga SAS",
			DocumentType:     "31",
			DocumentNumber:   "900123456",
			CityName:         "Bogotá",
			CountrySubentity: "Cundinamarca",
			PostalZone:       "110111",
			CountryCode:      "CO",
		},
		Customer: billing.PartyInfo{
			RegistrationName: "María Pérez",
			LegalName:        "María Pérez",
			DocumentType:     "13",
			DocumentNumber:   "1020304050",
			Email:            "maria@example.com",
			Telephone:        "3001234567",
		},
		Lines: []billing.LineItem{
			{Description: "Torta de tres leches", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(150000)},
		},
		Authorization: entity.AuthorizationWindow{
			AuthorizationNumber: "18760000001",
			Prefix:              "PN",
			RangeFrom:           1,
			RangeTo:             999999,
			StartDate:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:             time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

func parse(t *testing.T, doc *Document) *etree.Document {
	t.Helper()
	tree := etree.NewDocument()
	require.NoError(t, tree.ReadFromString(doc.XML))
	return tree
}

// ─────────────────────────────────────────────
// Estructura del documento
// ─────────────────────────────────────────────

func TestBuild_CabeceraUBL(t *testing.T) {
	doc, err := NewBuilder().Build(inputBase())
	require.NoError(t, err)

	tree := parse(t, doc)
	root := tree.Root()
	require.Equal(t, "Invoice", root.Tag)

	assert.Equal(t, "UBL 2.1", tree.FindElement("//cbc:UBLVersionID").Text())
	assert.Equal(t, "DIAN 2.1: Factura Electrónica de Venta", tree.FindElement("//cbc:CustomizationID").Text())
	assert.Equal(t, "2", tree.FindElement("//cbc:ProfileExecutionID").Text())
	assert.Equal(t, "PN1001", tree.FindElement("//cbc:ID").Text())
	assert.Equal(t, "2026-03-15", tree.FindElement("//cbc:IssueDate").Text())
	assert.Equal(t, "09:41:07-05:00", tree.FindElement("//cbc:IssueTime").Text())
	assert.Equal(t, "01", tree.FindElement("//cbc:InvoiceTypeCode").Text())
	assert.Equal(t, "COP", tree.FindElement("//cbc:DocumentCurrencyCode").Text())

	uuidElem := tree.FindElement("//cbc:UUID")
	require.NotNil(t, uuidElem)
	assert.Equal(t, doc.CUFE, uuidElem.Text())
	assert.Equal(t, "2", uuidElem.SelectAttrValue("schemeID", ""))
	assert.Equal(t, "CUFE-SHA384", uuidElem.SelectAttrValue("schemeName", ""))
}

func TestBuild_ExtensionesDian(t *testing.T) {
	doc, err := NewBuilder().Build(inputBase())
	require.NoError(t, err)

	tree := parse(t, doc)
	ctrl := tree.FindElement("//sts:DianExtensions/sts:InvoiceControl")
	require.NotNil(t, ctrl)
	assert.Equal(t, "2026-01-01", ctrl.FindElement("sts:AuthorizationPeriod/cbc:StartDate").Text())
	assert.Equal(t, "2027-12-31", ctrl.FindElement("sts:AuthorizationPeriod/cbc:EndDate").Text())
	assert.Equal(t, "PN", ctrl.FindElement("sts:AuthorizedInvoices/sts:Prefix").Text())
	assert.Equal(t, "1", ctrl.FindElement("sts:AuthorizedInvoices/sts:From").Text())
	assert.Equal(t, "999999", ctrl.FindElement("sts:AuthorizedInvoices/sts:To").Text())

	assert.Equal(t, "18760000001", tree.FindElement("//sts:InvoiceAuthorization").Text())
	assert.Equal(t, doc.VerificationURL, tree.FindElement("//sts:QRCode").Text())
	assert.Equal(t,
		"https://catalogo-vpfe.dian.gov.co/document/searchqr?documentKey=PN1001-2026",
		doc.VerificationURL,
	)
}

func TestBuild_FirmaDeRelleno(t *testing.T) {
	doc, err := NewBuilder().Build(inputBase())
	require.NoError(t, err)

	tree := parse(t, doc)
	assert.Equal(t, "FAKE_SIGNATURE_SAMPLE_BASE64", tree.FindElement("//ds:SignatureValue").Text())
	assert.Equal(t,
		"http://www.w3.org/TR/2001/REC-xml-c14n-20010315",
		tree.FindElement("//ds:CanonicalizationMethod").SelectAttrValue("Algorithm", ""),
	)
	assert.Equal(t,
		"http://www.w3.org/2001/04/xmldsig-more#rsa-sha256",
		tree.FindElement("//ds:SignatureMethod").SelectAttrValue("Algorithm", ""),
	)
	assert.Equal(t, "FAKE", tree.FindElement("//ds:RSAKeyValue/ds:Modulus").Text())
	assert.Equal(t, "AQAB", tree.FindElement("//ds:RSAKeyValue/ds:Exponent").Text())
}

func TestBuild_PartesYLineas(t *testing.T) {
	in := inputBase()
	in.Lines = append(in.Lines, billing.LineItem{
		Description: "Café americano",
		Quantity:    decimal.NewFromInt(2),
		UnitPrice:   decimal.NewFromInt(3000),
	})

	doc, err := NewBuilder().Build(in)
	require.NoError(t, err)

	tree := parse(t, doc)
	supplier := tree.FindElement("//cac:AccountingSupplierParty/cac:Party")
	require.NotNil(t, supplier)
	companyID := supplier.FindElement("cac:PartyTaxScheme/cbc:CompanyID")
	assert.Equal(t, "900123456", companyID.Text())
	assert.Equal(t, "195", companyID.SelectAttrValue("schemeAgencyID", ""))
	assert.Equal(t, "31", companyID.SelectAttrValue("schemeID", ""))
	assert.Equal(t, "Bogotá", supplier.FindElement("cac:PhysicalLocation/cac:Address/cbc:CityName").Text())

	customer := tree.FindElement("//cac:AccountingCustomerParty/cac:Party")
	require.NotNil(t, customer)
	assert.Equal(t, "maria@example.com", customer.FindElement("cac:Contact/cbc:ElectronicMail").Text())

	lines := tree.FindElements("//cac:InvoiceLine")
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].FindElement("cbc:ID").Text())
	assert.Equal(t, "150000.00", lines[0].FindElement("cbc:LineExtensionAmount").Text())
	assert.Equal(t, "NIU", lines[1].FindElement("cbc:InvoicedQuantity").SelectAttrValue("unitCode", ""))
	assert.Equal(t, "6000.00", lines[1].FindElement("cbc:LineExtensionAmount").Text())
	assert.Equal(t, "3000.00", lines[1].FindElement("cac:Price/cbc:PriceAmount").Text())

	total := tree.FindElement("//cac:LegalMonetaryTotal")
	assert.Equal(t, "156000.00", total.FindElement("cbc:LineExtensionAmount").Text())
	assert.Equal(t, "185640.00", total.FindElement("cbc:TaxInclusiveAmount").Text())
	assert.Equal(t, "185640.00", total.FindElement("cbc:PayableAmount").Text())
	assert.Equal(t, "COP", total.FindElement("cbc:PayableAmount").SelectAttrValue("currencyID", ""))
}

// ─────────────────────────────────────────────
// Numeración
// ─────────────────────────────────────────────

func TestBuild_IDSoloDigitosUsaPrefijoPorDefecto(t *testing.T) {
	in := inputBase()
	in.InvoiceID = "1001"

	doc, err := NewBuilder().Build(in)

	require.NoError(t, err)
	assert.Equal(t, "PN1001", doc.InvoiceID)
	assert.Equal(t, "PN", doc.Prefix)
	assert.Equal(t, "1001", doc.NumericID)
}

func TestBuild_IDSinDigitos(t *testing.T) {
	in := inputBase()
	in.InvoiceID = "AB"

	doc, err := NewBuilder().Build(in)

	require.NoError(t, err)
	assert.Equal(t, "AB", doc.InvoiceID)
	assert.Equal(t, "AB", doc.Prefix)
	assert.Equal(t, "AB", doc.NumericID)
}

func TestBuild_SinIDSintetizaDesdeLaHora(t *testing.T) {
	in := inputBase()
	in.InvoiceID = ""

	doc, err := NewBuilder().Build(in)

	require.NoError(t, err)
	assert.Equal(t, "PN094107", doc.InvoiceID)
	assert.Equal(t, "094107", doc.NumericID)
}

// ─────────────────────────────────────────────
// Determinismo y errores
// ─────────────────────────────────────────────

func canonical(t *testing.T, raw string) string {
	t.Helper()
	out, err := c14n.Canonicalize(xml.NewDecoder(strings.NewReader(raw)))
	require.NoError(t, err)
	return string(out)
}

func TestBuild_DeterministaSalvoElCUFE(t *testing.T) {
	in := inputBase()

	doc1, err := NewBuilder().Build(in)
	require.NoError(t, err)
	doc2, err := NewBuilder().Build(in)
	require.NoError(t, err)

	assert.NotEqual(t, doc1.CUFE, doc2.CUFE)

	// Sustituido el CUFE por un token fijo, los documentos canónicos
	// deben ser byte a byte idénticos.
	fixed1 := strings.ReplaceAll(doc1.XML, doc1.CUFE, "0000")
	fixed2 := strings.ReplaceAll(doc2.XML, doc2.CUFE, "0000")
	assert.Equal(t, canonical(t, fixed1), canonical(t, fixed2))
}

func TestBuild_DeclaracionYNamespacesEnLaRaiz(t *testing.T) {
	doc, err := NewBuilder().Build(inputBase())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc.XML, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Equal(t, 1, strings.Count(doc.XML, `xmlns:sts="dian:gov:co:facturaelectronica:Structures-2-1"`))
	assert.Equal(t, 1, strings.Count(doc.XML, `xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"`))
}

func TestBuild_CantidadNegativaFallaSinEmitirXML(t *testing.T) {
	in := inputBase()
	in.Lines[0].Quantity = decimal.NewFromInt(-1)

	doc, err := NewBuilder().Build(in)

	require.Error(t, err)
	assert.Nil(t, doc)
	var fe *billing.FieldError
	assert.ErrorAs(t, err, &fe)
}
