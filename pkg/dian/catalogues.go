// Package dian contiene catálogos y validaciones alineados al Anexo Técnico
// de Factura Electrónica de Venta DIAN (Colombia) v1.9.
package dian

// =============================================================================
// Identificación del perfil DIAN en la cabecera UBL
// =============================================================================

const (
	UBLVersion      = "UBL 2.1"
	CustomizationID = "DIAN 2.1: Factura Electrónica de Venta"
	InvoiceTypeCode = "01" // Factura de venta nacional

	// ProfileExecutionID (ambiente de ejecución)
	ProfileProduccion = "1"
	ProfilePruebas    = "2"

	// schemeAgencyID de la DIAN para cbc:CompanyID
	SchemeAgencyDIAN = "195"

	// Atributos del cbc:UUID que transporta el CUFE
	CufeSchemeID   = "2"
	CufeSchemeName = "CUFE-SHA384"
)

// URL pública del catálogo DIAN para verificación de documentos (sandbox).
const VerificationBaseURL = "https://catalogo-vpfe.dian.gov.co/document/searchqr?documentKey="

// =============================================================================
// Tabla 6 - Unidades de Medida (Anexo 1.9 - 13.3.6 Unidades de Cantidad @unitCode)
// =============================================================================

const (
	UnitNIU      = "NIU" // Número de unidades (ítem suelto)
	UnitUnit     = "94"  // Unidad
	UnitKilogram = "KGM" // Kilogramo
	UnitGram     = "GRM" // Gramo
	UnitLitre    = "LTR" // Litro
	UnitDozen    = "DZN" // Docena
	UnitHour     = "HUR" // Hora
)

// ValidMeasurementUnitCodes códigos de unidad de medida válidos (uso común en panadería).
var ValidMeasurementUnitCodes = map[string]bool{
	UnitNIU: true, UnitUnit: true, UnitKilogram: true, UnitGram: true,
	UnitLitre: true, UnitDozen: true, UnitHour: true,
}

// =============================================================================
// Tabla 13 - Medios de Pago (Anexo 1.9 - 13.3.4.2) - códigos de uso frecuente
// =============================================================================

const (
	PaymentMethodEfectivo       = "10" // Efectivo
	PaymentMethodTransferencia  = "47" // Transferencia Débito Bancaria
	PaymentMethodTarjetaCredito = "48" // Tarjeta Crédito
	PaymentMethodTarjetaDebito  = "49" // Tarjeta Débito
)

// =============================================================================
// Tabla 11 - Tipos de Impuesto (Anexo 1.9 - 13.2.2)
// =============================================================================

const (
	TaxCodeIVA = "01" // IVA
	TaxNameIVA = "IVA"
)

// =============================================================================
// Tabla 3 - Tipos de identificación (Anexo 1.9 - 13.2.1)
// =============================================================================

const (
	IdentificationTypeNIT = "31" // NIT - requiere dígito de verificación
	IdentificationTypeCC  = "13" // Cédula de ciudadanía
	IdentificationTypeCE  = "22" // Cédula de extranjería
	IdentificationTypePEP = "47" // Permiso especial de permanencia
)

// ValidIdentificationTypeCodes tipos de documento aceptados para emisor y cliente.
var ValidIdentificationTypeCodes = map[string]bool{
	IdentificationTypeNIT: true,
	IdentificationTypeCC:  true,
	IdentificationTypeCE:  true,
	IdentificationTypePEP: true,
}
