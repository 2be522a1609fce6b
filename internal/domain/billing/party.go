package billing

import (
	"errors"

	"github.com/easybill-co/caja-api/pkg/dian"
)

// PartyInfo datos de una parte (emisor o adquiriente) tal como los exige
// el documento UBL. Los cuatro primeros campos son obligatorios.
type PartyInfo struct {
	RegistrationName string
	LegalName        string
	DocumentType     string // código DIAN: 31 NIT, 13 cédula, etc.
	DocumentNumber   string
	Email            string
	Telephone        string
	Address          string
	CityName         string
	CountrySubentity string
	PostalZone       string
	CountryCode      string
}

// Validate verifica los campos obligatorios de la parte. Devuelve todos los
// errores encontrados (errors.Join) para que el llamador los reporte juntos.
func (p PartyInfo) Validate(role string) error {
	var errs []error
	if p.RegistrationName == "" {
		errs = append(errs, &FieldError{Field: role + ".registrationName", Reason: "es obligatorio"})
	}
	if p.LegalName == "" {
		errs = append(errs, &FieldError{Field: role + ".legalName", Reason: "es obligatorio"})
	}
	if p.DocumentType == "" {
		errs = append(errs, &FieldError{Field: role + ".documentType", Reason: "es obligatorio"})
	} else if !dian.ValidIdentificationTypeCodes[p.DocumentType] {
		errs = append(errs, &FieldError{Field: role + ".documentType", Reason: "código de identificación desconocido"})
	}
	if p.DocumentNumber == "" {
		errs = append(errs, &FieldError{Field: role + ".documentNumber", Reason: "es obligatorio"})
	} else if p.DocumentType == dian.IdentificationTypeNIT && len(p.DocumentNumber) >= 10 {
		// NIT con dígito de verificación incluido: validarlo
		if err := dian.ValidateNITVerificationDigit(p.DocumentNumber); err != nil {
			errs = append(errs, &FieldError{Field: role + ".documentNumber", Reason: err.Error()})
		}
	}
	return errors.Join(errs...)
}
