package entity

import "time"

// Client representa un cliente recurrente de la panadería.
// DocumentNumber es la clave natural: el reconocimiento facial resuelve a un
// número de documento y las facturas quedan ligadas a él.
type Client struct {
	ID               string
	RegistrationName string // Razón social / nombre registrado ante la DIAN
	Name             string
	DocumentType     string // schemeID DIAN (13 = CC, 31 = NIT)
	DocumentNumber   string
	Email            string
	Telephone        string
	Address          string
	CityName         string
	CountrySubentity string // código de departamento
	PostalZone       string
	CountryCode      string // default "CO"
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
