package entity

import (
	"fmt"
	"time"
)

// AuthorizationWindow representa la resolución de numeración bajo la cual se
// emiten las facturas: prefijo, rango autorizado y ventana de vigencia.
// En esta caja la resolución es un placeholder fijo tomado de configuración;
// no se consulta el servicio de numeración de la DIAN.
type AuthorizationWindow struct {
	AuthorizationNumber string
	Prefix              string
	RangeFrom           int64
	RangeTo             int64
	StartDate           time.Time
	EndDate             time.Time
}

// Validate verifica los invariantes básicos de la resolución.
func (a AuthorizationWindow) Validate() error {
	if a.Prefix == "" {
		return fmt.Errorf("resolución: prefijo requerido")
	}
	if a.AuthorizationNumber == "" {
		return fmt.Errorf("resolución: número de resolución requerido")
	}
	if a.RangeFrom > a.RangeTo {
		return fmt.Errorf("resolución: rango inválido (%d > %d)", a.RangeFrom, a.RangeTo)
	}
	if a.EndDate.Before(a.StartDate) {
		return fmt.Errorf("resolución: vigencia inválida (%s > %s)",
			a.StartDate.Format("2006-01-02"), a.EndDate.Format("2006-01-02"))
	}
	return nil
}
