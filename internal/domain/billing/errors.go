package billing

import "fmt"

// FieldError error de validación asociado a un campo concreto de la entrada.
// Permite al handler HTTP armar una respuesta que nombre el campo rechazado.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
