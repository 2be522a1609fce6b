// Package dian genera los identificadores de verificación del documento:
// el CUFE (aquí un token de relleno) y la URL de consulta pública.
package dian

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	pkgdian "github.com/easybill-co/caja-api/pkg/dian"
)

// MintCUFE genera un token opaco de 32 caracteres hexadecimales derivado de
// un UUID aleatorio. NO es el digest SHA-384 que exige la resolución DIAN:
// es un valor de relleno globalmente único. Un integrador que apunte a
// habilitación real debe reemplazar esta única función por el cálculo del
// digest sobre la concatenación de campos mandada por la DIAN más la clave
// técnica; el resto del ensamblado del documento no cambia.
func MintCUFE() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// VerificationURL arma la URL de consulta del documento en el catálogo de la
// DIAN. Formateo puro, sin llamadas de red.
func VerificationURL(prefix, numericID string, issueYear int) string {
	return fmt.Sprintf("%s%s%s-%d", pkgdian.VerificationBaseURL, prefix, numericID, issueYear)
}
