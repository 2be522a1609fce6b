// Package recognition define el dominio de reconocimiento de clientes:
// codificaciones faciales, la galería de referencia y la caché del último
// cliente reconocido.
package recognition

import "context"

// Encoding vector de características de un rostro. La dimensión la fija el
// codificador externo (128 en el modelo usado por la caja).
type Encoding []float64

// Match resultado de comparar una codificación contra la galería.
type Match struct {
	DocumentNumber string
	Distance       float64
	Confidence     float64
}

// Gallery galería de codificaciones de referencia, indexada por número de
// documento del cliente. La implementación decide el origen (archivo JSON,
// base de datos) y el umbral de tolerancia.
type Gallery interface {
	// Closest devuelve el cliente más cercano a la codificación dada.
	// Si ningún registrado queda dentro de la tolerancia retorna
	// domain.ErrNoFaceMatch.
	Closest(ctx context.Context, enc Encoding) (Match, error)
}
