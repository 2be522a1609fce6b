// Package recognition implementa los adaptadores del reconocimiento facial:
// la galería en memoria cargada desde archivo y el cliente HTTP del servicio
// codificador.
package recognition

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/easybill-co/caja-api/internal/domain"
	domainrec "github.com/easybill-co/caja-api/internal/domain/recognition"
)

// galleryPerson entrada del archivo de galería: un cliente con una o más
// codificaciones de referencia ya calculadas.
type galleryPerson struct {
	DocumentNumber string      `json:"document_number"`
	Name           string      `json:"name"`
	Encodings      [][]float64 `json:"encodings"`
}

type galleryFile struct {
	People []galleryPerson `json:"people"`
}

// MemoryGallery galería en memoria. Se carga una vez al arranque; la búsqueda
// es lineal sobre todas las codificaciones (la galería de una panadería son
// decenas de clientes, no millones).
type MemoryGallery struct {
	people    []galleryPerson
	tolerance float64
}

var _ domainrec.Gallery = (*MemoryGallery)(nil)

// LoadGallery lee el archivo JSON de la galería y valida su contenido.
func LoadGallery(path string, tolerance float64) (*MemoryGallery, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer galería %s: %w", path, err)
	}
	var f galleryFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsear galería %s: %w", path, err)
	}
	return newMemoryGallery(f.People, tolerance)
}

// newMemoryGallery arma la galería desde entradas ya cargadas.
func newMemoryGallery(people []galleryPerson, tolerance float64) (*MemoryGallery, error) {
	if tolerance <= 0 {
		tolerance = 0.6
	}
	for _, p := range people {
		if p.DocumentNumber == "" {
			return nil, fmt.Errorf("galería: entrada sin número de documento (%q)", p.Name)
		}
		if len(p.Encodings) == 0 {
			return nil, fmt.Errorf("galería: %s sin codificaciones", p.DocumentNumber)
		}
	}
	return &MemoryGallery{people: people, tolerance: tolerance}, nil
}

// Closest devuelve el cliente con la menor distancia euclidiana a la
// codificación dada. Si la mejor distancia supera la tolerancia retorna
// domain.ErrNoFaceMatch.
func (g *MemoryGallery) Closest(_ context.Context, enc domainrec.Encoding) (domainrec.Match, error) {
	best := domainrec.Match{Distance: math.Inf(1)}
	for _, p := range g.people {
		for _, ref := range p.Encodings {
			d, err := euclidean(ref, enc)
			if err != nil {
				return domainrec.Match{}, err
			}
			if d < best.Distance {
				best = domainrec.Match{DocumentNumber: p.DocumentNumber, Distance: d}
			}
		}
	}
	if best.DocumentNumber == "" || best.Distance > g.tolerance {
		return domainrec.Match{}, domain.ErrNoFaceMatch
	}
	best.Confidence = 1 - best.Distance
	return best, nil
}

// Size cantidad de personas registradas en la galería.
func (g *MemoryGallery) Size() int {
	return len(g.people)
}

func euclidean(a []float64, b domainrec.Encoding) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("galería: dimensiones incompatibles (%d vs %d)", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
