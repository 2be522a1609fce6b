package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/easybill-co/caja-api/internal/domain"
	domainrec "github.com/easybill-co/caja-api/internal/domain/recognition"
	appreco "github.com/easybill-co/caja-api/internal/application/recognition"
)

// HTTPEncoder cliente del servicio codificador de rostros: recibe la imagen
// por multipart y devuelve el vector de características. El modelo de
// reconocimiento corre en ese servicio, no en esta API.
type HTTPEncoder struct {
	baseURL    string
	httpClient *http.Client
}

var _ appreco.Encoder = (*HTTPEncoder)(nil)

// NewHTTPEncoder construye el cliente. baseURL sin slash final, ej.
// http://localhost:5001.
func NewHTTPEncoder(baseURL string) *HTTPEncoder {
	return &HTTPEncoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 25 * time.Second},
	}
}

type encodeResponse struct {
	Encoding []float64 `json:"encoding"`
	Error    string    `json:"error,omitempty"`
}

// Encode envía la imagen al codificador y devuelve su codificación.
// Un 404 del servicio significa que no se detectó ningún rostro.
func (e *HTTPEncoder) Encode(ctx context.Context, image []byte) (domainrec.Encoding, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "capture.jpg")
	if err != nil {
		return nil, fmt.Errorf("encoder: armar multipart: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("encoder: escribir imagen: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("encoder: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/encode", &body)
	if err != nil {
		return nil, fmt.Errorf("encoder: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("encoder: llamar servicio: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("encoder: leer respuesta: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNoFaceMatch
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("encoder: status %d: %s", resp.StatusCode, raw)
	}

	var out encodeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encoder: parsear respuesta: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("encoder: %s", out.Error)
	}
	if len(out.Encoding) == 0 {
		return nil, domain.ErrNoFaceMatch
	}
	return domainrec.Encoding(out.Encoding), nil
}
