package dto

import (
	"github.com/shopspring/decimal"

	"github.com/easybill-co/caja-api/internal/domain/entity"
)

// PurchaseProductResponse producto dentro de la compra simulada.
type PurchaseProductResponse struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// PurchaseResponse compra simulada asociada al reconocimiento.
type PurchaseResponse struct {
	PurchaseID    string                    `json:"purchase_id"`
	Timestamp     string                    `json:"timestamp"`
	Products      []PurchaseProductResponse `json:"products"`
	Total         decimal.Decimal           `json:"total"`
	PaymentMethod string                    `json:"payment_method"`
}

// ToPurchaseResponse convierte la compra al DTO de respuesta.
func ToPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	products := make([]PurchaseProductResponse, 0, len(p.Products))
	for _, pr := range p.Products {
		products = append(products, PurchaseProductResponse{Name: pr.Name, Price: pr.Price})
	}
	return PurchaseResponse{
		PurchaseID:    p.PurchaseID,
		Timestamp:     p.Timestamp.Format("2006-01-02T15:04:05-07:00"),
		Products:      products,
		Total:         p.Total,
		PaymentMethod: p.PaymentMethod,
	}
}

// RecognizeResponse respuesta de POST /api/recognize: el cliente identificado
// con su compra simulada y la factura emitida.
type RecognizeResponse struct {
	Client     ClientResponse   `json:"client"`
	Distance   float64          `json:"distance"`
	Confidence float64          `json:"confidence"`
	Purchase   PurchaseResponse `json:"purchase"`
	Invoice    InvoiceResponse  `json:"invoice"`
}

// LastRecognizedResponse respuesta de GET /api/recognized/last.
type LastRecognizedResponse struct {
	DocumentNumber string  `json:"document_number"`
	RecognizedAt   string  `json:"recognized_at"`
	Distance       float64 `json:"distance"`
	Confidence     float64 `json:"confidence"`
}
