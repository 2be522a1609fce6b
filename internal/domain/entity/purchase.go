package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseProduct un producto dentro de una compra simulada.
type PurchaseProduct struct {
	Name  string
	Price decimal.Decimal
}

// Purchase compra simulada que la caja fabrica tras reconocer a un cliente.
// Sirve como base para emitir la factura electrónica de prueba.
type Purchase struct {
	PurchaseID    string // PUR-######
	Timestamp     time.Time
	Products      []PurchaseProduct
	Total         decimal.Decimal
	PaymentMethod string // Efectivo, Tarjeta, Transferencia
}
