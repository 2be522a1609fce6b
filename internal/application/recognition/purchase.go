package recognition

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/easybill-co/caja-api/internal/domain/entity"
)

// catálogo fijo de la vitrina para la compra simulada
var mockProducts = []entity.PurchaseProduct{
	{Name: "Pan de bono", Price: decimal.NewFromInt(2000)},
	{Name: "Croissant", Price: decimal.NewFromInt(3500)},
	{Name: "Galleta de avena", Price: decimal.NewFromInt(2500)},
	{Name: "Café americano", Price: decimal.NewFromInt(3000)},
	{Name: "Chocolate caliente", Price: decimal.NewFromInt(3500)},
}

var mockPaymentMethods = []string{"Efectivo", "Tarjeta", "Transferencia"}

// PurchaseGenerator genera compras simuladas para el flujo de demostración de
// la caja: entre 1 y 3 productos distintos de la vitrina, medio de pago al
// azar y un id PUR-<6 dígitos>.
type PurchaseGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewPurchaseGenerator() *PurchaseGenerator {
	return &PurchaseGenerator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// Generate arma una compra simulada.
func (g *PurchaseGenerator) Generate() *entity.Purchase {
	g.mu.Lock()
	defer g.mu.Unlock()

	count := 1 + g.rng.Intn(3)
	perm := g.rng.Perm(len(mockProducts))
	products := make([]entity.PurchaseProduct, 0, count)
	total := decimal.Zero
	for _, idx := range perm[:count] {
		products = append(products, mockProducts[idx])
		total = total.Add(mockProducts[idx].Price)
	}

	return &entity.Purchase{
		PurchaseID:    fmt.Sprintf("PUR-%06d", 100000+g.rng.Intn(900000)),
		Timestamp:     g.now(),
		Products:      products,
		Total:         total,
		PaymentMethod: mockPaymentMethods[g.rng.Intn(len(mockPaymentMethods))],
	}
}
