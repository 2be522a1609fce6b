// Package recognition orquesta el flujo de caja por reconocimiento facial:
// codificar la imagen, resolver el cliente en la galería, simular la compra
// y emitir su factura.
package recognition

import (
	"context"
	"time"

	"github.com/easybill-co/caja-api/internal/application/dto"
	"github.com/easybill-co/caja-api/internal/domain/entity"
	domainrec "github.com/easybill-co/caja-api/internal/domain/recognition"
	"github.com/easybill-co/caja-api/internal/domain/repository"
	"github.com/easybill-co/caja-api/pkg/logger"
)

// Encoder puerto hacia el servicio de codificación facial: convierte una
// imagen en el vector de características que se compara contra la galería.
type Encoder interface {
	Encode(ctx context.Context, image []byte) (domainrec.Encoding, error)
}

// InvoiceIssuer puerto hacia la emisión de la factura de la compra.
type InvoiceIssuer interface {
	IssueForPurchase(ctx context.Context, client *entity.Client, purchase *entity.Purchase) (*entity.Invoice, bool, error)
}

// UseCase caso de uso de reconocimiento y facturación en caja.
type UseCase struct {
	encoder    Encoder
	gallery    domainrec.Gallery
	cache      *domainrec.LastMatchCache
	clientRepo repository.ClientRepository
	purchases  *PurchaseGenerator
	issuer     InvoiceIssuer
	log        *logger.Logger
	now        func() time.Time
}

func NewUseCase(
	encoder Encoder,
	gallery domainrec.Gallery,
	cache *domainrec.LastMatchCache,
	clientRepo repository.ClientRepository,
	purchases *PurchaseGenerator,
	issuer InvoiceIssuer,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		encoder:    encoder,
		gallery:    gallery,
		cache:      cache,
		clientRepo: clientRepo,
		purchases:  purchases,
		issuer:     issuer,
		log:        log,
		now:        time.Now,
	}
}

// Recognize identifica al cliente de la imagen, registra el reconocimiento en
// la caché, simula su compra y emite la factura.
func (uc *UseCase) Recognize(ctx context.Context, image []byte) (*dto.RecognizeResponse, error) {
	enc, err := uc.encoder.Encode(ctx, image)
	if err != nil {
		return nil, err
	}

	match, err := uc.gallery.Closest(ctx, enc)
	if err != nil {
		return nil, err
	}

	client, err := uc.clientRepo.GetByDocumentNumber(ctx, match.DocumentNumber)
	if err != nil {
		return nil, err
	}

	uc.cache.Store(match, uc.now())
	uc.log.Info().
		Str("document_number", match.DocumentNumber).
		Float64("distance", match.Distance).
		Msg("cliente reconocido")

	purchase := uc.purchases.Generate()
	invoice, emailSent, err := uc.issuer.IssueForPurchase(ctx, client, purchase)
	if err != nil {
		return nil, err
	}

	invResp := dto.ToInvoiceResponse(invoice)
	invResp.EmailSent = emailSent
	return &dto.RecognizeResponse{
		Client:     dto.ToClientResponse(client),
		Distance:   match.Distance,
		Confidence: match.Confidence,
		Purchase:   dto.ToPurchaseResponse(purchase),
		Invoice:    invResp,
	}, nil
}

// LastRecognized devuelve el último cliente reconocido por la caja, o false
// si aún no hay ninguno.
func (uc *UseCase) LastRecognized() (*dto.LastRecognizedResponse, bool) {
	last, ok := uc.cache.Load()
	if !ok {
		return nil, false
	}
	return &dto.LastRecognizedResponse{
		DocumentNumber: last.Match.DocumentNumber,
		RecognizedAt:   last.RecognizedAt.Format(time.RFC3339),
		Distance:       last.Match.Distance,
		Confidence:     last.Match.Confidence,
	}, true
}

// ClearLast vacía la caché del último reconocimiento.
func (uc *UseCase) ClearLast() {
	uc.cache.Clear()
}
