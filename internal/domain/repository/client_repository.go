package repository

import (
	"context"

	"github.com/easybill-co/caja-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para clientes (DIP).
// La implementación vive en infrastructure.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error

	// GetByDocumentNumber busca por número de documento, la llave natural
	// con la que la caja identifica a un cliente reconocido.
	GetByDocumentNumber(ctx context.Context, documentNumber string) (*entity.Client, error)

	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
}
