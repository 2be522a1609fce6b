package repository

import (
	"context"

	"github.com/easybill-co/caja-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios de la caja.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
