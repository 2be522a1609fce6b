package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/easybill-co/caja-api/internal/domain"
	"github.com/easybill-co/caja-api/internal/domain/entity"
	"github.com/easybill-co/caja-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, registration_name, name, document_type, document_number,
	email, telephone, address, city_name, country_subentity, postal_zone,
	country_code, created_at, updated_at`

// Create persiste un nuevo cliente. document_number es único.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.RegistrationName, c.Name, c.DocumentType, c.DocumentNumber,
		c.Email, c.Telephone, c.Address, c.CityName, c.CountrySubentity, c.PostalZone,
		c.CountryCode, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByDocumentNumber obtiene un cliente por su número de documento.
func (r *ClientRepo) GetByDocumentNumber(ctx context.Context, documentNumber string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE document_number = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, documentNumber), "get client by document_number")
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get client")
}

// Update actualiza los datos de contacto y dirección del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET registration_name = $2, name = $3, email = $4,
			telephone = $5, address = $6, city_name = $7, country_subentity = $8,
			postal_zone = $9, country_code = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.RegistrationName, c.Name, c.Email,
		c.Telephone, c.Address, c.CityName, c.CountrySubentity,
		c.PostalZone, c.CountryCode, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista clientes con paginación, ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *ClientRepo) scanOne(row pgx.Row, op string) (*entity.Client, error) {
	var c entity.Client
	if err := scanClient(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func scanClient(row pgx.Row, c *entity.Client) error {
	return row.Scan(
		&c.ID, &c.RegistrationName, &c.Name, &c.DocumentType, &c.DocumentNumber,
		&c.Email, &c.Telephone, &c.Address, &c.CityName, &c.CountrySubentity, &c.PostalZone,
		&c.CountryCode, &c.CreatedAt, &c.UpdatedAt,
	)
}
