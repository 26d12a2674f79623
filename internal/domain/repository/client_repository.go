package repository

import (
	"context"

	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
)

// ClientRepository is the persistence port for invoice recipients.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
