package repository

import (
	"context"

	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
)

// VatReturnRepository is the persistence port for USt-VA periods.
type VatReturnRepository interface {
	Create(ctx context.Context, vr *entity.VatReturn) error
	GetByID(ctx context.Context, id string) (*entity.VatReturn, error)
	GetByPeriod(ctx context.Context, userID string, year int, periodType string, periodNumber int) (*entity.VatReturn, error)
	ListByUserAndYear(ctx context.Context, userID string, year int) ([]*entity.VatReturn, error)
	Update(ctx context.Context, vr *entity.VatReturn) error
}
