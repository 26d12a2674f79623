package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/money"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

var _ repository.VatReturnRepository = (*VatReturnRepo)(nil)

// VatReturnRepo implements VatReturnRepository on PostgreSQL. One row per
// (user, year, period type, period number), enforced by a unique index.
type VatReturnRepo struct {
	q Querier
}

// NewVatReturnRepository builds the adapter. Pass pool or tx (Querier).
func NewVatReturnRepository(q Querier) *VatReturnRepo {
	return &VatReturnRepo{q: q}
}

const vatReturnColumns = `
	id, user_id, year, period_type, period_number,
	output_vat_cents, input_vat_cents, net_payable_cents,
	status, submission_date, notes, created_at, updated_at`

func (r *VatReturnRepo) Create(ctx context.Context, vr *entity.VatReturn) error {
	const q = `
		INSERT INTO vat_returns (` + vatReturnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, q,
		vr.ID, vr.UserID, vr.Year, vr.PeriodType, vr.PeriodNumber,
		vr.OutputVat.Cents(), vr.InputVat.Cents(), vr.NetPayable.Cents(),
		vr.Status, vr.SubmissionDate, vr.Notes, vr.CreatedAt, vr.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vat_return: %w", err)
	}
	return nil
}

func (r *VatReturnRepo) GetByID(ctx context.Context, id string) (*entity.VatReturn, error) {
	const q = `SELECT ` + vatReturnColumns + ` FROM vat_returns WHERE id = $1`
	vr, err := scanVatReturn(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vat_return by id: %w", err)
	}
	return vr, nil
}

func (r *VatReturnRepo) GetByPeriod(ctx context.Context, userID string, year int, periodType string, periodNumber int) (*entity.VatReturn, error) {
	const q = `SELECT ` + vatReturnColumns + ` FROM vat_returns
		WHERE user_id = $1 AND year = $2 AND period_type = $3 AND period_number = $4`
	vr, err := scanVatReturn(r.q.QueryRow(ctx, q, userID, year, periodType, periodNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vat_return by period: %w", err)
	}
	return vr, nil
}

func (r *VatReturnRepo) ListByUserAndYear(ctx context.Context, userID string, year int) ([]*entity.VatReturn, error) {
	const q = `SELECT ` + vatReturnColumns + ` FROM vat_returns
		WHERE user_id = $1 AND year = $2
		ORDER BY period_type, period_number`
	rows, err := r.q.Query(ctx, q, userID, year)
	if err != nil {
		return nil, fmt.Errorf("list vat_returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.VatReturn
	for rows.Next() {
		vr, err := scanVatReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vat_return: %w", err)
		}
		list = append(list, vr)
	}
	return list, rows.Err()
}

func (r *VatReturnRepo) Update(ctx context.Context, vr *entity.VatReturn) error {
	const q = `
		UPDATE vat_returns
		SET output_vat_cents = $2, input_vat_cents = $3, net_payable_cents = $4,
		    status = $5, submission_date = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, q,
		vr.ID, vr.OutputVat.Cents(), vr.InputVat.Cents(), vr.NetPayable.Cents(),
		vr.Status, vr.SubmissionDate, vr.Notes, vr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vat_return: %w", err)
	}
	return nil
}

func scanVatReturn(row pgxScanner) (*entity.VatReturn, error) {
	var vr entity.VatReturn
	var outputCents, inputCents, payableCents int64
	err := row.Scan(
		&vr.ID, &vr.UserID, &vr.Year, &vr.PeriodType, &vr.PeriodNumber,
		&outputCents, &inputCents, &payableCents,
		&vr.Status, &vr.SubmissionDate, &vr.Notes, &vr.CreatedAt, &vr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	vr.OutputVat = money.FromCents(outputCents)
	vr.InputVat = money.FromCents(inputCents)
	vr.NetPayable = money.FromCents(payableCents)
	return &vr, nil
}
