package vat

import (
	"context"
	"time"

	"github.com/dreistrom/dreistrom-api/internal/application/dto"
	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/money"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
	domainvat "github.com/dreistrom/dreistrom-api/internal/domain/vat"
)

// ThresholdUseCase answers the §19 UStG Kleinunternehmer question: how far
// along both statutory limits the year's self-employed net revenue is.
type ThresholdUseCase struct {
	invoiceRepo       repository.InvoiceRepository
	currentLimitEUR   int64
	projectedLimitEUR int64
	now               func() time.Time
}

func NewThresholdUseCase(invoiceRepo repository.InvoiceRepository, currentLimitEUR, projectedLimitEUR int64) *ThresholdUseCase {
	return &ThresholdUseCase{
		invoiceRepo:       invoiceRepo,
		currentLimitEUR:   currentLimitEUR,
		projectedLimitEUR: projectedLimitEUR,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate recomputes the threshold status for the given calendar year from
// live invoice data. Nothing is cached: revenue moves with every issued or
// cancelled invoice. Employment income is out of scope for §19, only the
// two self-employed streams count.
func (uc *ThresholdUseCase) Evaluate(ctx context.Context, userID string, year int) (*dto.ThresholdStatusResponse, error) {
	if year < 2000 || year > 2200 {
		return nil, domain.ErrInvalidInput
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	netCents, err := uc.invoiceRepo.SumNetSelfEmployedByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	revenue := money.FromCents(netCents)
	projected := domainvat.ProjectAnnual(revenue, year, uc.now())

	status := domainvat.EvaluateThreshold(
		revenue,
		money.FromCents(uc.currentLimitEUR*100),
		projected,
		money.FromCents(uc.projectedLimitEUR*100),
	)

	return &dto.ThresholdStatusResponse{
		Year:               year,
		CurrentRevenue:     status.CurrentRevenue,
		CurrentYearLimit:   status.CurrentYearLimit,
		CurrentRatio:       status.CurrentRatio,
		ProjectedRevenue:   status.ProjectedRevenue,
		ProjectedYearLimit: status.ProjectedYearLimit,
		ProjectedRatio:     status.ProjectedRatio,
		CurrentExceeded:    status.CurrentExceeded,
		ProjectedExceeded:  status.ProjectedExceeded,
	}, nil
}
