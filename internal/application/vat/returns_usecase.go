package vat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dreistrom/dreistrom-api/internal/application/dto"
	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
	domainvat "github.com/dreistrom/dreistrom-api/internal/domain/vat"
)

// ReturnsUseCase manages USt-VA periods: generating the figures from live
// data, regenerating drafts, submitting and listing.
type ReturnsUseCase struct {
	returnRepo repository.VatReturnRepository
	summary    *SummaryUseCase
}

func NewReturnsUseCase(returnRepo repository.VatReturnRepository, summary *SummaryUseCase) *ReturnsUseCase {
	return &ReturnsUseCase{returnRepo: returnRepo, summary: summary}
}

// Generate computes a period's figures and upserts the VatReturn. An
// existing DRAFT is regenerated in place; a SUBMITTED return is immutable
// and generation fails with a state conflict.
func (uc *ReturnsUseCase) Generate(ctx context.Context, userID string, in dto.GenerateVatReturnRequest) (*dto.VatReturnResponse, error) {
	if err := domainvat.ValidatePeriod(in.PeriodType, in.PeriodNumber); err != nil {
		return nil, domain.ErrInvalidInput
	}

	summary, err := uc.summary.summarizePeriod(ctx, userID, in.Year, in.PeriodType, in.PeriodNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing, err := uc.returnRepo.GetByPeriod(ctx, userID, in.Year, in.PeriodType, in.PeriodNumber)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.Status == entity.VatReturnSubmitted {
			return nil, domain.ErrStateConflict
		}
		existing.SetAmounts(summary.OutputVat, summary.InputVat, now)
		if err := uc.returnRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return toVatReturnResponse(existing), nil
	}

	vr := &entity.VatReturn{
		ID:           uuid.NewString(),
		UserID:       userID,
		Year:         in.Year,
		PeriodType:   in.PeriodType,
		PeriodNumber: in.PeriodNumber,
		Status:       entity.VatReturnDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	vr.SetAmounts(summary.OutputVat, summary.InputVat, now)
	if err := uc.returnRepo.Create(ctx, vr); err != nil {
		return nil, err
	}
	return toVatReturnResponse(vr), nil
}

// GenerateYear generates every period of one cadence for a calendar year.
// Submitted periods stay untouched and are returned as they are.
func (uc *ReturnsUseCase) GenerateYear(ctx context.Context, userID string, year int, periodType string) ([]*dto.VatReturnResponse, error) {
	count := domainvat.PeriodsInYear(periodType)
	if err := domainvat.ValidatePeriod(periodType, 1); err != nil {
		return nil, domain.ErrInvalidInput
	}

	out := make([]*dto.VatReturnResponse, 0, count)
	for number := 1; number <= count; number++ {
		resp, err := uc.Generate(ctx, userID, dto.GenerateVatReturnRequest{
			Year:         year,
			PeriodType:   periodType,
			PeriodNumber: number,
		})
		if errors.Is(err, domain.ErrStateConflict) {
			existing, gerr := uc.returnRepo.GetByPeriod(ctx, userID, year, periodType, number)
			if gerr != nil {
				return nil, gerr
			}
			out = append(out, toVatReturnResponse(existing))
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Submit marks a DRAFT return as filed. Submitting twice conflicts.
func (uc *ReturnsUseCase) Submit(ctx context.Context, userID, id string, in dto.SubmitVatReturnRequest) (*dto.VatReturnResponse, error) {
	vr, err := uc.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vr == nil {
		return nil, &domain.NotFoundError{Entity: "vat return", ID: id}
	}
	if vr.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if vr.Status == entity.VatReturnSubmitted {
		return nil, domain.ErrStateConflict
	}

	now := time.Now().UTC()
	date := now
	if in.SubmissionDate != "" {
		d, err := time.Parse(dateLayout, in.SubmissionDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		date = d
	}
	vr.Submit(date, now)
	if err := uc.returnRepo.Update(ctx, vr); err != nil {
		return nil, err
	}
	return toVatReturnResponse(vr), nil
}

// ListByYear returns all of a user's returns for one calendar year.
func (uc *ReturnsUseCase) ListByYear(ctx context.Context, userID string, year int) ([]*dto.VatReturnResponse, error) {
	returns, err := uc.returnRepo.ListByUserAndYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VatReturnResponse, 0, len(returns))
	for _, vr := range returns {
		out = append(out, toVatReturnResponse(vr))
	}
	return out, nil
}

func toVatReturnResponse(vr *entity.VatReturn) *dto.VatReturnResponse {
	resp := &dto.VatReturnResponse{
		ID:           vr.ID,
		Year:         vr.Year,
		PeriodType:   vr.PeriodType,
		PeriodNumber: vr.PeriodNumber,
		OutputVat:    vr.OutputVat,
		InputVat:     vr.InputVat,
		NetPayable:   vr.NetPayable,
		Status:       vr.Status,
	}
	if vr.SubmissionDate != nil {
		resp.SubmissionDate = vr.SubmissionDate.Format(dateLayout)
	}
	return resp
}
