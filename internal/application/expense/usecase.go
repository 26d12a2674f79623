package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dreistrom/dreistrom-api/internal/application/dto"
	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/money"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase manages expenses and their allocation rules. Amounts are gross;
// the allocation rule decides the deductible business share.
type UseCase struct {
	expenseRepo repository.ExpenseRepository
	ruleRepo    repository.AllocationRuleRepository
}

func NewUseCase(expenseRepo repository.ExpenseRepository, ruleRepo repository.AllocationRuleRepository) *UseCase {
	return &UseCase{expenseRepo: expenseRepo, ruleRepo: ruleRepo}
}

// CreateRule registers an allocation split. Percentages must sum to 100.
func (uc *UseCase) CreateRule(ctx context.Context, userID string, in dto.CreateAllocationRuleRequest) (*dto.AllocationRuleResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	rule := &entity.AllocationRule{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		FreiberufPct: in.FreiberufPct,
		GewerbePct:   in.GewerbePct,
		PersonalPct:  in.PersonalPct,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := rule.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

// ListRules returns the user's allocation rules.
func (uc *UseCase) ListRules(ctx context.Context, userID string) ([]*dto.AllocationRuleResponse, error) {
	rules, err := uc.ruleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AllocationRuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, toRuleResponse(r))
	}
	return out, nil
}

// CreateExpense records a gross expense. An allocation rule reference must
// point to one of the user's own rules; without one the expense is fully
// personal and never contributes input VAT.
func (uc *UseCase) CreateExpense(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	amount, err := money.FromDecimalString(in.Amount)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, &domain.AmountError{Input: in.Amount, Reason: "expense amount must be positive"}
	}
	entryDate, err := time.Parse(dateLayout, in.EntryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, domain.ErrInvalidInput
	}

	if in.AllocationRuleID != "" {
		rule, err := uc.ruleRepo.GetByID(ctx, in.AllocationRuleID)
		if err != nil {
			return nil, err
		}
		if rule == nil {
			return nil, &domain.NotFoundError{Entity: "allocation rule", ID: in.AllocationRuleID}
		}
		if rule.UserID != userID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now().UTC()
	expense := &entity.ExpenseEntry{
		ID:               uuid.NewString(),
		UserID:           userID,
		Amount:           amount,
		Currency:         "EUR",
		Category:         strings.TrimSpace(in.Category),
		EntryDate:        entryDate,
		AllocationRuleID: in.AllocationRuleID,
		ReceiptDocID:     in.ReceiptDocID,
		Description:      in.Description,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses returns the user's expenses.
func (uc *UseCase) ListExpenses(ctx context.Context, userID string) ([]*dto.ExpenseResponse, error) {
	expenses, err := uc.expenseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

// DeleteExpense removes an owned expense.
func (uc *UseCase) DeleteExpense(ctx context.Context, userID, id string) error {
	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return &domain.NotFoundError{Entity: "expense", ID: id}
	}
	if expense.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.expenseRepo.Delete(ctx, id)
}

func toRuleResponse(r *entity.AllocationRule) *dto.AllocationRuleResponse {
	return &dto.AllocationRuleResponse{
		ID:           r.ID,
		Name:         r.Name,
		FreiberufPct: r.FreiberufPct,
		GewerbePct:   r.GewerbePct,
		PersonalPct:  r.PersonalPct,
		CreatedAt:    r.CreatedAt,
	}
}

func toExpenseResponse(e *entity.ExpenseEntry) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:               e.ID,
		Amount:           e.Amount,
		Currency:         e.Currency,
		Category:         e.Category,
		EntryDate:        e.EntryDate.Format(dateLayout),
		AllocationRuleID: e.AllocationRuleID,
		ReceiptDocID:     e.ReceiptDocID,
		Description:      e.Description,
		CreatedAt:        e.CreatedAt,
	}
}
