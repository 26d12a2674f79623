package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dreistrom/dreistrom-api/internal/application/dto"
	"github.com/dreistrom/dreistrom-api/internal/application/expense"
)

// ExpenseHandler handles expenses and their allocation rules.
type ExpenseHandler struct {
	uc *expense.UseCase
}

// NewExpenseHandler builds the handler.
func NewExpenseHandler(uc *expense.UseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// CreateRule registers an allocation rule.
// POST /api/expenses/rules
func (h *ExpenseHandler) CreateRule(c *fiber.Ctx) error {
	var in dto.CreateAllocationRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rule, err := h.uc.CreateRule(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}

// ListRules returns the user's allocation rules.
// GET /api/expenses/rules
func (h *ExpenseHandler) ListRules(c *fiber.Ctx) error {
	rules, err := h.uc.ListRules(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rules)
}

// Create records an expense.
// POST /api/expenses
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	exp, err := h.uc.CreateExpense(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exp)
}

// List returns the user's expenses.
// GET /api/expenses
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	exps, err := h.uc.ListExpenses(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(exps)
}

// Delete removes an expense.
// DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteExpense(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
