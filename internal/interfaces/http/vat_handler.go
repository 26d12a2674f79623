package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dreistrom/dreistrom-api/internal/application/dto"
	"github.com/dreistrom/dreistrom-api/internal/application/vat"
)

// VatHandler handles VAT summaries, §19 UStG status, ZM reports and returns.
type VatHandler struct {
	summary   *vat.SummaryUseCase
	threshold *vat.ThresholdUseCase
	zm        *vat.ZmUseCase
	returns   *vat.ReturnsUseCase
}

// NewVatHandler builds the handler.
func NewVatHandler(summary *vat.SummaryUseCase, threshold *vat.ThresholdUseCase, zm *vat.ZmUseCase, returns *vat.ReturnsUseCase) *VatHandler {
	return &VatHandler{summary: summary, threshold: threshold, zm: zm, returns: returns}
}

// Summary computes output and input VAT over a date range.
// GET /api/vat/summary?from=2026-01-01&to=2026-03-31
func (h *VatHandler) Summary(c *fiber.Ctx) error {
	resp, err := h.summary.Summarize(c.Context(), GetUserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// KleinunternehmerStatus evaluates the §19 UStG thresholds for a year.
// GET /api/vat/kleinunternehmer-status?year=2026
func (h *VatHandler) KleinunternehmerStatus(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	resp, err := h.threshold.Evaluate(c.Context(), GetUserID(c), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ZmReport aggregates cross-border B2B revenue per partner.
// GET /api/vat/zm-report?from=2026-01-01&to=2026-03-31
func (h *VatHandler) ZmReport(c *fiber.Ctx) error {
	report, err := h.zm.BuildReport(c.Context(), GetUserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GenerateReturn builds or refreshes a draft advance VAT return.
// POST /api/vat/returns
func (h *VatHandler) GenerateReturn(c *fiber.Ctx) error {
	var in dto.GenerateVatReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.returns.Generate(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GenerateYearReturns builds drafts for every period of a year.
// POST /api/vat/returns/year
func (h *VatHandler) GenerateYearReturns(c *fiber.Ctx) error {
	var in struct {
		Year       int    `json:"year"`
		PeriodType string `json:"period_type"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.returns.GenerateYear(c.Context(), GetUserID(c), in.Year, in.PeriodType)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SubmitReturn marks a draft return as filed.
// POST /api/vat/returns/:id/submit
func (h *VatHandler) SubmitReturn(c *fiber.Ctx) error {
	var in dto.SubmitVatReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.returns.Submit(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListReturns returns the user's VAT returns for a year.
// GET /api/vat/returns?year=2026
func (h *VatHandler) ListReturns(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	resp, err := h.returns.ListByYear(c.Context(), GetUserID(c), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
