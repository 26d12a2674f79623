package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dreistrom/dreistrom-api/internal/application/billing"
	"github.com/dreistrom/dreistrom-api/internal/application/dto"
)

// InvoiceHandler handles invoice issuing, lookup and lifecycle requests.
type InvoiceHandler struct {
	create  *billing.CreateInvoiceUseCase
	invoice *billing.InvoiceUseCase
	pdf     *billing.InvoicePDFUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(create *billing.CreateInvoiceUseCase, invoice *billing.InvoiceUseCase, pdf *billing.InvoicePDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{create: create, invoice: invoice, pdf: pdf}
}

// Create issues a new invoice with the next gap-free number.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.create.CreateInvoice(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetByID returns a single invoice.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.invoice.GetInvoice(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// List returns the user's invoices, optionally filtered.
// GET /api/invoices?stream=FREIBERUF&status=ISSUED
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invs, err := h.invoice.ListInvoices(c.Context(), GetUserID(c), c.Query("stream"), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invs)
}

// UpdateStatus moves an invoice through its lifecycle.
// PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.invoice.UpdateStatus(c.Context(), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Update edits the mutable fields of an open invoice.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.invoice.UpdateInvoice(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Delete removes a draft that never received a number.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoice.DeleteInvoice(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF renders the invoice document.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.GeneratePDF(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
