package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dreistrom/dreistrom-api/internal/application/auth"
	"github.com/dreistrom/dreistrom-api/internal/application/dto"
)

// AuthHandler handles registration, login and profile requests.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register creates an account.
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login verifies credentials and issues a token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Profile returns the authenticated user.
// GET /api/auth/me
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.uc.Profile(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// SetKleinunternehmer flips the §19 UStG election.
// PUT /api/auth/me/kleinunternehmer
func (h *AuthHandler) SetKleinunternehmer(c *fiber.Ctx) error {
	var in struct {
		Kleinunternehmer bool `json:"kleinunternehmer"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.SetKleinunternehmer(c.Context(), GetUserID(c), in.Kleinunternehmer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
