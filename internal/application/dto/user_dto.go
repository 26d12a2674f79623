package dto

import "time"

// RegisterRequest body for POST /api/auth/register (password is hashed in the use case).
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name"`
	TaxNumber        string `json:"tax_number,omitempty"`
	UstIdNr          string `json:"ust_id_nr,omitempty"`
	Kleinunternehmer bool   `json:"kleinunternehmer"`
}

// UserResponse user output (never includes the password hash).
type UserResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	TaxNumber        string    `json:"tax_number,omitempty"`
	UstIdNr          string    `json:"ust_id_nr,omitempty"`
	Kleinunternehmer bool      `json:"kleinunternehmer"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LoginRequest body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse JWT plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
