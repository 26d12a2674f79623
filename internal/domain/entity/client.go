package entity

import "time"

// Client types for VAT treatment detection.
const (
	ClientB2B = "B2B"
	ClientB2C = "B2C"
)

// Client is an invoice recipient. Country and UstIdNr drive reverse-charge
// detection and ZM reporting.
type Client struct {
	ID         string
	UserID     string
	Name       string
	Country    string // ISO 3166-1 alpha-2, default "DE"
	ClientType string // ClientB2B or ClientB2C
	UstIdNr    string // EU VAT identifier, empty if none
	StreamType string // StreamFreiberuf or StreamGewerbe
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
