package entity

import "time"

// User is the account holder: a self-employed person earning through up to
// three legally distinct streams (employment, freelance, trade).
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	Name             string
	TaxNumber        string // Steuernummer
	UstIdNr          string // own USt-IdNr, needed for ZM submission
	Kleinunternehmer bool   // §19 UStG small-business exemption elected
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
