package billing

import (
	"strings"

	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
)

// euCountries holds the EU-27 member state ISO 3166-1 alpha-2 codes,
// excluding DE.
var euCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true, "CZ": true,
	"DK": true, "EE": true, "FI": true, "FR": true, "GR": true, "HU": true,
	"IE": true, "IT": true, "LV": true, "LT": true, "LU": true, "MT": true,
	"NL": true, "PL": true, "PT": true, "RO": true, "SK": true, "SI": true,
	"ES": true, "SE": true,
}

// zmPayoutKeywords marks known platform payout providers whose invoices are
// ZM-reportable regardless of treatment detection.
var zmPayoutKeywords = []string{"apple", "google"}

// IsEUCountry reports whether the code is an EU member state other than DE.
func IsEUCountry(code string) bool {
	return euCountries[code]
}

// DetermineVatTreatment picks the VAT treatment from client properties:
//
//   - DE clients -> REGULAR
//   - EU B2B with USt-IdNr -> REVERSE_CHARGE (§13b UStG)
//   - EU B2C, or B2B without USt-IdNr -> REGULAR (German rate applies)
//   - non-EU (Drittland) -> THIRD_COUNTRY (§3a UStG, no VAT)
func DetermineVatTreatment(client *entity.Client) string {
	if client == nil {
		return entity.VatRegular
	}
	country := client.Country
	if country == "DE" {
		return entity.VatRegular
	}
	if euCountries[country] {
		if client.ClientType == entity.ClientB2B && strings.TrimSpace(client.UstIdNr) != "" {
			return entity.VatReverseCharge
		}
		return entity.VatRegular
	}
	return entity.VatThirdCountry
}

// IsZmReportable decides whether an invoice belongs in the Zusammenfassende
// Meldung (§18a UStG): every EU B2B reverse-charge invoice, plus invoices to
// known platform payout providers.
func IsZmReportable(client *entity.Client, vatTreatment string) bool {
	if client == nil {
		return false
	}
	if vatTreatment == entity.VatReverseCharge && euCountries[client.Country] {
		return true
	}
	return isKnownPlatformPayout(client)
}

// VatNotice returns the legally required invoice notice for the treatment,
// or "" when none applies.
func VatNotice(vatTreatment string) string {
	switch vatTreatment {
	case entity.VatReverseCharge:
		return "Steuerschuldnerschaft des Leistungsempfängers (Reverse Charge, §13b UStG)."
	case entity.VatThirdCountry:
		return "Leistung nicht steuerbar per §3a UStG (Leistungsort im Drittland)."
	case entity.VatIntraEU:
		return "Steuerfreie innergemeinschaftliche Lieferung/Leistung."
	case entity.VatSmallBusiness:
		return "Gemäß §19 UStG wird keine Umsatzsteuer berechnet."
	default:
		return ""
	}
}

func isKnownPlatformPayout(client *entity.Client) bool {
	name := strings.ToLower(client.Name)
	for _, kw := range zmPayoutKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
