// Package ustid validates EU VAT identification numbers (USt-IdNr) by
// country-specific syntax. German numbers additionally carry a check digit
// (ISO 7064 MOD 11,10) that is verified arithmetically.
package ustid

import (
	"fmt"
	"regexp"
	"strings"
)

// patterns holds the syntax of the national part per EU member state,
// keyed by the two-letter prefix of the VAT id.
var patterns = map[string]*regexp.Regexp{
	"AT": regexp.MustCompile(`^U\d{8}$`),
	"BE": regexp.MustCompile(`^[01]\d{9}$`),
	"BG": regexp.MustCompile(`^\d{9,10}$`),
	"CY": regexp.MustCompile(`^\d{8}[A-Z]$`),
	"CZ": regexp.MustCompile(`^\d{8,10}$`),
	"DE": regexp.MustCompile(`^\d{9}$`),
	"DK": regexp.MustCompile(`^\d{8}$`),
	"EE": regexp.MustCompile(`^\d{9}$`),
	"ES": regexp.MustCompile(`^[A-Z0-9]\d{7}[A-Z0-9]$`),
	"FI": regexp.MustCompile(`^\d{8}$`),
	"FR": regexp.MustCompile(`^[A-Z0-9]{2}\d{9}$`),
	"GR": regexp.MustCompile(`^\d{9}$`),
	"HR": regexp.MustCompile(`^\d{11}$`),
	"HU": regexp.MustCompile(`^\d{8}$`),
	"IE": regexp.MustCompile(`^\d{7}[A-W][A-IW]?$`),
	"IT": regexp.MustCompile(`^\d{11}$`),
	"LT": regexp.MustCompile(`^(\d{9}|\d{12})$`),
	"LU": regexp.MustCompile(`^\d{8}$`),
	"LV": regexp.MustCompile(`^\d{11}$`),
	"MT": regexp.MustCompile(`^\d{8}$`),
	"NL": regexp.MustCompile(`^\d{9}B\d{2}$`),
	"PL": regexp.MustCompile(`^\d{10}$`),
	"PT": regexp.MustCompile(`^\d{9}$`),
	"RO": regexp.MustCompile(`^\d{2,10}$`),
	"SE": regexp.MustCompile(`^\d{12}$`),
	"SI": regexp.MustCompile(`^\d{8}$`),
	"SK": regexp.MustCompile(`^\d{10}$`),
}

// Greek ids are issued with the EL prefix, not the ISO country code GR.
const greekPrefix = "EL"

// Normalize strips spaces, dots and hyphens and upper-cases the id.
func Normalize(vatID string) string {
	var b strings.Builder
	for _, r := range vatID {
		switch r {
		case ' ', '.', '-':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// Validate checks the syntax of an EU VAT id (prefix + national part).
// German ids also get their check digit verified.
func Validate(vatID string) error {
	id := Normalize(vatID)
	if len(id) < 4 {
		return fmt.Errorf("ustid: %q is too short for a VAT id", vatID)
	}
	prefix := id[:2]
	rest := id[2:]

	country := prefix
	if prefix == greekPrefix {
		country = "GR"
	}
	re, ok := patterns[country]
	if !ok {
		return fmt.Errorf("ustid: unknown VAT id prefix %q", prefix)
	}
	if !re.MatchString(rest) {
		return fmt.Errorf("ustid: %q does not match the %s format", vatID, prefix)
	}
	if country == "DE" {
		return validateGermanCheckDigit(rest)
	}
	return nil
}

// CountryCode returns the ISO 3166-1 alpha-2 country of a VAT id
// (mapping the Greek EL prefix to GR), or "" when it cannot be derived.
func CountryCode(vatID string) string {
	id := Normalize(vatID)
	if len(id) < 2 {
		return ""
	}
	prefix := id[:2]
	if prefix == greekPrefix {
		return "GR"
	}
	if _, ok := patterns[prefix]; !ok {
		return ""
	}
	return prefix
}

// validateGermanCheckDigit verifies the ninth digit of a German USt-IdNr
// using ISO 7064 MOD 11,10 over the first eight digits.
func validateGermanCheckDigit(digits string) error {
	product := 10
	for i := 0; i < 8; i++ {
		sum := (int(digits[i]-'0') + product) % 10
		if sum == 0 {
			sum = 10
		}
		product = (2 * sum) % 11
	}
	check := 11 - product
	if check == 10 {
		check = 0
	}
	if int(digits[8]-'0') != check {
		return fmt.Errorf("ustid: check digit mismatch, expected %d", check)
	}
	return nil
}
