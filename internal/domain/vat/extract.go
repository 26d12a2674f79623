package vat

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// Statutory German VAT rates in percent.
var (
	StandardRate = decimal.NewFromInt(19)
	ReducedRate  = decimal.NewFromInt(7)
)

var hundred = decimal.NewFromInt(100)

// ExtractVat pulls the VAT share out of a gross amount at the given percent
// rate: vat = gross x rate / (100 + rate), HALF_UP to the cent. Used for
// Vorsteuer on expenses recorded gross.
func ExtractVat(gross money.Money, ratePercent decimal.Decimal) money.Money {
	if gross.IsZero() || ratePercent.IsZero() {
		return money.Zero
	}
	vat := gross.Decimal().Mul(ratePercent).DivRound(hundred.Add(ratePercent), 2)
	return money.FromDecimal(vat)
}

// NetFromGross strips VAT: net = gross x 100 / (100 + rate), HALF_UP.
func NetFromGross(gross money.Money, ratePercent decimal.Decimal) money.Money {
	if gross.IsZero() {
		return money.Zero
	}
	net := gross.Decimal().Mul(hundred).DivRound(hundred.Add(ratePercent), 2)
	return money.FromDecimal(net)
}

// GrossFromNet adds VAT: gross = net x (100 + rate) / 100, HALF_UP.
func GrossFromNet(net money.Money, ratePercent decimal.Decimal) money.Money {
	if net.IsZero() {
		return money.Zero
	}
	gross := net.Decimal().Mul(hundred.Add(ratePercent)).DivRound(hundred, 2)
	return money.FromDecimal(gross)
}

// ProjectAnnual extrapolates year-to-date revenue linearly over the day of
// year, leap-year aware. Past years are complete so the projection equals
// the revenue itself; the same holds when revenue is zero.
func ProjectAnnual(revenue money.Money, year int, today time.Time) money.Money {
	if year != today.Year() || revenue.IsZero() {
		return revenue
	}
	dayOfYear := today.YearDay()
	if dayOfYear == 0 {
		return revenue
	}
	daysInYear := 365
	if isLeapYear(year) {
		daysInYear = 366
	}
	projected := revenue.Decimal().
		Mul(decimal.NewFromInt(int64(daysInYear))).
		DivRound(decimal.NewFromInt(int64(dayOfYear)), 2)
	return money.FromDecimal(projected)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
