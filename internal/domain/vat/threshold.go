package vat

import (
	"github.com/shopspring/decimal"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// ThresholdStatus is the §19 UStG Kleinunternehmer eligibility picture.
// Both ratios are revenue/limit at four fraction digits; the exceeded flags
// are strict comparisons (revenue exactly at the limit still qualifies,
// "bis zu" in the statute is inclusive).
type ThresholdStatus struct {
	CurrentRevenue     money.Money
	CurrentYearLimit   money.Money
	CurrentRatio       decimal.Decimal
	ProjectedRevenue   money.Money
	ProjectedYearLimit money.Money
	ProjectedRatio     decimal.Decimal
	CurrentExceeded    bool
	ProjectedExceeded  bool
}

// EvaluateThreshold compares revenue against the statutory limits. Pure
// function of its inputs: revenue aggregation and projection are the
// caller's job, and nothing is memoized because revenue moves with every
// recorded invoice.
func EvaluateThreshold(currentRevenue, currentLimit, projectedRevenue, projectedLimit money.Money) ThresholdStatus {
	currentRatio := ratio(currentRevenue, currentLimit)
	projectedRatio := ratio(projectedRevenue, projectedLimit)

	one := decimal.NewFromInt(1)
	return ThresholdStatus{
		CurrentRevenue:     currentRevenue,
		CurrentYearLimit:   currentLimit,
		CurrentRatio:       currentRatio,
		ProjectedRevenue:   projectedRevenue,
		ProjectedYearLimit: projectedLimit,
		ProjectedRatio:     projectedRatio,
		CurrentExceeded:    currentRatio.GreaterThan(one),
		ProjectedExceeded:  projectedRatio.GreaterThan(one),
	}
}

func ratio(revenue, limit money.Money) decimal.Decimal {
	if limit.Cents() <= 0 {
		return decimal.Zero
	}
	return revenue.Decimal().DivRound(limit.Decimal(), 4)
}
