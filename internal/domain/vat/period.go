package vat

import (
	"fmt"
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
)

// PeriodStart returns the first day of a USt-VA period.
func PeriodStart(year int, periodType string, number int) time.Time {
	switch periodType {
	case entity.PeriodMonthly:
		return time.Date(year, time.Month(number), 1, 0, 0, 0, 0, time.UTC)
	case entity.PeriodQuarterly:
		return time.Date(year, time.Month((number-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

// PeriodEnd returns the last day of a USt-VA period (inclusive).
func PeriodEnd(year int, periodType string, number int) time.Time {
	switch periodType {
	case entity.PeriodMonthly:
		return PeriodStart(year, periodType, number).AddDate(0, 1, -1)
	case entity.PeriodQuarterly:
		return PeriodStart(year, periodType, number).AddDate(0, 3, -1)
	default:
		return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
}

// PeriodsInYear returns how many periods a cadence has per year.
func PeriodsInYear(periodType string) int {
	switch periodType {
	case entity.PeriodMonthly:
		return 12
	case entity.PeriodQuarterly:
		return 4
	default:
		return 1
	}
}

// ValidatePeriod rejects unknown cadences and out-of-range period numbers.
func ValidatePeriod(periodType string, number int) error {
	switch periodType {
	case entity.PeriodMonthly, entity.PeriodQuarterly, entity.PeriodAnnual:
	default:
		return fmt.Errorf("unknown period type %q", periodType)
	}
	if number < 1 || number > PeriodsInYear(periodType) {
		return fmt.Errorf("period number %d out of range for %s", number, periodType)
	}
	return nil
}
