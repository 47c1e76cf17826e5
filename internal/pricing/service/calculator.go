package service

import (
	"time"

	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
)

// calcResult carries the computed amount plus the duration views echoed in
// the estimate.
type calcResult struct {
	TotalMinor    int64
	BillableUnits int64
	DurationHours float64
	DurationDays  int64
}

// calculateAmount converts a UTC interval and a resolved rule into a billable
// amount in minor units. Partial units always round up; the minimum charge
// floor applies after the rate. Monthly billing uses a flat 30-day
// approximation, kept as documented behavior.
func calculateAmount(rule *pricingdomain.PricingRule, start, end time.Time) (calcResult, error) {
	if !end.After(start) {
		return calcResult{}, pricingdomain.ErrInvalidInterval
	}

	d := end.Sub(start)
	hours := ceilDiv(int64(d), int64(time.Hour))
	days := ceilDiv(int64(d), int64(24*time.Hour))

	result := calcResult{
		DurationHours: d.Hours(),
		DurationDays:  days,
	}

	switch rule.PricingType {
	case pricingdomain.PricingHourly:
		result.BillableUnits = hours
		result.TotalMinor = hours * rule.PricePerHourMinor
	case pricingdomain.PricingDaily:
		result.BillableUnits = days
		result.TotalMinor = days * rule.PricePerDayMinor
	case pricingdomain.PricingWeekly:
		weeks := ceilDiv(days, 7)
		result.BillableUnits = weeks
		result.TotalMinor = weeks * rule.PricePerWeekMinor
	case pricingdomain.PricingMonthly:
		months := ceilDiv(days, 30)
		result.BillableUnits = months
		result.TotalMinor = months * rule.PricePerMonthMinor
	default:
		return calcResult{}, pricingdomain.ErrUnsupportedPricingType
	}

	if result.TotalMinor < rule.MinimumChargeMinor {
		result.TotalMinor = rule.MinimumChargeMinor
	}

	return result, nil
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
