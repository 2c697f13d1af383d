package capacity

import "math"

// EffectiveWeeklyCapacity is the nominal weekly capacity minus recurring
// non-project overhead, floored at zero.
func EffectiveWeeklyCapacity(r Resource) float64 {
	return math.Max(0, r.WeeklyCapacityHours-r.NonProjectHoursPerWeek)
}

// PeriodCapacity scales effective weekly capacity by the number of weeks in
// the period, so utilization stays comparable across week, month, quarter and
// year views.
func PeriodCapacity(r Resource, weekCount int) float64 {
	if weekCount < 1 {
		weekCount = 1
	}
	return EffectiveWeeklyCapacity(r) * float64(weekCount)
}

// round rounds val to the given number of decimal places.
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
