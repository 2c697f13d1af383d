package capacity

import (
	"fmt"
	"strings"
	"time"
)

// PeriodType labels a reporting window. It never affects the arithmetic,
// except when used as a breakdown bucket size.
type PeriodType string

const (
	PeriodWeek    PeriodType = "week"
	PeriodMonth   PeriodType = "month"
	PeriodQuarter PeriodType = "quarter"
	PeriodYear    PeriodType = "year"
	PeriodCustom  PeriodType = "custom"
)

// AwarenessPolicy controls whether elapsed weeks are dropped from forward-looking periods.
type AwarenessPolicy string

const (
	// AwarenessAuto drops weeks before the current week when the period spans
	// more than one week and contains today.
	AwarenessAuto AwarenessPolicy = "auto"
	// AwarenessOff never adjusts the resolved week list.
	AwarenessOff AwarenessPolicy = "off"
)

// ParseAwarenessPolicy parses a policy name; the empty string means auto.
func ParseAwarenessPolicy(s string) (AwarenessPolicy, error) {
	switch AwarenessPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", AwarenessAuto:
		return AwarenessAuto, nil
	case AwarenessOff:
		return AwarenessOff, nil
	}
	return "", fmt.Errorf("unknown current-date awareness policy %q", s)
}

// MaxPeriodWeeks caps the length of a resolvable period (ten years).
const MaxPeriodWeeks = 522

// ResolveOptions carries the inputs of current-date awareness.
type ResolveOptions struct {
	Now            time.Time
	Awareness      AwarenessPolicy
	ForwardLooking bool
}

// Period is a resolved reporting window.
type Period struct {
	Start         time.Time
	End           time.Time
	Type          PeriodType
	Weeks         []Week
	Adjusted      bool
	ExcludedWeeks []WeekID
}

// WeekCount is the period multiplier used to scale capacity. Always at least 1.
func (p Period) WeekCount() int {
	return len(p.Weeks)
}

// WeekIDs returns the ordered week keys of the period.
func (p Period) WeekIDs() []WeekID {
	ids := make([]WeekID, len(p.Weeks))
	for i, w := range p.Weeks {
		ids[i] = w.ID
	}
	return ids
}

// Info converts the period to its API shape.
func (p Period) Info() PeriodInfo {
	return PeriodInfo{
		StartDate:     p.Start.Format(DateLayout),
		EndDate:       p.End.Format(DateLayout),
		PeriodType:    p.Type,
		WeekCount:     p.WeekCount(),
		Weeks:         p.WeekIDs(),
		Adjusted:      p.Adjusted,
		ExcludedWeeks: p.ExcludedWeeks,
	}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unparseable date %q (expected YYYY-MM-DD)", ErrInvalidPeriod, s)
	}
	return t, nil
}

// InferPeriodType guesses a label from the length of an inclusive date range.
func InferPeriodType(start, end time.Time) PeriodType {
	days := int(end.Sub(start).Hours()/24) + 1
	switch {
	case days <= 7:
		return PeriodWeek
	case days <= 31:
		return PeriodMonth
	case days <= 92:
		return PeriodQuarter
	case days <= 366:
		return PeriodYear
	default:
		return PeriodCustom
	}
}

// ResolvePeriod turns an inclusive [startDate, endDate] range into ISO weeks.
//
// Both dates empty means the ISO week containing opts.Now. A single date on
// its own is treated as a one-day range. The week list holds every week whose
// Monday falls inside the range; a range that contains no Monday resolves to
// the week containing startDate.
func ResolvePeriod(startDate, endDate string, opts ResolveOptions) (Period, error) {
	today := DateOf(opts.Now)

	var start, end time.Time
	switch {
	case startDate == "" && endDate == "":
		start = MondayOf(today)
		end = start.AddDate(0, 0, 6)
	case startDate == "" || endDate == "":
		d, err := ParseDate(startDate + endDate)
		if err != nil {
			return Period{}, err
		}
		start, end = d, d
	default:
		var err error
		if start, err = ParseDate(startDate); err != nil {
			return Period{}, err
		}
		if end, err = ParseDate(endDate); err != nil {
			return Period{}, err
		}
	}

	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidPeriod, end.Format(DateLayout), start.Format(DateLayout))
	}

	if n := countWeeks(start, end); n > MaxPeriodWeeks {
		return Period{}, fmt.Errorf("%w: period spans %d weeks (max %d)", ErrInvalidPeriod, n, MaxPeriodWeeks)
	}
	weeks := weeksBetween(start, end)

	p := Period{
		Start: start,
		End:   end,
		Type:  InferPeriodType(start, end),
		Weeks: weeks,
	}

	if opts.Awareness == AwarenessAuto && opts.ForwardLooking {
		applyCurrentDateAwareness(&p, today)
	}

	return p, nil
}

// countWeeks returns len(weeksBetween(start, end)) without walking the range.
func countWeeks(start, end time.Time) int {
	first := MondayOf(start)
	if first.Before(start) {
		first = first.AddDate(0, 0, 7)
	}
	if first.After(end) {
		return 1
	}
	const secondsPerWeek = 7 * 24 * 60 * 60
	return int((MondayOf(end).Unix()-first.Unix())/secondsPerWeek) + 1
}

func weeksBetween(start, end time.Time) []Week {
	monday := MondayOf(start)
	if monday.Before(start) {
		monday = monday.AddDate(0, 0, 7)
	}

	var weeks []Week
	for !monday.After(end) {
		weeks = append(weeks, Week{ID: ISOWeekOf(monday), Monday: monday})
		monday = monday.AddDate(0, 0, 7)
	}

	if len(weeks) == 0 {
		weeks = append(weeks, WeekOf(start))
	}
	return weeks
}

// applyCurrentDateAwareness drops weeks that started before the current week.
// Single-week periods and periods that do not contain today (entirely
// historical or entirely future) are left untouched.
func applyCurrentDateAwareness(p *Period, today time.Time) {
	if len(p.Weeks) <= 1 || today.Before(p.Start) || today.After(p.End) {
		return
	}

	currentMonday := MondayOf(today)
	kept := make([]Week, 0, len(p.Weeks))
	for _, w := range p.Weeks {
		if w.Monday.Before(currentMonday) {
			p.ExcludedWeeks = append(p.ExcludedWeeks, w.ID)
			continue
		}
		kept = append(kept, w)
	}

	// A period never resolves to zero weeks
	if len(kept) == 0 {
		p.ExcludedWeeks = nil
		return
	}

	p.Weeks = kept
	p.Adjusted = len(p.ExcludedWeeks) > 0
}
