package capacity

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the calendar date format accepted at the API boundary.
const DateLayout = "2006-01-02"

// WeekID is the canonical ISO-8601 week key, e.g. "2025-W30".
type WeekID string

// Week pairs an ISO week key with the date of its Monday.
type Week struct {
	ID     WeekID
	Monday time.Time
}

// DateOf truncates t to its calendar date (in t's own location) expressed at UTC midnight.
// All week arithmetic is done on these normalized dates so DST shifts never move a day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MondayOf returns the Monday that starts the ISO week containing t.
func MondayOf(t time.Time) time.Time {
	d := DateOf(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}

// ISOWeekOf returns the ISO week key for the week containing t.
// Week 1 is the week holding the year's first Thursday, so early January
// dates may belong to the previous ISO year and late December dates to the next.
func ISOWeekOf(t time.Time) WeekID {
	thursday := MondayOf(t).AddDate(0, 0, 3)
	year := thursday.Year()
	week := (thursday.YearDay()-1)/7 + 1
	return formatWeekID(year, week)
}

// WeekOf returns the Week containing t.
func WeekOf(t time.Time) Week {
	return Week{ID: ISOWeekOf(t), Monday: MondayOf(t)}
}

// WeeksInYear returns 52 or 53, the number of ISO weeks in the given ISO year.
func WeeksInYear(year int) int {
	// December 28th always falls in the last ISO week of its year.
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// ISOWeekMonday returns the Monday of ISO week `week` in ISO year `year`.
func ISOWeekMonday(year, week int) time.Time {
	// January 4th is always in week 1.
	firstMonday := MondayOf(time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC))
	return firstMonday.AddDate(0, 0, (week-1)*7)
}

// ParseWeekID validates a "YYYY-Www" key.
func ParseWeekID(s string) (WeekID, error) {
	if len(s) != 8 || s[4] != '-' || s[5] != 'W' {
		return "", fmt.Errorf("invalid week id %q: expected YYYY-Www", s)
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return "", fmt.Errorf("invalid week id %q: bad year", s)
	}
	week, err := strconv.Atoi(s[6:])
	if err != nil {
		return "", fmt.Errorf("invalid week id %q: bad week number", s)
	}
	if week < 1 || week > WeeksInYear(year) {
		return "", fmt.Errorf("invalid week id %q: week %d out of range for %d", s, week, year)
	}
	return formatWeekID(year, week), nil
}

// Year returns the ISO year of the key. Assumes a validated key.
func (w WeekID) Year() int {
	y, _ := strconv.Atoi(string(w)[:4])
	return y
}

// Number returns the ISO week number of the key. Assumes a validated key.
func (w WeekID) Number() int {
	n, _ := strconv.Atoi(string(w)[6:])
	return n
}

// Monday returns the Monday of the week. Assumes a validated key.
func (w WeekID) Monday() time.Time {
	return ISOWeekMonday(w.Year(), w.Number())
}

func (w WeekID) String() string {
	return string(w)
}

func formatWeekID(year, week int) WeekID {
	return WeekID(fmt.Sprintf("%04d-W%02d", year, week))
}
