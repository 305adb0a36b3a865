package calendar

import (
	"fmt"
	"time"
)

// CalendarDate is a (year, month, day) triple with no time component.
// It is the grouping and lookup key for everything calendar-shaped:
// two instants on the same local day always normalize to the same value.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate builds a CalendarDate from its parts
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// Normalize truncates an instant to its local calendar day, using the
// location the instant carries.
func Normalize(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Time returns the instant at midnight of the date in the given location
func (d CalendarDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Weekday returns the day of the week the date falls on
func (d CalendarDate) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// Next returns the following calendar day
func (d CalendarDate) Next() CalendarDate {
	return Normalize(d.Time(time.UTC).AddDate(0, 0, 1))
}

// Before reports whether d falls strictly earlier than other
func (d CalendarDate) Before(other CalendarDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d falls strictly later than other
func (d CalendarDate) After(other CalendarDate) bool {
	return other.Before(d)
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
