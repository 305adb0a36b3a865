package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify_OutOfSeason(t *testing.T) {
	outOfSeason := []CalendarDate{
		NewCalendarDate(2021, time.April, 30),
		NewCalendarDate(2021, time.October, 1),
		NewCalendarDate(2021, time.January, 15),
		NewCalendarDate(2021, time.December, 25),
		// Other years are out of season entirely until a new schedule lands
		NewCalendarDate(2020, time.July, 4),
		NewCalendarDate(2022, time.June, 15),
	}

	for _, d := range outOfSeason {
		status := Classify(d)
		assert.Equal(t, OutOfSeason, status.State, "date %s", d)
		assert.Empty(t, status.Hours, "date %s", d)
	}
}

func TestClassify_TotalOverSeasonMonths(t *testing.T) {
	// Every day May through September classifies to exactly one in-season
	// variant, and hours appear exactly on open days.
	for month := time.May; month <= time.September; month++ {
		for day := 1; day <= DaysInMonth(2021, month); day++ {
			status := Classify(NewCalendarDate(2021, month, day))

			assert.NotEqual(t, OutOfSeason, status.State, "date 2021-%d-%d", month, day)
			if status.State == Open {
				assert.NotEmpty(t, status.Hours, "open day 2021-%d-%d has no hours", month, day)
			} else {
				assert.Equal(t, ClosedInSeason, status.State)
				assert.Empty(t, status.Hours, "closed day 2021-%d-%d has hours", month, day)
			}
		}
	}
}

func TestClassify_June1Irregularity(t *testing.T) {
	// June 1 is published closed even though it is a Tuesday inside the
	// main range. Regression guard: do not "fix" this.
	status := Classify(NewCalendarDate(2021, time.June, 1))
	assert.Equal(t, ClosedInSeason, status.State)
	assert.Empty(t, status.Hours)

	// June 2, the very next non-Monday, is open as normal.
	next := Classify(NewCalendarDate(2021, time.June, 2))
	assert.Equal(t, Open, next.State)
	assert.Equal(t, HoursShort, next.Hours)
}

func TestClassify_MainRangeMondaysClosed(t *testing.T) {
	mondays := []CalendarDate{
		NewCalendarDate(2021, time.June, 7),
		NewCalendarDate(2021, time.June, 14),
		NewCalendarDate(2021, time.June, 21),
		NewCalendarDate(2021, time.June, 28),
		NewCalendarDate(2021, time.July, 5),
		NewCalendarDate(2021, time.July, 26),
		NewCalendarDate(2021, time.August, 2),
		NewCalendarDate(2021, time.August, 9),
	}

	for _, d := range mondays {
		assert.Equal(t, time.Monday, d.Weekday(), "test data error for %s", d)
		status := Classify(d)
		assert.Equal(t, ClosedInSeason, status.State, "monday %s", d)
		assert.Empty(t, status.Hours)
	}
}

func TestClassify_MainRangeWeekdayBuckets(t *testing.T) {
	tests := []struct {
		name  string
		date  CalendarDate
		hours string
	}{
		{"tuesday", NewCalendarDate(2021, time.June, 8), HoursShort},
		{"wednesday", NewCalendarDate(2021, time.July, 14), HoursShort},
		{"thursday", NewCalendarDate(2021, time.August, 12), HoursShort},
		{"friday", NewCalendarDate(2021, time.June, 11), HoursLong},
		{"saturday", NewCalendarDate(2021, time.July, 10), HoursLong},
		{"sunday", NewCalendarDate(2021, time.June, 13), HoursSunday},
		{"july 4 reverts to short hours", NewCalendarDate(2021, time.July, 4), HoursShort},
		{"august 15 reverts to short hours", NewCalendarDate(2021, time.August, 15), HoursShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Classify(tt.date)
			assert.Equal(t, Open, status.State)
			assert.Equal(t, tt.hours, status.Hours)
		})
	}
}

func TestClassify_May(t *testing.T) {
	// Only the listed days are open; everything else in May is closed.
	openDays := map[int]string{
		8: HoursLong, 9: HoursLong, 15: HoursLong, 16: HoursLong,
		22: HoursLong, 23: HoursLong, 29: HoursLong, 30: HoursLong,
		31: HoursHoliday, // Memorial Day runs shorter
	}

	for day := 1; day <= 31; day++ {
		status := Classify(NewCalendarDate(2021, time.May, day))
		if hours, open := openDays[day]; open {
			assert.Equal(t, Open, status.State, "may %d", day)
			assert.Equal(t, hours, status.Hours, "may %d", day)
		} else {
			assert.Equal(t, ClosedInSeason, status.State, "may %d", day)
		}
	}
}

func TestClassify_September(t *testing.T) {
	openDays := map[int]string{
		4: HoursSeptSat, 5: HoursSeptSat, 11: HoursSeptSat,
		18: HoursSeptSat, 25: HoursSeptSat,
		6: HoursSeptSun, // Labor Day
		12: HoursSeptSun, 19: HoursSeptSun, 26: HoursSeptSun,
	}

	for day := 1; day <= 30; day++ {
		status := Classify(NewCalendarDate(2021, time.September, day))
		if hours, open := openDays[day]; open {
			assert.Equal(t, Open, status.State, "september %d", day)
			assert.Equal(t, hours, status.Hours, "september %d", day)
		} else {
			assert.Equal(t, ClosedInSeason, status.State, "september %d", day)
		}
	}
}

func TestClassify_ExtraAugustWeekends(t *testing.T) {
	assert.Equal(t, PoolDayStatus{State: Open, Hours: HoursLong}, Classify(NewCalendarDate(2021, time.August, 21)))
	assert.Equal(t, PoolDayStatus{State: Open, Hours: HoursSunday}, Classify(NewCalendarDate(2021, time.August, 22)))
	assert.Equal(t, PoolDayStatus{State: Open, Hours: HoursLong}, Classify(NewCalendarDate(2021, time.August, 28)))
	assert.Equal(t, PoolDayStatus{State: Open, Hours: HoursSunday}, Classify(NewCalendarDate(2021, time.August, 29)))

	// Weekdays after the main range closes are closed, not out of season.
	for day := 16; day <= 20; day++ {
		status := Classify(NewCalendarDate(2021, time.August, day))
		assert.Equal(t, ClosedInSeason, status.State, "august %d", day)
	}
}
