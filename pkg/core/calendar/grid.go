package calendar

import "time"

// GridSlot is one cell of a month grid. The zero value is a padding slot.
type GridSlot struct {
	Date  CalendarDate
	Empty bool
}

// BuildGrid lays out a month as Sunday-first weeks of exactly seven slots.
// Leading slots before the first of the month and trailing slots after the
// last day are padding. Deterministic; callers may rebuild any month.
func BuildGrid(year int, month time.Month) [][]GridSlot {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := DaysInMonth(year, month)
	lead := int(first.Weekday()) // Sunday == 0

	totalSlots := lead + daysInMonth
	weekCount := (totalSlots + 6) / 7

	grid := make([][]GridSlot, weekCount)
	day := 1
	for w := 0; w < weekCount; w++ {
		week := make([]GridSlot, 7)
		for i := 0; i < 7; i++ {
			slot := w*7 + i
			if slot < lead || day > daysInMonth {
				week[i] = GridSlot{Empty: true}
				continue
			}
			week[i] = GridSlot{Date: NewCalendarDate(year, month, day)}
			day++
		}
		grid[w] = week
	}

	return grid
}
