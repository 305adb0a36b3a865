package calendar

import "time"

// IndexByDay groups records by the calendar day they fall on, preserving
// insertion order within each bucket. dateOf reports the record's instant
// and whether one exists; records without a usable date are skipped
// (callers log them if they care, it is not an error).
//
// Calendar cells light up from the key set; a day-click resolves to a
// direct navigation when a bucket holds one record and a pick list when
// it holds several.
func IndexByDay[T any](records []T, dateOf func(T) (time.Time, bool)) map[CalendarDate][]T {
	index := make(map[CalendarDate][]T)
	for _, rec := range records {
		t, ok := dateOf(rec)
		if !ok {
			continue
		}
		day := Normalize(t)
		index[day] = append(index[day], rec)
	}
	return index
}
