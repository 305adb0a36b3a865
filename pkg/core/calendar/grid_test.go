package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGrid_WeeksAreSevenWide(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		grid := BuildGrid(2021, month)
		require.NotEmpty(t, grid)
		for i, week := range grid {
			assert.Len(t, week, 7, "month %s week %d", month, i)
		}
	}
}

func TestBuildGrid_LeadingPadMatchesFirstWeekday(t *testing.T) {
	// August 2021 starts on a Sunday: no leading pad.
	august := BuildGrid(2021, time.August)
	assert.False(t, august[0][0].Empty)
	assert.Equal(t, NewCalendarDate(2021, time.August, 1), august[0][0].Date)

	// June 2021 starts on a Tuesday: two leading pads, day one in slot 2.
	june := BuildGrid(2021, time.June)
	assert.True(t, june[0][0].Empty)
	assert.True(t, june[0][1].Empty)
	assert.False(t, june[0][2].Empty)
	assert.Equal(t, NewCalendarDate(2021, time.June, 1), june[0][2].Date)
}

func TestBuildGrid_NonEmptySlotsEqualDaysInMonth(t *testing.T) {
	for year := 2020; year <= 2022; year++ {
		for month := time.January; month <= time.December; month++ {
			grid := BuildGrid(year, month)

			count := 0
			wantDay := 1
			for _, week := range grid {
				for _, slot := range week {
					if slot.Empty {
						continue
					}
					assert.Equal(t, NewCalendarDate(year, month, wantDay), slot.Date)
					wantDay++
					count++
				}
			}
			assert.Equal(t, DaysInMonth(year, month), count, "%d-%s", year, month)
		}
	}
}

func TestBuildGrid_FebruaryLeapYear(t *testing.T) {
	grid := BuildGrid(2024, time.February)

	count := 0
	for _, week := range grid {
		for _, slot := range week {
			if !slot.Empty {
				count++
			}
		}
	}
	assert.Equal(t, 29, count)
}
