package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type datedItem struct {
	id   string
	when *time.Time
}

func at(t time.Time) *time.Time { return &t }

func itemDate(i datedItem) (time.Time, bool) {
	if i.when == nil {
		return time.Time{}, false
	}
	return *i.when, true
}

func TestIndexByDay_GroupsBySameLocalDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	morning := time.Date(2021, time.July, 10, 9, 0, 0, 0, loc)
	evening := time.Date(2021, time.July, 10, 22, 30, 0, 0, loc)
	nextDay := time.Date(2021, time.July, 11, 0, 0, 0, 0, loc)

	items := []datedItem{
		{id: "a", when: at(morning)},
		{id: "b", when: at(evening)},
		{id: "c", when: at(nextDay)},
	}

	index := IndexByDay(items, itemDate)

	require.Len(t, index, 2)
	july10 := index[NewCalendarDate(2021, time.July, 10)]
	require.Len(t, july10, 2)
	// Insertion order preserved within a bucket.
	assert.Equal(t, "a", july10[0].id)
	assert.Equal(t, "b", july10[1].id)

	july11 := index[NewCalendarDate(2021, time.July, 11)]
	require.Len(t, july11, 1)
	assert.Equal(t, "c", july11[0].id)
}

func TestIndexByDay_DropsRecordsWithoutDates(t *testing.T) {
	items := []datedItem{
		{id: "dated", when: at(time.Date(2021, time.June, 5, 12, 0, 0, 0, time.UTC))},
		{id: "undated"},
	}

	index := IndexByDay(items, itemDate)

	require.Len(t, index, 1)
	bucket := index[NewCalendarDate(2021, time.June, 5)]
	require.Len(t, bucket, 1)
	assert.Equal(t, "dated", bucket[0].id)
}

func TestIndexByDay_EachRecordInExactlyOneBucket(t *testing.T) {
	items := []datedItem{
		{id: "a", when: at(time.Date(2021, time.June, 1, 8, 0, 0, 0, time.UTC))},
		{id: "b", when: at(time.Date(2021, time.June, 2, 8, 0, 0, 0, time.UTC))},
		{id: "c", when: at(time.Date(2021, time.June, 1, 20, 0, 0, 0, time.UTC))},
	}

	index := IndexByDay(items, itemDate)

	seen := map[string]int{}
	for _, bucket := range index {
		for _, item := range bucket {
			seen[item.id]++
		}
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, seen)
}

func TestNormalize_SameLocalDayCollapses(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	early := time.Date(2021, time.August, 3, 0, 0, 1, 0, loc)
	late := time.Date(2021, time.August, 3, 23, 59, 59, 0, loc)

	assert.Equal(t, Normalize(early), Normalize(late))
	assert.Equal(t, NewCalendarDate(2021, time.August, 3), Normalize(early))
}
