package training_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/fortranov/sportproject/internal/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenDaySchedule is a week of swimming followed by three days of cycling.
func tenDaySchedule(t *testing.T) []training.TrainingDay {
	t.Helper()
	start := date(t, "2024-02-12")
	schedule := make([]training.TrainingDay, 0, 10)
	for i := 0; i < 10; i++ {
		day := training.TrainingDay{Date: start.AddDays(i), TotalHours: 1}
		if i < 7 {
			day.SwimmingHours = 1
		} else {
			day.CyclingHours = 1
		}
		schedule = append(schedule, day)
	}
	return schedule
}

func randomSchedule(r *rand.Rand, n int) []training.TrainingDay {
	start := training.NewDate(2024, 1, 1)
	schedule := make([]training.TrainingDay, n)
	for i := range schedule {
		day := training.TrainingDay{
			Date:          start.AddDays(i),
			SwimmingHours: float64(r.Intn(9)) / 4,
			CyclingHours:  float64(r.Intn(13)) / 4,
			RunningHours:  float64(r.Intn(7)) / 4,
		}
		day.TotalHours = day.SwimmingHours + day.CyclingHours + day.RunningHours
		schedule[i] = day
	}
	return schedule
}

func TestAggregator_TenDayScenario(t *testing.T) {
	schedule := tenDaySchedule(t)

	totals := training.Totals(schedule)
	assert.Equal(t, training.SportTotals{Swimming: 7, Cycling: 3, Running: 0, Total: 10}, totals)

	buckets := training.WeeklyBuckets(schedule)
	assert.Equal(t, []training.WeekBucket{
		{Label: "Week 1", Swimming: 7},
		{Label: "Week 2", Cycling: 3},
	}, buckets)

	split := training.SportSplit(schedule)
	assert.Equal(t, []training.SportShare{
		{Name: training.Swimming, Value: 7},
		{Name: training.Cycling, Value: 3},
	}, split)

	avg, err := training.AverageWeeklyHours(schedule)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, avg, 1e-9)
}

func TestTotals_SumOfSportsIsTotal(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 60; n++ {
		schedule := randomSchedule(r, n)
		totals := training.Totals(schedule)
		assert.Equal(t, totals.Swimming+totals.Cycling+totals.Running, totals.Total)
	}
}

func TestTotals_IgnoresReportedDayTotals(t *testing.T) {
	schedule := []training.TrainingDay{
		{Date: date(t, "2024-02-15"), SwimmingHours: 1, CyclingHours: 1, TotalHours: 5},
	}
	assert.Equal(t, 2.0, training.Totals(schedule).Total)
	assert.Equal(t, 5.0, training.ReportedTotalHours(schedule))
}

func TestAverageWeeklyHours(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 1; n < 50; n++ {
		schedule := randomSchedule(r, n)
		avg, err := training.AverageWeeklyHours(schedule)
		require.NoError(t, err)
		assert.Equal(t, training.Totals(schedule).Total/(float64(n)/7), avg)
	}
}

func TestAverageWeeklyHours_EmptySchedule(t *testing.T) {
	avg, err := training.AverageWeeklyHours(nil)
	assert.ErrorIs(t, err, training.ErrDivisionByZero)
	assert.Zero(t, avg)

	_, err = training.AverageWeeklyHours([]training.TrainingDay{})
	assert.ErrorIs(t, err, training.ErrDivisionByZero)
}

func TestWeeklyBuckets(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for n := 0; n < 60; n++ {
		schedule := randomSchedule(r, n)
		buckets := training.WeeklyBuckets(schedule)
		require.Len(t, buckets, (n+6)/7)

		var swim, bike, run float64
		for i, b := range buckets {
			swim += b.Swimming
			bike += b.Cycling
			run += b.Running
			assert.Equal(t, "Week "+strconv.Itoa(i+1), b.Label)
		}

		// quarter-hour values keep every partial sum exact
		totals := training.Totals(schedule)
		assert.Equal(t, totals.Swimming, swim)
		assert.Equal(t, totals.Cycling, bike)
		assert.Equal(t, totals.Running, run)
	}
}

func TestWeeklyBuckets_ByPositionNotCalendarWeek(t *testing.T) {
	// starts on a Saturday and skips a day; buckets still cut every 7 entries
	start := date(t, "2024-02-17")
	var schedule []training.TrainingDay
	for i := 0; i < 9; i++ {
		offset := i
		if i >= 3 {
			offset++
		}
		schedule = append(schedule, training.TrainingDay{Date: start.AddDays(offset), RunningHours: 1})
	}

	buckets := training.WeeklyBuckets(schedule)
	require.Len(t, buckets, 2)
	assert.Equal(t, 7.0, buckets[0].Running)
	assert.Equal(t, 2.0, buckets[1].Running)
}

func TestSportSplit_OmitsZeroSports(t *testing.T) {
	assert.Empty(t, training.SportSplit(nil))

	schedule := []training.TrainingDay{
		{Date: date(t, "2024-02-15"), RunningHours: 1.5},
		{Date: date(t, "2024-02-16"), SwimmingHours: 0.5},
	}
	assert.Equal(t, []training.SportShare{
		{Name: training.Swimming, Value: 0.5},
		{Name: training.Running, Value: 1.5},
	}, training.SportSplit(schedule))
}
