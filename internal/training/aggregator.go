package training

import (
	"fmt"
)

// DaysPerBucket is the number of schedule entries per weekly chart bucket.
const DaysPerBucket = 7

type SportTotals struct {
	Swimming float64 `json:"swimming"`
	Cycling  float64 `json:"cycling"`
	Running  float64 `json:"running"`
	// Total is the sum of the three sport sums, never of the per-day totals.
	Total float64 `json:"total"`
}

func (t SportTotals) Hours(sport Sport) float64 {
	switch sport {
	case Swimming:
		return t.Swimming
	case Cycling:
		return t.Cycling
	case Running:
		return t.Running
	default:
		return 0
	}
}

func Totals(schedule []TrainingDay) SportTotals {
	var totals SportTotals
	for _, day := range schedule {
		totals.Swimming += day.SwimmingHours
		totals.Cycling += day.CyclingHours
		totals.Running += day.RunningHours
	}
	totals.Total = totals.Swimming + totals.Cycling + totals.Running
	return totals
}

// ReportedTotalHours sums the per-day totals as reported by the plan service.
// Summary headers use it; charts use Totals.
func ReportedTotalHours(schedule []TrainingDay) float64 {
	var total float64
	for _, day := range schedule {
		total += day.TotalHours
	}
	return total
}

// AverageWeeklyHours is Totals(schedule).Total spread over len(schedule)/7 weeks.
func AverageWeeklyHours(schedule []TrainingDay) (float64, error) {
	if len(schedule) == 0 {
		return 0, fmt.Errorf("average weekly hours of an empty schedule: %w", ErrDivisionByZero)
	}
	weeks := float64(len(schedule)) / DaysPerBucket
	return Totals(schedule).Total / weeks, nil
}

type WeekBucket struct {
	Label    string  `json:"week"`
	Swimming float64 `json:"swimming"`
	Cycling  float64 `json:"cycling"`
	Running  float64 `json:"running"`
}

// WeeklyBuckets groups the schedule into consecutive runs of seven entries
// by position. Bucket N holds entries [7N, 7N+7); the last one may be short.
// Buckets do not follow calendar weeks: a schedule starting mid-week or with
// missing days is still cut every seven entries. The schedule is expected
// to be in chronological order already and is not sorted here.
func WeeklyBuckets(schedule []TrainingDay) []WeekBucket {
	buckets := make([]WeekBucket, 0, (len(schedule)+DaysPerBucket-1)/DaysPerBucket)
	for i, day := range schedule {
		n := i / DaysPerBucket
		if n == len(buckets) {
			buckets = append(buckets, WeekBucket{Label: fmt.Sprintf("Week %d", n+1)})
		}
		buckets[n].Swimming += day.SwimmingHours
		buckets[n].Cycling += day.CyclingHours
		buckets[n].Running += day.RunningHours
	}
	return buckets
}

type SportShare struct {
	Name  Sport   `json:"name"`
	Value float64 `json:"value"`
}

// SportSplit returns per-sport hour sums in swimming, cycling, running order,
// leaving out sports with no hours at all.
func SportSplit(schedule []TrainingDay) []SportShare {
	totals := Totals(schedule)
	split := make([]SportShare, 0, len(Sports()))
	for _, sport := range Sports() {
		if v := totals.Hours(sport); v > 0 {
			split = append(split, SportShare{Name: sport, Value: v})
		}
	}
	return split
}
