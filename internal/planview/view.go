package planview

import (
	"fmt"
	"math"
	"time"

	"github.com/fortranov/sportproject/internal/training"

	log "github.com/sirupsen/logrus"
)

// MonthLayout is the layout of the month query parameter and of MonthView.Month.
const MonthLayout = "2006-01"

// reported and derived totals closer than this are considered equal
const totalsTolerance = 0.01

// WeekdayHeader matches the Monday-first grid.
var WeekdayHeader = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// View answers read-only queries against one immutable plan snapshot.
type View struct {
	plan  *training.TrainingPlan
	index *training.DayIndex
}

func New(plan *training.TrainingPlan) (*View, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan view: %w", training.ErrNotFound)
	}
	return &View{
		plan:  plan,
		index: training.NewDayIndex(plan.TrainingDays),
	}, nil
}

func (v *View) Plan() *training.TrainingPlan {
	return v.plan
}

type CalendarCell struct {
	Date           training.Date           `json:"date"`
	InCurrentMonth bool                    `json:"in_current_month"`
	IsToday        bool                    `json:"is_today"`
	Training       *training.TrainingDay   `json:"training,omitempty"`
	Intensity      *training.IntensityBand `json:"intensity,omitempty"`
	HoursLabel     string                  `json:"hours_label,omitempty"`
}

type MonthView struct {
	Month    string         `json:"month"`
	Weekdays []string       `json:"weekdays"`
	Cells    []CalendarCell `json:"cells"`
}

// Weeks splits the cells into rows of seven.
func (m MonthView) Weeks() [][]CalendarCell {
	weeks := make([][]CalendarCell, 0, len(m.Cells)/7)
	for i := 0; i+7 <= len(m.Cells); i += 7 {
		weeks = append(weeks, m.Cells[i:i+7])
	}
	return weeks
}

// Grid renders the calendar month containing month.
func (v *View) Grid(month training.Date, now time.Time) (MonthView, error) {
	dates := training.MonthGrid(month)
	cells := make([]CalendarCell, 0, len(dates))
	for _, d := range dates {
		cell := CalendarCell{
			Date:           d,
			InCurrentMonth: training.SameMonth(d, month),
			IsToday:        training.IsToday(d, now),
		}
		if day, ok := v.index.Find(d); ok {
			band, err := training.IntensityBandOf(day.TotalHours)
			if err != nil {
				return MonthView{}, fmt.Errorf("calendar day %s: %w", d, err)
			}
			cell.Training = &day
			cell.Intensity = &band
			cell.HoursLabel = training.FormatHours(day.TotalHours)
		}
		cells = append(cells, cell)
	}

	return MonthView{
		Month:    training.MonthStart(month).Time().Format(MonthLayout),
		Weekdays: WeekdayHeader,
		Cells:    cells,
	}, nil
}

type Summary struct {
	CompetitionDate    training.Date           `json:"competition_date"`
	WeeksUntil         int                     `json:"weeks_until"`
	Difficulty         int                     `json:"difficulty"`
	Tier               training.DifficultyTier `json:"tier"`
	TierDescription    string                  `json:"tier_description"`
	TrainingDays       int                     `json:"training_days"`
	TotalHours         float64                 `json:"total_hours"`
	AverageWeeklyHours float64                 `json:"average_weekly_hours"`
	Totals             training.SportTotals    `json:"totals"`
}

// Summary computes the plan card. TotalHours is the sum of the stored daily
// totals; Totals and AverageWeeklyHours are re-derived from the sport hours.
// It fails as a whole, never returning a partially filled card.
func (v *View) Summary(now time.Time) (Summary, error) {
	tier, err := training.DifficultyTierOf(v.plan.Difficulty)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	avg, err := training.AverageWeeklyHours(v.plan.TrainingDays)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}

	totals := training.Totals(v.plan.TrainingDays)
	reported := training.ReportedTotalHours(v.plan.TrainingDays)
	if math.Abs(reported-totals.Total) > totalsTolerance {
		log.Debugf("plan %d: stored total hours %.2f differ from sport hours sum %.2f", v.plan.ID, reported, totals.Total)
	}

	return Summary{
		CompetitionDate:    v.plan.CompetitionDate,
		WeeksUntil:         training.WeeksUntil(v.plan.CompetitionDate, now),
		Difficulty:         v.plan.Difficulty,
		Tier:               tier,
		TierDescription:    tier.Description(),
		TrainingDays:       len(v.plan.TrainingDays),
		TotalHours:         reported,
		AverageWeeklyHours: avg,
		Totals:             totals,
	}, nil
}

type Chart struct {
	Split  []training.SportShare `json:"split"`
	Weekly []training.WeekBucket `json:"weekly"`
}

func (v *View) Chart() Chart {
	return Chart{
		Split:  training.SportSplit(v.plan.TrainingDays),
		Weekly: training.WeeklyBuckets(v.plan.TrainingDays),
	}
}

type DayDetail struct {
	Day                  training.TrainingDay   `json:"day"`
	Intensity            training.IntensityBand `json:"intensity"`
	IntensityDescription string                 `json:"intensity_description"`
	HoursLabel           string                 `json:"hours_label"`
}

// Day looks up a single date of the plan.
func (v *View) Day(date training.Date) (DayDetail, error) {
	day, ok := v.index.Find(date)
	if !ok {
		return DayDetail{}, fmt.Errorf("no training on %s: %w", date, training.ErrNotFound)
	}
	band, err := training.IntensityBandOf(day.TotalHours)
	if err != nil {
		return DayDetail{}, fmt.Errorf("day %s: %w", date, err)
	}
	return DayDetail{
		Day:                  day,
		Intensity:            band,
		IntensityDescription: band.Description(),
		HoursLabel:           training.FormatHours(day.TotalHours),
	}, nil
}
