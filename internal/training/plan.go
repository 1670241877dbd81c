package training

import (
	"strings"
	"time"
)

type Sport string

const (
	Swimming Sport = "swimming"
	Cycling  Sport = "cycling"
	Running  Sport = "running"
)

// Sports lists the disciplines in display order.
func Sports() []Sport {
	return []Sport{Swimming, Cycling, Running}
}

type TrainingDay struct {
	Date          Date    `json:"date"`
	SwimmingHours float64 `json:"swimming_hours"`
	CyclingHours  float64 `json:"cycling_hours"`
	RunningHours  float64 `json:"running_hours"`
	// TotalHours is as reported by the plan service; it is not re-derived here.
	TotalHours float64 `json:"total_hours"`
}

func (d TrainingDay) Hours(sport Sport) float64 {
	switch sport {
	case Swimming:
		return d.SwimmingHours
	case Cycling:
		return d.CyclingHours
	case Running:
		return d.RunningHours
	default:
		return 0
	}
}

type TrainingPlan struct {
	ID              int64         `json:"id"`
	CompetitionDate Date          `json:"competition_date"`
	Difficulty      int           `json:"difficulty"`
	TrainingDays    []TrainingDay `json:"training_days"`
}

const DefaultDifficulty = 500

type CreatePlanRequest struct {
	UIN             string `json:"uin"`
	CompetitionDate Date   `json:"competition_date"`
	Difficulty      int    `json:"difficulty"`
}

// Validate checks the request before it is submitted. The competition date
// may not lie before the calendar date of now.
func (r CreatePlanRequest) Validate(now time.Time) error {
	if strings.TrimSpace(r.UIN) == "" {
		return &ValidationError{Field: "uin", Reason: "required"}
	}
	if r.CompetitionDate.IsZero() {
		return &ValidationError{Field: "competition_date", Reason: "required"}
	}
	if r.CompetitionDate.Before(DateOf(now)) {
		return &ValidationError{Field: "competition_date", Reason: "must not be in the past"}
	}
	if _, err := DifficultyTierOf(r.Difficulty); err != nil {
		return err
	}
	return nil
}
