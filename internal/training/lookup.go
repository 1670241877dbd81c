package training

// FindDay returns the schedule entry for the given calendar date.
// When the schedule holds more than one entry for a date the first one
// in sequence order wins.
func FindDay(schedule []TrainingDay, date Date) (TrainingDay, bool) {
	for _, day := range schedule {
		if day.Date.Equal(date) {
			return day, true
		}
	}
	return TrainingDay{}, false
}

// DayIndex answers FindDay for many dates without rescanning the schedule.
// It keeps the same first-entry-wins policy.
type DayIndex struct {
	byDate map[Date]int
	days   []TrainingDay
}

func NewDayIndex(schedule []TrainingDay) *DayIndex {
	idx := &DayIndex{
		byDate: make(map[Date]int, len(schedule)),
		days:   schedule,
	}
	for i, day := range schedule {
		if _, seen := idx.byDate[day.Date]; seen {
			continue
		}
		idx.byDate[day.Date] = i
	}
	return idx
}

func (idx *DayIndex) Find(date Date) (TrainingDay, bool) {
	i, ok := idx.byDate[date]
	if !ok {
		return TrainingDay{}, false
	}
	return idx.days[i], true
}
