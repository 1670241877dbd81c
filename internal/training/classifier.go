package training

import (
	"fmt"
	"math"
	"strings"
)

const (
	MinDifficulty = 0
	MaxDifficulty = 1000
)

type DifficultyTier int

const (
	Beginner DifficultyTier = iota
	Intermediate
	Advanced
)

type tierInfo struct {
	min, max    int
	name        string
	description string
}

var tiers = map[DifficultyTier]tierInfo{
	Beginner:     {min: 0, max: 300, name: "Beginner", description: "First races, base preparation"},
	Intermediate: {min: 301, max: 700, name: "Intermediate", description: "Experienced amateur, regular starts"},
	Advanced:     {min: 701, max: 1000, name: "Advanced", description: "Elite level, ambitious goals"},
}

func DifficultyTiers() []DifficultyTier {
	return []DifficultyTier{Beginner, Intermediate, Advanced}
}

// DifficultyTierOf maps a difficulty score to its tier. Scores outside
// [0, 1000] are rejected, not clamped.
func DifficultyTierOf(score int) (DifficultyTier, error) {
	for _, tier := range DifficultyTiers() {
		info := tiers[tier]
		if score >= info.min && score <= info.max {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("difficulty %d not in [%d, %d]: %w", score, MinDifficulty, MaxDifficulty, ErrOutOfRange)
}

func ParseDifficultyTier(s string) (DifficultyTier, error) {
	for _, tier := range DifficultyTiers() {
		if strings.EqualFold(tiers[tier].name, strings.TrimSpace(s)) {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty level %q", s)
}

func (t DifficultyTier) String() string {
	if info, ok := tiers[t]; ok {
		return info.name
	}
	return fmt.Sprintf("DifficultyTier(%d)", int(t))
}

func (t DifficultyTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *DifficultyTier) UnmarshalText(text []byte) error {
	tier, err := ParseDifficultyTier(string(text))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

func (t DifficultyTier) Range() (lo, hi int) {
	info := tiers[t]
	return info.min, info.max
}

func (t DifficultyTier) Description() string {
	return tiers[t].description
}

// Preset is the score picked when a tier is selected directly: the middle
// of its range, rounded down.
func (t DifficultyTier) Preset() int {
	lo, hi := t.Range()
	return (lo + hi) / 2
}

type IntensityBand int

const (
	Rest IntensityBand = iota
	Light
	Moderate
	High
	VeryHigh
)

var bands = map[IntensityBand]struct {
	name        string
	description string
}{
	Rest:     {name: "Rest", description: "Recovery day"},
	Light:    {name: "Light", description: "Recovery session"},
	Moderate: {name: "Moderate", description: "Base aerobic work"},
	High:     {name: "High", description: "Intensive session"},
	VeryHigh: {name: "VeryHigh", description: "Maximum load"},
}

// IntensityBandOf classifies the total training hours of one day:
// 0 is Rest, (0,1] Light, (1,2.5] Moderate, (2.5,4] High, above 4 VeryHigh.
func IntensityBandOf(hours float64) (IntensityBand, error) {
	switch {
	case math.IsNaN(hours) || hours < 0:
		return 0, fmt.Errorf("daily hours %v: %w", hours, ErrOutOfRange)
	case hours == 0:
		return Rest, nil
	case hours <= 1:
		return Light, nil
	case hours <= 2.5:
		return Moderate, nil
	case hours <= 4:
		return High, nil
	default:
		return VeryHigh, nil
	}
}

func (b IntensityBand) String() string {
	if info, ok := bands[b]; ok {
		return info.name
	}
	return fmt.Sprintf("IntensityBand(%d)", int(b))
}

func (b IntensityBand) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *IntensityBand) UnmarshalText(text []byte) error {
	for band, info := range bands {
		if info.name == string(text) {
			*b = band
			return nil
		}
	}
	return fmt.Errorf("unknown intensity band %q", text)
}

func (b IntensityBand) Description() string {
	return bands[b].description
}
