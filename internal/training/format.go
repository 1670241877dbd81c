package training

import "fmt"

// FormatHours renders an hour amount the way the calendar and cards show it:
// "0h", whole minutes below one hour, one decimal otherwise.
func FormatHours(hours float64) string {
	switch {
	case hours == 0:
		return "0h"
	case hours < 1:
		return fmt.Sprintf("%.0fmin", hours*60)
	default:
		return fmt.Sprintf("%.1fh", hours)
	}
}
