package analytics

import (
	"fmt"
	"math"
)

// round1 rounds to one decimal place, halves away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundMinutes(v float64) int {
	return int(math.Round(v))
}

// formatWorkDuration renders fractional hours as H:MM, e.g. 7.5 -> "7:30".
func formatWorkDuration(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	whole := math.Floor(hours)
	minutes := math.Round((hours - whole) * 60)
	if minutes >= 60 {
		whole++
		minutes -= 60
	}
	return fmt.Sprintf("%d:%02d", int(whole), int(minutes))
}

func formatLag(days int) string {
	if days == 1 {
		return "+1 Day"
	}
	return fmt.Sprintf("+%d Days", days)
}

func formatFlowBalance(imports, exports int) string {
	return fmt.Sprintf("%d Imports / %d Exports", imports, exports)
}
