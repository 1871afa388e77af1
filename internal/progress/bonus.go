package progress

import (
	"fmt"
	"math"
)

// BonusThreshold is the overall score that unlocks the monthly bonus.
const BonusThreshold = 0.85

type Bonus struct {
	Unlocked  bool    `json:"unlocked"`
	Threshold float64 `json:"threshold"`
	Gap       float64 `json:"gap"`
}

// Evaluate thresholds the overall score. Gap is how much score is still
// missing, 0 once unlocked.
func Evaluate(overall float64) Bonus {
	return Bonus{
		Unlocked:  overall >= BonusThreshold,
		Threshold: BonusThreshold,
		Gap:       math.Max(0, BonusThreshold-overall),
	}
}

func (b Bonus) State() string {
	if b.Unlocked {
		return "unlocked"
	}
	return "locked"
}

// FormatPercent renders a ratio with one decimal, e.g. 0.849 -> "84.9%".
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
