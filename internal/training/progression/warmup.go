package progression

import "math"

const (
	warmupMinWorkingWeight = 20
	warmupRounding         = 2.5
)

var warmupRamp = []float64{0.4, 0.6}

type WarmupSet struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// Warmups derives the ramp-up sets done before the working sets.
// They are presentation only and never stored as workout sets.
func Warmups(workingWeight float64, reps int) []WarmupSet {
	if workingWeight <= warmupMinWorkingWeight {
		return []WarmupSet{}
	}

	warmups := make([]WarmupSet, 0, len(warmupRamp))
	for _, pct := range warmupRamp {
		warmups = append(warmups, WarmupSet{
			Weight: roundTo(workingWeight*pct, warmupRounding),
			Reps:   reps,
		})
	}
	return warmups
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}
