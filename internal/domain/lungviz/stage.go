package lungviz

import "math"

// Stage is the damage ordinal that gates overlay layers. Lower health never
// yields a lower stage.
type Stage int

const (
	StageEarly Stage = iota + 1
	StageMild
	StageModerate
	StageSevere
	StageCritical
)

var stageNames = map[Stage]string{
	StageEarly:    "early",
	StageMild:     "mild",
	StageModerate: "moderate",
	StageSevere:   "severe",
	StageCritical: "critical",
}

// String implements fmt.Stringer.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// StageFor derives the damage stage as 5 - floor(health/20), clamped to [1,5].
func StageFor(health float64) Stage {
	s := 5 - int(math.Floor(clampHealth(health)/20))
	switch {
	case s < int(StageEarly):
		return StageEarly
	case s > int(StageCritical):
		return StageCritical
	default:
		return Stage(s)
	}
}

// SeedFor returns the PRNG seed used for a health value: its integer part.
func SeedFor(health float64) int64 {
	return int64(math.Floor(clampHealth(health)))
}

func clampHealth(h float64) float64 {
	switch {
	case math.IsNaN(h), h < 0:
		return 0
	case h > 100:
		return 100
	default:
		return h
	}
}
