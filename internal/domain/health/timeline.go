package health

// TimelinePoint is the health score after a whole number of years.
type TimelinePoint struct {
	Year   int     `json:"year"`
	Health float64 `json:"health"`
}

// Timeline returns the health score for every year from 0 to the profile's
// (truncated) smoking duration.
func Timeline(p SmokingProfile) []TimelinePoint {
	p = p.WithDefaults()
	last := int(p.YearsSmoked)
	out := make([]TimelinePoint, 0, last+1)
	for year := 0; year <= last; year++ {
		out = append(out, TimelinePoint{
			Year:   year,
			Health: ComputeHealthScore(p.CigarettesPerDay, float64(year), p.NicotineMg, p.TarMg),
		})
	}
	return out
}

// ProgressionYears picks the years shown in a damage progression. Long
// histories are split into five equal steps, short ones show every year, and
// there are always at least two steps.
func ProgressionYears(years float64) []int {
	maxYears := int(years)
	var steps []int
	if maxYears > 5 {
		stepSize := float64(maxYears) / 5
		steps = append(steps, 0)
		for i := 1; i < 5; i++ {
			steps = append(steps, int(float64(i)*stepSize))
		}
		steps = append(steps, maxYears)
	} else {
		for y := 0; y <= maxYears; y++ {
			steps = append(steps, y)
		}
	}
	if len(steps) < 2 {
		steps = []int{0, max(1, maxYears)}
	}
	return steps
}
