package health

import "math"

// ComputeHealthScore estimates the remaining lung health percentage for a
// smoking habit. Non-smokers and zero duration score exactly 100.
func ComputeHealthScore(cigarettesPerDay, years, nicotineMg, tarMg float64) float64 {
	if cigarettesPerDay <= 0 || years <= 0 {
		return 100.0
	}

	baseDamage := cigarettesPerDay * years * 0.07
	nicotineFactor := (nicotineMg / 0.8) * 0.5
	tarFactor := (tarMg / 10.0) * 1.2
	totalDamage := baseDamage * (1 + nicotineFactor + tarFactor)

	logFactor := math.Log(1+years) / 2.0
	adjusted := totalDamage * (1 + logFactor)

	return clampPercent(100 - adjusted)
}

// Score applies ComputeHealthScore to a profile, using the reference
// cigarette for unset nicotine or tar.
func Score(p SmokingProfile) float64 {
	p = p.WithDefaults()
	return ComputeHealthScore(p.CigarettesPerDay, p.YearsSmoked, p.NicotineMg, p.TarMg)
}

// NormalizeScore clamps a caller supplied score into [0,100]. NaN and
// infinities are rejected.
func NormalizeScore(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return clampPercent(v), true
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
