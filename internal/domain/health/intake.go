package health

import "math"

// Intake summarizes how much nicotine and tar a profile has delivered.
type Intake struct {
	DailyNicotineMg  float64 `json:"dailyNicotineMg"`
	DailyTarMg       float64 `json:"dailyTarMg"`
	YearlyNicotineMg float64 `json:"yearlyNicotineMg"`
	YearlyTarMg      float64 `json:"yearlyTarMg"`
	TotalCigarettes  int64   `json:"totalCigarettes"`
	PackYears        float64 `json:"packYears"`
}

// IntakeFor computes intake figures for a profile.
func IntakeFor(p SmokingProfile) Intake {
	p = p.WithDefaults()
	daily := p.CigarettesPerDay
	return Intake{
		DailyNicotineMg:  daily * p.NicotineMg,
		DailyTarMg:       daily * p.TarMg,
		YearlyNicotineMg: daily * p.NicotineMg * 365,
		YearlyTarMg:      daily * p.TarMg * 365,
		TotalCigarettes:  int64(math.Floor(daily * 365 * p.YearsSmoked)),
		PackYears:        PackYears(daily, p.YearsSmoked),
	}
}

// PackYears is the usual exposure measure: packs of 20 per day times years.
func PackYears(cigarettesPerDay, years float64) float64 {
	return cigarettesPerDay / 20 * years
}
