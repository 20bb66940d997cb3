package cost

import "math"

// DefaultPackSize is used when a pack size is missing or non-positive.
const DefaultPackSize = 20

const (
	priceInflation   = 0.03
	investmentReturn = 0.05
)

// FinancialImpact summarises what a smoking habit costs.
type FinancialImpact struct {
	Daily               float64 `json:"daily"`
	Monthly             float64 `json:"monthly"`
	Yearly              float64 `json:"yearly"`
	Lifetime            float64 `json:"lifetime"`
	TotalWithInflation  float64 `json:"totalWithInflation"`
	PotentialInvestment float64 `json:"potentialInvestment"`
}

// Impact computes spending for a habit. Inflation compounds 3% a year on the
// pack price; the investment figure assumes each year's spend earns 5% a year
// until the end of the period.
func Impact(cigarettesPerDay, years, pricePerPack float64, packSize int) FinancialImpact {
	if packSize <= 0 {
		packSize = DefaultPackSize
	}
	daily := cigarettesPerDay / float64(packSize) * pricePerPack
	yearly := daily * 365
	out := FinancialImpact{
		Daily:    daily,
		Monthly:  daily * 30,
		Yearly:   yearly,
		Lifetime: yearly * years,
	}
	for y := 0; y < int(years); y++ {
		spend := yearly * math.Pow(1+priceInflation, float64(y))
		out.TotalWithInflation += spend
		out.PotentialInvestment += spend * math.Pow(1+investmentReturn, years-float64(y))
	}
	return out
}

// PricePerCigarette derives the unit price from a pack.
func PricePerCigarette(pricePerPack float64, packSize int) float64 {
	if packSize <= 0 {
		packSize = DefaultPackSize
	}
	return pricePerPack / float64(packSize)
}

// TotalCigarettes is the lifetime count for a steady habit.
func TotalCigarettes(cigarettesPerDay, years float64) float64 {
	return cigarettesPerDay * 365 * years
}

// QuitSavings is the money kept by not smoking over a few horizons.
type QuitSavings struct {
	Month     float64 `json:"month"`
	Year      float64 `json:"year"`
	FiveYears float64 `json:"fiveYears"`
}

// Savings projects what quitting saves.
func Savings(cigarettesPerDay, pricePerCigarette float64) QuitSavings {
	daily := cigarettesPerDay * pricePerCigarette
	yearly := daily * 365
	return QuitSavings{
		Month:     daily * 30,
		Year:      yearly,
		FiveYears: yearly * 5,
	}
}
