package health

const lowestDescription = "Critical: severe and irreversible lung damage"

var descriptionBands = []band[string]{
	{95, "Healthy, no visible damage"},
	{85, "Mildly damaged, light tar deposits"},
	{75, "Moderately damaged, alveoli show clear injury"},
	{65, "Significantly damaged, reduced lung function and obvious tar deposits"},
	{50, "Severely damaged, breathing noticeably impaired with rising risk of chronic cough"},
	{35, "Extremely damaged, lung function badly limited with high risk of chronic disease"},
	{20, "Dangerous, lung function extremely limited and lung disease likely present"},
}

// Describe maps a health percentage to a short narrative of lung condition.
func Describe(health float64) string {
	return lookup(descriptionBands, health, lowestDescription)
}

var cancerRiskBands = []band[float64]{
	{90, 1.5},
	{80, 5},
	{70, 10},
	{60, 15},
	{40, 20},
}

const maxCancerRiskMultiplier = 25

// Impact names reported in RiskMetrics.OtherImpacts.
const (
	ImpactCardiovascular = "cardiovascular_disease"
	ImpactStroke         = "stroke"
	ImpactCOPD           = "copd"
	ImpactOralCancer     = "oral_cancer"
	ImpactLaryngeal      = "laryngeal_cancer"
)

type impactDivisor struct {
	name    string
	divisor float64
}

// Ordered so summaries list conditions the same way every time.
var impactDivisors = []impactDivisor{
	{ImpactCardiovascular, 20},
	{ImpactStroke, 25},
	{ImpactCOPD, 15},
	{ImpactOralCancer, 30},
	{ImpactLaryngeal, 35},
}

// RiskMetrics are relative risk figures derived from a health percentage.
type RiskMetrics struct {
	LungFunction                 float64            `json:"lungFunction"`
	CancerRiskMultiplier         float64            `json:"cancerRiskMultiplier"`
	LifeExpectancyReductionYears float64            `json:"lifeExpectancyReductionYears"`
	OtherImpacts                 map[string]float64 `json:"otherImpacts"`
}

// RiskMetricsFor computes the risk figures for a health percentage.
func RiskMetricsFor(health float64) RiskMetrics {
	damage := 100 - health
	impacts := make(map[string]float64, len(impactDivisors))
	for _, d := range impactDivisors {
		impacts[d.name] = 1 + damage/d.divisor
	}
	return RiskMetrics{
		LungFunction:                 health,
		CancerRiskMultiplier:         lookup(cancerRiskBands, health, maxCancerRiskMultiplier),
		LifeExpectancyReductionYears: damage / 100 * 15,
		OtherImpacts:                 impacts,
	}
}

// Impact is one entry of OtherImpacts with its severity label.
type Impact struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
	Level      string  `json:"level"`
}

// Impacts lists OtherImpacts in a stable order with severity labels.
func (m RiskMetrics) Impacts() []Impact {
	out := make([]Impact, 0, len(impactDivisors))
	for _, d := range impactDivisors {
		v, ok := m.OtherImpacts[d.name]
		if !ok {
			continue
		}
		out = append(out, Impact{Name: d.name, Multiplier: v, Level: ImpactLevel(v)})
	}
	return out
}

// ImpactLevel labels a relative risk multiplier.
func ImpactLevel(multiplier float64) string {
	switch {
	case multiplier > 3:
		return "high"
	case multiplier > 1.5:
		return "moderate"
	default:
		return "mild"
	}
}
