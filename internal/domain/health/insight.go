package health

// Phase names a step of the damage progression narrative.
type Phase string

const (
	PhaseHealthy  Phase = "healthy"
	PhaseEarly    Phase = "early"
	PhaseModerate Phase = "moderate"
	PhaseSevere   Phase = "severe"
	PhaseCritical Phase = "critical"
)

// LifetimeRisk holds the lifetime disease probability ranges shown for a phase.
type LifetimeRisk struct {
	LungCancer   string `json:"lungCancer"`
	COPD         string `json:"copd"`
	ThroatCancer string `json:"throatCancer"`
}

// Insight is the medical narrative attached to a progression step.
type Insight struct {
	Phase       Phase        `json:"phase"`
	Description string       `json:"description"`
	Details     []string     `json:"details"`
	Research    string       `json:"research"`
	Recovery    string       `json:"recovery"`
	Risk        LifetimeRisk `json:"risk"`
}

// PhaseFor places step index of total steps into a phase. The first step is
// always healthy; the rest split by quarter using integer division, so short
// progressions can skip the early phase.
func PhaseFor(index, total int) Phase {
	switch {
	case index <= 0:
		return PhaseHealthy
	case index < total/4:
		return PhaseEarly
	case index < total/2:
		return PhaseModerate
	case index < 3*total/4:
		return PhaseSevere
	default:
		return PhaseCritical
	}
}

// InsightFor returns the narrative for step index of total steps.
func InsightFor(index, total int) Insight {
	return insights[PhaseFor(index, total)]
}

var insights = map[Phase]Insight{
	PhaseHealthy: {
		Phase:       PhaseHealthy,
		Description: "Healthy lungs: pink tissue, clear bronchi, no tar deposits.",
		Details: []string{
			"Around 300 million alveoli exchange gas efficiently",
			"Adult vital capacity of 4-6 litres with over 95% oxygen exchange efficiency",
			"Cilia intact and clearing inhaled particles",
			"Macrophages and immune defences working normally",
		},
		Research: "Healthy non-smokers typically have 15-20% more vital capacity than smokers of the same age.",
		Recovery: "Staying smoke-free keeps the lungs in this state.",
		Risk:     LifetimeRisk{LungCancer: "< 1%", COPD: "< 2%", ThroatCancer: "< 0.5%"},
	},
	PhaseEarly: {
		Phase:       PhaseEarly,
		Description: "Early damage: small airway epithelial changes, mild inflammation, more mucus.",
		Details: []string{
			"Bronchial lining thickens to about 1.5 times that of a non-smoker",
			"Mild morning cough with occasional phlegm, about twice as frequent as non-smokers",
			"Ciliary motion slows by a third and clearance drops by about 40%",
			"IL-6, IL-8 and TNF-alpha levels 50-70% above non-smokers",
		},
		Research: "Even 3-5 cigarettes a day lower small airway function measurements by about 10%.",
		Recovery: "One to two months after quitting, cilia recover close to normal and coughing eases markedly.",
		Risk:     LifetimeRisk{LungCancer: "3-5%", COPD: "8-12%", ThroatCancer: "2-3%"},
	},
	PhaseModerate: {
		Phase:       PhaseModerate,
		Description: "Moderate damage: pigmented macrophages accumulate, respiratory bronchiolitis, early centrilobular emphysema.",
		Details: []string{
			"Small airways narrow by about 40% and mucus secretion doubles or triples",
			"Productive smoker's cough, about three times as frequent as non-smokers",
			"FEV1 falls 20-30% while small airway resistance triples",
			"Moderate systemic inflammation with markers five times non-smoker levels",
		},
		Research: "After 10-15 years of smoking airway resistance rises by 40% and elastic recoil drops by 20%.",
		Recovery: "Six to twelve months after quitting bronchitis symptoms ease by more than half, though early emphysema may not fully reverse.",
		Risk:     LifetimeRisk{LungCancer: "8-12%", COPD: "15-25%", ThroatCancer: "5-8%"},
	},
	PhaseSevere: {
		Phase:       PhaseSevere,
		Description: "Severe damage: diffuse emphysema, airway fibrosis, thickened bronchial walls, black tar deposits.",
		Details: []string{
			"Emphysema occupies 15-30% of lung volume and bronchial walls are two to three times thicker",
			"Chronic cough and breathlessness with exercise capacity down 40-50%",
			"Resting oxygen saturation may fall below 95%, lower still on exertion",
			"Local immune defences broken down, raising infection risk three to four times",
		},
		Research: "About 60% of people with more than 20 years of smoking develop COPD and 18% of them need long-term oxygen.",
		Recovery: "Quitting slows lung function decline to the normal ageing rate, but existing emphysema and fibrosis rarely recover.",
		Risk:     LifetimeRisk{LungCancer: "15-20%", COPD: "30-40%", ThroatCancer: "8-12%"},
	},
	PhaseCritical: {
		Phase:       PhaseCritical,
		Description: "Critical damage: extensive emphysema and bullae, honeycombing, non-functional tissue, heavy pigmentation and fibrosis.",
		Details: []string{
			"Over 70% of lung tissue irreversibly changed with bullae filling 25-40% of lung volume",
			"Flattened diaphragm and hyperinflated chest triple the work of breathing",
			"Arterial oxygen below 60 mmHg with carbon dioxide retention",
			"Raised pulmonary artery pressure straining the right heart, progressing toward cor pulmonale",
		},
		Research: "Five-year survival in severe COPD is around 50%, comparable to several cancers.",
		Recovery: "Most damage is irreversible at this point, yet quitting still slows deterioration and reduces acute exacerbations.",
		Risk:     LifetimeRisk{LungCancer: "20-25%", COPD: "40-60%", ThroatCancer: "12-18%"},
	},
}
