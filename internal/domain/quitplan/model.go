package quitplan

import "github.com/yanqian/lung-visualizer/internal/domain/cost"

// NicotineLevel is the strength of the cigarettes currently smoked.
type NicotineLevel string

const (
	NicotineLow    NicotineLevel = "low"
	NicotineMedium NicotineLevel = "medium"
	NicotineHigh   NicotineLevel = "high"
)

// Trigger is a situation that prompts smoking.
type Trigger string

const (
	TriggerStress     Trigger = "stress"
	TriggerSocial     Trigger = "social"
	TriggerAfterMeals Trigger = "after_meals"
	TriggerBoredom    Trigger = "boredom"
	TriggerAlcohol    Trigger = "alcohol"
	TriggerCoffee     Trigger = "coffee"
	TriggerMorning    Trigger = "morning"
	TriggerCraving    Trigger = "craving"
)

// Dependence grades nicotine dependence.
type Dependence string

const (
	DependenceMild     Dependence = "mild"
	DependenceModerate Dependence = "moderate"
	DependenceSevere   Dependence = "severe"
)

// Request carries the habit details a plan is built from.
type Request struct {
	CigarettesPerDay  int           `json:"cigarettesPerDay" validate:"gte=1,lte=100"`
	YearsSmoked       float64       `json:"yearsSmoked" validate:"gte=0,lte=70"`
	QuitAttempts      int           `json:"quitAttempts" validate:"gte=0,lte=20"`
	NicotineLevel     NicotineLevel `json:"nicotineLevel,omitempty" validate:"omitempty,oneof=low medium high"`
	Triggers          []Trigger     `json:"triggers,omitempty" validate:"dive,oneof=stress social after_meals boredom alcohol coffee morning craving"`
	PricePerCigarette float64       `json:"pricePerCigarette,omitempty" validate:"omitempty,gt=0"`
}

// WeeklyTarget is one row of the step-down schedule.
type WeeklyTarget struct {
	Week             int     `json:"week"`
	Cigarettes       int     `json:"cigarettes"`
	NicotineMg       float64 `json:"nicotineMg"`
	Product          string  `json:"product"`
	ReductionPercent int     `json:"reductionPercent"`
}

// TriggerPlan lists coping strategies for one trigger.
type TriggerPlan struct {
	Trigger    Trigger  `json:"trigger"`
	Strategies []string `json:"strategies"`
}

// NRTSuggestion is a nicotine replacement product with dosing guidance.
type NRTSuggestion struct {
	Product string `json:"product"`
	Dosage  string `json:"dosage"`
}

// Plan is a personalised cessation plan.
type Plan struct {
	Dependence        Dependence       `json:"dependence"`
	DurationWeeks     int              `json:"durationWeeks"`
	NicotineLevel     NicotineLevel    `json:"nicotineLevel"`
	NicotineMg        float64          `json:"nicotineMg"`
	Weeks             []WeeklyTarget   `json:"weeks"`
	FirstWeekTips     []string         `json:"firstWeekTips"`
	Triggers          []TriggerPlan    `json:"triggers"`
	Schedule          []string         `json:"schedule"`
	NRT               []NRTSuggestion  `json:"nrt,omitempty"`
	Savings           cost.QuitSavings `json:"savings"`
	TrackingApps      []string         `json:"trackingApps"`
	DiaryFields       []string         `json:"diaryFields"`
	PricePerCigarette float64          `json:"pricePerCigarette"`
}
