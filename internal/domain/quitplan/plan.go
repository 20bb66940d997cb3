package quitplan

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yanqian/lung-visualizer/internal/domain/cost"
	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
)

// DefaultPricePerCigarette assumes a 100 dollar pack of 20.
const DefaultPricePerCigarette = 5.0

const (
	wakeHour      = 7
	sleepHour     = 23
	accelerateAt  = 0.7
	accelerateBy  = 1.5
	nicotineShare = 0.8
	minNicotineMg = 0.1
)

var keySmokingHours = []float64{7, 10, 12, 15, 18, 21}

var validate = validator.New()

// Generate builds a cessation plan.
func Generate(req Request) (Plan, error) {
	if err := validate.Struct(req); err != nil {
		return Plan{}, apperrors.Wrap(apperrors.CodeInvalidInput, describeValidation(err), err)
	}
	if req.NicotineLevel == "" {
		req.NicotineLevel = NicotineMedium
	}
	if req.PricePerCigarette <= 0 {
		req.PricePerCigarette = DefaultPricePerCigarette
	}

	dep := DependenceFor(req.CigarettesPerDay, req.YearsSmoked, req.QuitAttempts)
	level := nicotineMg[req.NicotineLevel]
	weeks := WeeklyTargets(req.CigarettesPerDay, dep, level)

	plan := Plan{
		Dependence:        dep,
		DurationWeeks:     len(weeks),
		NicotineLevel:     req.NicotineLevel,
		NicotineMg:        level,
		Weeks:             weeks,
		FirstWeekTips:     firstWeekTips(level, weeks[0]),
		Triggers:          strategiesFor(req.Triggers),
		Schedule:          Schedule(weeks[0].Cigarettes),
		Savings:           cost.Savings(float64(req.CigarettesPerDay), req.PricePerCigarette),
		TrackingApps:      append([]string(nil), trackingApps...),
		DiaryFields:       append([]string(nil), diaryFields...),
		PricePerCigarette: req.PricePerCigarette,
	}
	if dep != DependenceMild {
		plan.NRT = append([]NRTSuggestion{patchDosage[req.NicotineLevel]}, commonNRT...)
	}
	return plan, nil
}

// DependenceFor grades dependence from the habit and past quit attempts.
func DependenceFor(cigarettesPerDay int, years float64, attempts int) Dependence {
	switch {
	case cigarettesPerDay <= 10 && years <= 2 && attempts == 0:
		return DependenceMild
	case cigarettesPerDay <= 20 && years <= 10 && attempts <= 2:
		return DependenceModerate
	default:
		return DependenceSevere
	}
}

func planShape(dep Dependence) (weeks int, rate float64) {
	switch dep {
	case DependenceMild:
		return 4, 0.25
	case DependenceModerate:
		return 8, 0.15
	default:
		return 12, 0.10
	}
}

// WeeklyTargets steps the daily count down to zero, cutting faster over the
// last 30% of the plan. Nicotine strength falls at 80% of the count's pace.
func WeeklyTargets(cigarettesPerDay int, dep Dependence, nicotineLevel float64) []WeeklyTarget {
	total, rate := planShape(dep)
	base := float64(cigarettesPerDay)
	remaining := cigarettesPerDay
	out := make([]WeeklyTarget, 0, total)
	for week := 1; week <= total; week++ {
		target := 0
		if week < total {
			reduction := max(1, roundInt(base*rate))
			if float64(week) > float64(total)*accelerateAt {
				reduction = max(1, roundInt(float64(reduction)*accelerateBy))
			}
			remaining = max(0, remaining-reduction)
			target = remaining
		}
		ratio := 1 - float64(target)/base
		mg := 0.0
		if target > 0 {
			mg = math.Max(minNicotineMg, round1(nicotineLevel*(1-ratio*nicotineShare)))
		}
		out = append(out, WeeklyTarget{
			Week:             week,
			Cigarettes:       target,
			NicotineMg:       mg,
			Product:          ProductFor(mg),
			ReductionPercent: roundInt(ratio * 100),
		})
	}
	return out
}

// ProductFor names the cigarette or replacement matching a nicotine dose.
func ProductFor(mg float64) string {
	switch {
	case mg <= 0.2:
		return "ultra light or nicotine replacement"
	case mg <= 0.5:
		return "extra light"
	case mg <= 0.8:
		return "light"
	case mg <= 1.0:
		return "regular"
	default:
		return "strong"
	}
}

// Schedule spreads the first week's cigarettes over waking hours (7:00 to
// 23:00). Above sixteen a day, fixed key times are kept and the rest are
// spread evenly.
func Schedule(count int) []string {
	if count <= 0 {
		return nil
	}
	waking := float64(sleepHour - wakeHour)
	var hours []float64
	if float64(count) <= waking {
		interval := waking / float64(count+1)
		for i := 0; i < count; i++ {
			hours = append(hours, wakeHour+interval*float64(i+1))
		}
	} else {
		hours = append(hours, keySmokingHours...)
		extra := count - len(keySmokingHours)
		for i := 0; i < extra; i++ {
			hours = append(hours, wakeHour+float64(i)*waking/float64(extra))
		}
		sort.Float64s(hours)
	}
	out := make([]string, len(hours))
	for i, h := range hours {
		whole := int(h)
		out[i] = fmt.Sprintf("%d:%02d", whole, int((h-float64(whole))*60))
	}
	return out
}

func firstWeekTips(level float64, first WeeklyTarget) []string {
	return []string{
		fmt.Sprintf("Switch from %.1fmg cigarettes to %s (%.1fmg)", level, first.Product, first.NicotineMg),
		"Consider a nicotine patch to keep intake under control",
		"Log the number of cigarettes and their nicotine content every day",
		"Stretch the time between cigarettes",
	}
}

func strategiesFor(triggers []Trigger) []TriggerPlan {
	out := make([]TriggerPlan, 0, len(triggers))
	seen := make(map[Trigger]bool, len(triggers))
	for _, t := range triggers {
		strategies, ok := triggerStrategies[t]
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, TriggerPlan{Trigger: t, Strategies: append([]string(nil), strategies...)})
	}
	return out
}

// roundInt and round1 round half to even.
func roundInt(v float64) int { return int(math.RoundToEven(v)) }

func round1(v float64) float64 { return math.RoundToEven(v*10) / 10 }

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid quit plan request"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s is invalid (%s)", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
