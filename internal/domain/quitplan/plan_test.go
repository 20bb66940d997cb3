package quitplan

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
)

func TestDependenceFor(t *testing.T) {
	require.Equal(t, DependenceMild, DependenceFor(10, 2, 0))
	require.Equal(t, DependenceModerate, DependenceFor(10, 2, 1))
	require.Equal(t, DependenceModerate, DependenceFor(20, 10, 2))
	require.Equal(t, DependenceSevere, DependenceFor(21, 1, 0))
	require.Equal(t, DependenceSevere, DependenceFor(5, 11, 0))
}

func TestWeeklyTargetsMild(t *testing.T) {
	weeks := WeeklyTargets(10, DependenceMild, 1.0)
	require.Len(t, weeks, 4)

	counts := make([]int, len(weeks))
	for i, w := range weeks {
		counts[i] = w.Cigarettes
	}
	// round(2.5) is 2 (half to even); week 3 is past 70% and cuts 3.
	require.Equal(t, []int{8, 6, 3, 0}, counts)

	require.InDelta(t, 0.8, weeks[0].NicotineMg, 1e-9)
	require.Equal(t, "light", weeks[0].Product)
	require.InDelta(t, 0.4, weeks[2].NicotineMg, 1e-9)
	require.Equal(t, "extra light", weeks[2].Product)
	require.Zero(t, weeks[3].NicotineMg)
	require.Equal(t, 20, weeks[0].ReductionPercent)
	require.Equal(t, 100, weeks[3].ReductionPercent)
}

func TestWeeklyTargetsSevereAccelerates(t *testing.T) {
	weeks := WeeklyTargets(30, DependenceSevere, 1.5)
	require.Len(t, weeks, 12)
	counts := make([]int, len(weeks))
	for i, w := range weeks {
		counts[i] = w.Cigarettes
	}
	require.Equal(t, []int{27, 24, 21, 18, 15, 12, 9, 6, 2, 0, 0, 0}, counts)
	for i := 1; i < len(weeks); i++ {
		require.LessOrEqual(t, weeks[i].NicotineMg, weeks[i-1].NicotineMg)
	}
}

func TestWeeklyTargetsNeverBelowMinimumNicotine(t *testing.T) {
	for _, w := range WeeklyTargets(3, DependenceModerate, 0.5) {
		if w.Cigarettes > 0 {
			require.GreaterOrEqual(t, w.NicotineMg, minNicotineMg)
		}
	}
}

func TestScheduleEvenSpacing(t *testing.T) {
	got := Schedule(8)
	require.Len(t, got, 8)
	require.Equal(t, "8:46", got[0])
	require.Equal(t, "21:13", got[7])
	require.Nil(t, Schedule(0))
}

func TestScheduleKeyTimes(t *testing.T) {
	got := Schedule(27)
	require.Len(t, got, 27)
	require.Equal(t, "7:00", got[0])
	require.Equal(t, "7:00", got[1])
	require.Contains(t, got, "21:00")
}

func TestProductFor(t *testing.T) {
	require.Equal(t, "ultra light or nicotine replacement", ProductFor(0.2))
	require.Equal(t, "extra light", ProductFor(0.5))
	require.Equal(t, "light", ProductFor(0.8))
	require.Equal(t, "regular", ProductFor(1.0))
	require.Equal(t, "strong", ProductFor(1.1))
}

func TestGenerate(t *testing.T) {
	plan, err := Generate(Request{
		CigarettesPerDay: 15,
		YearsSmoked:      6,
		QuitAttempts:     1,
		NicotineLevel:    NicotineHigh,
		Triggers:         []Trigger{TriggerStress, TriggerCoffee, TriggerStress},
	})
	require.NoError(t, err)
	require.Equal(t, DependenceModerate, plan.Dependence)
	require.Equal(t, 8, plan.DurationWeeks)
	require.InDelta(t, 1.5, plan.NicotineMg, 1e-9)
	require.Len(t, plan.Triggers, 2)
	require.Len(t, plan.Triggers[0].Strategies, 3)
	require.Equal(t, "nicotine patch (high dose)", plan.NRT[0].Product)
	require.Len(t, plan.NRT, 3)
	require.Len(t, plan.Schedule, plan.Weeks[0].Cigarettes)
	require.InDelta(t, DefaultPricePerCigarette, plan.PricePerCigarette, 1e-9)
	require.InDelta(t, 15*5*30, plan.Savings.Month, 1e-9)
	require.Len(t, plan.TrackingApps, 4)
}

func TestGenerateMildSkipsReplacementTherapy(t *testing.T) {
	plan, err := Generate(Request{CigarettesPerDay: 5, YearsSmoked: 1})
	require.NoError(t, err)
	require.Equal(t, DependenceMild, plan.Dependence)
	require.Equal(t, NicotineMedium, plan.NicotineLevel)
	require.Empty(t, plan.NRT)
	require.Empty(t, plan.Triggers)
}

func TestGenerateRejectsInvalidRequest(t *testing.T) {
	_, err := Generate(Request{CigarettesPerDay: 0, YearsSmoked: 1})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = Generate(Request{CigarettesPerDay: 5, Triggers: []Trigger{"weather"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = Generate(Request{CigarettesPerDay: 5, NicotineLevel: "extreme"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestServiceAppliesConfiguredPrice(t *testing.T) {
	svc := NewService(Config{PricePerCigarette: 8}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	plan, err := svc.Plan(context.Background(), Request{CigarettesPerDay: 10, YearsSmoked: 3})
	require.NoError(t, err)
	require.InDelta(t, 8, plan.PricePerCigarette, 1e-9)
	require.InDelta(t, 10*8*365, plan.Savings.Year, 1e-9)
}
