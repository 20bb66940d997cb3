package health

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgressionYears(t *testing.T) {
	require.Equal(t, []int{0, 2, 4, 6, 8, 10}, ProgressionYears(10))
	require.Equal(t, []int{0, 1, 2, 4, 5, 7}, ProgressionYears(7))
	require.Equal(t, []int{0, 1, 2, 3}, ProgressionYears(3))
	require.Equal(t, []int{0, 1}, ProgressionYears(1))
	require.Equal(t, []int{0, 1}, ProgressionYears(0))
	require.Equal(t, []int{0, 1}, ProgressionYears(0.5))
}

func TestTimelineCoversEveryYear(t *testing.T) {
	points := Timeline(SmokingProfile{CigarettesPerDay: 10, YearsSmoked: 5})
	require.Len(t, points, 6)
	require.Equal(t, TimelinePoint{Year: 0, Health: 100}, points[0])
	require.InDelta(t, 82.08, points[5].Health, 0.01)
	for i := 1; i < len(points); i++ {
		require.Less(t, points[i].Health, points[i-1].Health)
	}
}

func TestPhaseFor(t *testing.T) {
	// six steps: 6/4 = 1, 6/2 = 3, 18/4 = 4
	phases := make([]Phase, 0, 6)
	for i := 0; i < 6; i++ {
		phases = append(phases, PhaseFor(i, 6))
	}
	require.Equal(t, []Phase{PhaseHealthy, PhaseModerate, PhaseModerate, PhaseSevere, PhaseCritical, PhaseCritical}, phases)

	require.Equal(t, PhaseEarly, PhaseFor(1, 8))
	require.Equal(t, PhaseCritical, PhaseFor(1, 2))
}

func TestInsightForCarriesRisk(t *testing.T) {
	first := InsightFor(0, 6)
	require.Equal(t, PhaseHealthy, first.Phase)
	require.Equal(t, "< 1%", first.Risk.LungCancer)

	last := InsightFor(5, 6)
	require.Equal(t, "40-60%", last.Risk.COPD)
	require.Len(t, last.Details, 4)
}

func TestIntakeFor(t *testing.T) {
	in := IntakeFor(SmokingProfile{CigarettesPerDay: 10, YearsSmoked: 5})
	require.InDelta(t, 8.0, in.DailyNicotineMg, 1e-9)
	require.InDelta(t, 100.0, in.DailyTarMg, 1e-9)
	require.InDelta(t, 2920.0, in.YearlyNicotineMg, 1e-9)
	require.Equal(t, int64(18250), in.TotalCigarettes)
	require.InDelta(t, 2.5, in.PackYears, 1e-9)
}
