package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodefit/internal/models"
	"nodefit/internal/services"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPredictCycle_NoCycles(t *testing.T) {
	p := services.PredictCycle(nil, time.Now())
	assert.Equal(t, services.PhaseNone, p.Phase)
	assert.Nil(t, p.NextStart)
	assert.Nil(t, p.DaysUntil)
	assert.NotEmpty(t, p.Tips)
}

func TestPredictCycle_Phases(t *testing.T) {
	start := day(2024, 5, 1)
	cycles := []models.Cycle{{StartDate: start}}

	tests := []struct {
		elapsed int
		phase   services.CyclePhase
	}{
		{0, services.PhaseMenstrual},
		{5, services.PhaseMenstrual},
		{6, services.PhaseFollicular},
		{13, services.PhaseFollicular},
		{14, services.PhaseOvulation},
		{16, services.PhaseOvulation},
		{17, services.PhaseLuteal},
		{28, services.PhaseLuteal},
		{29, services.PhaseLateLuteal},
		{60, services.PhaseLateLuteal},
	}
	for _, tt := range tests {
		now := start.AddDate(0, 0, tt.elapsed).Add(15 * time.Hour)
		p := services.PredictCycle(cycles, now)
		assert.Equal(t, tt.phase, p.Phase, "day %d", tt.elapsed)
		require.NotNil(t, p.DaysSinceStart)
		assert.Equal(t, tt.elapsed, *p.DaysSinceStart)
		require.NotNil(t, p.DaysUntil)
		assert.Equal(t, services.CycleLength-tt.elapsed, *p.DaysUntil)
		assert.Equal(t, tt.elapsed > services.CycleLength, p.Overdue)
		assert.Equal(t, services.PhaseTips(tt.phase), p.Tips)
	}
}

func TestPredictCycle_NextStartAndDueToday(t *testing.T) {
	cycles := []models.Cycle{{StartDate: day(2024, 4, 12)}}
	p := services.PredictCycle(cycles, time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC))
	require.NotNil(t, p.NextStart)
	assert.True(t, day(2024, 5, 10).Equal(*p.NextStart))
	assert.Equal(t, 0, *p.DaysUntil)
	assert.False(t, p.Overdue)
}

func TestPredictCycle_UsesLatestStart(t *testing.T) {
	cycles := []models.Cycle{
		{ID: 1, StartDate: day(2024, 3, 1)},
		{ID: 2, StartDate: day(2024, 5, 1)},
		{ID: 3, StartDate: day(2024, 4, 2)},
	}
	p := services.PredictCycle(cycles, day(2024, 5, 3))
	assert.Equal(t, services.PhaseMenstrual, p.Phase)
	assert.True(t, day(2024, 5, 29).Equal(*p.NextStart))
}

func TestPredictCycle_FutureStart(t *testing.T) {
	cycles := []models.Cycle{{StartDate: day(2024, 6, 1)}}
	p := services.PredictCycle(cycles, day(2024, 5, 25))
	assert.Equal(t, services.PhaseNone, p.Phase)
	assert.Nil(t, p.DaysSinceStart)
	require.NotNil(t, p.DaysUntil)
	assert.Equal(t, 35, *p.DaysUntil)
}

func TestCycleService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.cycles.Log(ctx, 1, time.Time{}, nil, "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	end := day(2024, 4, 1)
	_, err = env.cycles.Log(ctx, 1, day(2024, 4, 5), &end, "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	cycle, err := env.cycles.Log(ctx, 1, time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC), nil, "light")
	require.NoError(t, err)
	assert.True(t, day(2024, 5, 1).Equal(cycle.StartDate))

	p, err := env.cycles.Predict(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, services.PhaseFollicular, p.Phase)
	assert.Equal(t, 19, *p.DaysUntil)

	_, err = env.cycles.End(ctx, 2, cycle.ID)
	assert.ErrorIs(t, err, services.ErrPermissionDenied)

	ended, err := env.cycles.End(ctx, 1, cycle.ID)
	require.NoError(t, err)
	require.NotNil(t, ended.EndDate)
	assert.True(t, day(2024, 5, 10).Equal(*ended.EndDate))

	notes := "heavy"
	updated, err := env.cycles.Update(ctx, 1, cycle.ID, models.CyclePatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "heavy", updated.Notes)

	_, err = env.cycles.Update(ctx, 1, 999, models.CyclePatch{Notes: &notes})
	assert.ErrorIs(t, err, services.ErrNotFound)
}
