package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodefit/internal/models"
	"nodefit/internal/services"
)

func TestBadgeService_AwardIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	badge, err := env.badges.Award(ctx, 1, models.BadgeGoalCrusher)
	require.NoError(t, err)
	assert.Equal(t, models.BadgeGoalCrusher, badge.BadgeType)

	_, err = env.badges.Award(ctx, 1, models.BadgeGoalCrusher)
	assert.ErrorIs(t, err, services.ErrBadgeAlreadyHeld)

	_, err = env.badges.Award(ctx, 1, models.BadgeType("gold_star"))
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	badges, err := env.badges.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, badges, 1)
	assert.Equal(t, 1, env.events.count(services.EventBadgeAwarded))
}

func TestBadgeService_Grid(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.badges.Award(ctx, 1, models.BadgeFoodLogger)
	require.NoError(t, err)

	grid, err := env.badges.Grid(ctx, 1)
	require.NoError(t, err)
	require.Len(t, grid, len(models.BadgeTypes))
	for i, item := range grid {
		assert.Equal(t, models.BadgeTypes[i], item.Type)
		assert.NotEmpty(t, item.Name)
		assert.NotEmpty(t, item.Icon)
		if item.Type == models.BadgeFoodLogger {
			assert.True(t, item.Earned)
			assert.NotNil(t, item.EarnedAt)
		} else {
			assert.False(t, item.Earned, "%s", item.Type)
		}
	}

	info, ok := services.BadgeCatalog(models.BadgeFirstScan)
	require.True(t, ok)
	assert.Equal(t, "First Flame", info.Name)
}

func TestBadgeService_CheckStreak(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	awarded, err := env.badges.CheckStreak(ctx, 1, 6)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	awarded, err = env.badges.CheckStreak(ctx, 1, 30)
	require.NoError(t, err)
	assert.Len(t, awarded, 2)

	awarded, err = env.badges.CheckStreak(ctx, 1, 31)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestMealService_FoodLoggerAtTenMeals(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := models.MealOwner{ProfileID: 4, UserID: 1}

	for i := 1; i < services.FoodLoggerMeals; i++ {
		require.NoError(t, env.meals.Log(ctx, owner, &models.Meal{Calories: 100}))
	}
	badges, err := env.badges.List(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, badges)

	require.NoError(t, env.meals.Log(ctx, owner, &models.Meal{Calories: 100}))
	require.NoError(t, env.meals.Log(ctx, owner, &models.Meal{Calories: 100}))
	badges, err = env.badges.List(ctx, 4)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, models.BadgeFoodLogger, badges[0].BadgeType)
	assert.Equal(t, 11, env.events.count(services.EventMealLogged))
}
