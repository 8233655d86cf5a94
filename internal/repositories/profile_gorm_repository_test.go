package repositories_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nodefit/internal/models"
	"nodefit/internal/repositories"
)

func seedProfileWithDependents(t *testing.T, db *gorm.DB, userID uint) *models.Profile {
	t.Helper()
	ctx := context.Background()

	profile := &models.Profile{UserID: userID, Name: "Ann", Goal: "Weight Loss"}
	require.NoError(t, repositories.NewGORMProfileRepository(db).Create(ctx, profile))

	pid := profile.ID
	require.NoError(t, repositories.NewGORMReportRepository(db).Create(ctx, &models.Report{ProfileID: pid}))
	_, err := repositories.NewGORMStreakRepository(db).GetOrCreate(ctx, pid)
	require.NoError(t, err)
	_, _, err = repositories.NewGORMBadgeRepository(db).Award(ctx, pid, models.BadgeFirstScan)
	require.NoError(t, err)
	owner := models.MealOwner{ProfileID: pid}
	require.NoError(t, repositories.NewGORMMealRepository(db).Create(ctx, &models.Meal{OwnerKey: owner.Key(), ProfileID: &pid, Calories: 300}))
	require.NoError(t, repositories.NewGORMCycleRepository(db).Create(ctx, &models.Cycle{ProfileID: pid, StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, repositories.NewGORMTaskRepository(db).Create(ctx, &models.Task{ProfileID: pid, Text: "Walk"}))
	return profile
}

func countByProfile(t *testing.T, db *gorm.DB, model interface{}, profileID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where("profile_id = ?", profileID).Count(&n).Error)
	return n
}

func TestGORMProfileRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProfileRepository(newTestDB(t))

	age := 31
	profile := &models.Profile{UserID: 1, Name: "Ann", Age: &age, Medications: []string{"metformin"}}
	require.NoError(t, repo.Create(ctx, profile))
	assert.Equal(t, models.ProfileSchemaVersion, profile.SchemaVersion)

	second := &models.Profile{UserID: 1, Name: "Second"}
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID, "first profile wins")
	assert.Equal(t, []string{"metformin"}, got.Medications)
	require.NotNil(t, got.Age)
	assert.Equal(t, 31, *got.Age)

	got.Name = "Ann B"
	got.Age = nil
	require.NoError(t, repo.Update(ctx, got))
	reread, err := repo.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann B", reread.Name)
	assert.Nil(t, reread.Age)
	assert.Equal(t, uint(1), reread.UserID)

	err = repo.Update(ctx, &models.Profile{ID: 999, Name: "ghost"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.GetByUserID(ctx, 42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProfileRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMProfileRepository(db)

	doomed := seedProfileWithDependents(t, db, 1)
	survivor := seedProfileWithDependents(t, db, 2)

	require.NoError(t, repo.Delete(ctx, doomed.ID))

	for _, model := range []interface{}{&models.Report{}, &models.Streak{}, &models.Badge{}, &models.Meal{}, &models.Cycle{}, &models.Task{}} {
		assert.Zero(t, countByProfile(t, db, model, doomed.ID), "%T left behind", model)
		assert.Equal(t, int64(1), countByProfile(t, db, model, survivor.ID), "%T of other profile touched", model)
	}
	_, err := repo.GetByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Delete(ctx, doomed.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProfileRepository_DeleteRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMProfileRepository(db)
	profile := seedProfileWithDependents(t, db, 1)

	// Break the last step of the cascade so the transaction must roll back.
	require.NoError(t, db.Migrator().DropTable(&models.Task{}))
	err := repo.Delete(ctx, profile.ID)
	require.Error(t, err)

	assert.Equal(t, int64(1), countByProfile(t, db, &models.Report{}, profile.ID))
	assert.Equal(t, int64(1), countByProfile(t, db, &models.Meal{}, profile.ID))
	_, err = repo.GetByID(ctx, profile.ID)
	assert.NoError(t, err)
}

func TestGORMReportRepository_Ordering(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMReportRepository(newTestDB(t))

	_, err := repo.Latest(ctx, 7)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	for _, status := range []string{"Fair", "Good", "Needs Attention"} {
		r := &models.Report{ProfileID: 7, Content: models.HealthReport{HealthSnapshot: models.HealthSnapshot{Status: status}}}
		require.NoError(t, repo.Create(ctx, r))
	}

	reports, err := repo.ListByProfile(ctx, 7)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "Needs Attention", reports[0].Content.HealthSnapshot.Status)
	assert.Equal(t, "Fair", reports[2].Content.HealthSnapshot.Status)

	latest, err := repo.Latest(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, reports[0].ID, latest.ID)
}

func TestGORMBadgeRepository_AwardIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMBadgeRepository(newTestDB(t))

	badge, created, err := repo.Award(ctx, 7, models.BadgeFoodLogger)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, badge)

	again, created, err := repo.Award(ctx, 7, models.BadgeFoodLogger)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, again)

	_, created, err = repo.Award(ctx, 8, models.BadgeFoodLogger)
	require.NoError(t, err)
	assert.True(t, created)

	badges, err := repo.ListByProfile(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, badges, 1)
}

func TestGORMBadgeRepository_UniqueIndexBacksAward(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Badge{ProfileID: 3, BadgeType: models.BadgeStreak7, EarnedAt: time.Now()}).Error)
	err := db.Create(&models.Badge{ProfileID: 3, BadgeType: models.BadgeStreak7, EarnedAt: time.Now()}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestGORMMealRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMMealRepository(newTestDB(t))

	temp := models.MealOwner{UserID: 3}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Meal{OwnerKey: temp.Key(), Calories: 100 * (i + 1)}))
	}

	meals, err := repo.ListByOwner(ctx, temp.Key(), 3)
	require.NoError(t, err)
	require.Len(t, meals, 3)
	assert.Equal(t, 500, meals[0].Calories)

	all, err := repo.ListByOwner(ctx, temp.Key(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	profileOwner := models.MealOwner{ProfileID: 9, UserID: 3}
	moved, err := repo.ReassignOwner(ctx, temp.Key(), profileOwner)
	require.NoError(t, err)
	assert.Equal(t, int64(5), moved)

	count, err := repo.CountByOwner(ctx, profileOwner.Key())
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	reassigned, err := repo.ListByOwner(ctx, profileOwner.Key(), 1)
	require.NoError(t, err)
	require.NotNil(t, reassigned[0].ProfileID)
	assert.Equal(t, uint(9), *reassigned[0].ProfileID)
}

func TestGORMTaskRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMTaskRepository(newTestDB(t))

	first := &models.Task{ProfileID: 1, Text: "Drink water"}
	second := &models.Task{ProfileID: 1, Text: "Walk 10k steps"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	tasks, err := repo.ListByProfile(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Walk 10k steps", tasks[0].Text)

	toggled, err := repo.Toggle(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = repo.Toggle(ctx, second.ID)
	require.NoError(t, err)
	toggled, err = repo.Toggle(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	_, err = repo.Toggle(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	removed, err := repo.DeleteCompleted(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	tasks, err = repo.ListByProfile(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, second.ID, tasks[0].ID)
}

func TestGORMCycleRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMCycleRepository(newTestDB(t))

	older := &models.Cycle{ProfileID: 1, StartDate: time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC)}
	newer := &models.Cycle{ProfileID: 1, StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Notes: "cramps"}
	// Insert out of order to prove ordering is by start date.
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, older))

	cycles, err := repo.ListByProfile(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cycles, 2)
	assert.Equal(t, newer.ID, cycles[0].ID)

	end := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	updated, err := repo.Update(ctx, newer.ID, models.CyclePatch{EndDate: &end})
	require.NoError(t, err)
	require.NotNil(t, updated.EndDate)
	assert.True(t, end.Equal(*updated.EndDate))
	assert.Equal(t, "cramps", updated.Notes)

	_, err = repo.Update(ctx, 999, models.CyclePatch{EndDate: &end})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestKeyValueRepositories(t *testing.T) {
	ctx := context.Background()
	impls := map[string]repositories.KeyValueRepository{
		"gorm":   repositories.NewGORMKeyValueRepository(newTestDB(t)),
		"memory": repositories.NewMockKeyValueRepository(),
	}
	for name, repo := range impls {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Get(ctx, "draft:onboarding")
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			require.NoError(t, repo.Put(ctx, "draft:onboarding", json.RawMessage(`{"name":"Ann","age":"31"}`)))
			require.NoError(t, repo.Put(ctx, "draft:onboarding", json.RawMessage(`{"name":"Bea"}`)))

			got, err := repo.Get(ctx, "draft:onboarding")
			require.NoError(t, err)
			assert.JSONEq(t, `{"name":"Bea"}`, string(got))

			require.NoError(t, repo.Delete(ctx, "draft:onboarding"))
			require.NoError(t, repo.Delete(ctx, "draft:onboarding"))
			_, err = repo.Get(ctx, "draft:onboarding")
			assert.ErrorIs(t, err, repositories.ErrNotFound)
		})
	}
}
