package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodefit/internal/models"
	"nodefit/internal/services"
)

func TestTaskService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.tasks.Add(ctx, 1, "   ")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	task, err := env.tasks.Add(ctx, 1, " Stretch for 10 minutes ")
	require.NoError(t, err)
	assert.Equal(t, "Stretch for 10 minutes", task.Text)

	_, err = env.tasks.Toggle(ctx, 2, task.ID)
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
	_, err = env.tasks.Toggle(ctx, 1, 999)
	assert.ErrorIs(t, err, services.ErrNotFound)

	toggled, err := env.tasks.Toggle(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	removed, err := env.tasks.ClearCompleted(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestTaskService_Generate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.gen.reply("```json\n[\"Drink 8 glasses of water\", \"\", \"Walk 7000 steps\"]\n```")

	tasks, err := env.tasks.Generate(ctx, &models.Profile{ID: 3, Name: "Ann", Goal: "Weight Loss"})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	stored, err := env.tasks.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Contains(t, env.gen.prompts[0][0].Text, "Goal: Weight Loss")
}

func TestDraftService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, ok, err := env.drafts.Load(ctx, "onboarding")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, env.drafts.Save(ctx, "onboarding", []byte(`{"name":"Ann","age":"31"}`)))
	require.NoError(t, env.drafts.Save(ctx, "onboarding", []byte(`{"name":"Ann"}`)))
	require.NoError(t, env.drafts.Save(ctx, "health_scan", []byte(`{"steps":"9000"}`)))

	fields, ok, err := env.drafts.Load(ctx, "onboarding")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"Ann"}`, string(fields), "save overwrites instead of merging")

	require.NoError(t, env.drafts.Clear(ctx, "onboarding"))
	_, ok, err = env.drafts.Load(ctx, "onboarding")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = env.drafts.Load(ctx, "health_scan")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, env.drafts.Save(ctx, "", []byte(`{}`)), services.ErrInvalidInput)
	assert.ErrorIs(t, env.drafts.Save(ctx, "x", []byte(`{broken`)), services.ErrInvalidInput)
}

func TestReportService_Scan(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	profile := &models.Profile{UserID: 1, Name: "Ann"}
	require.NoError(t, env.profiles.Create(ctx, profile))

	env.gen.reply("not json")
	_, err := env.reports.Scan(ctx, profile, services.ScanInput{}, nil)
	assert.ErrorIs(t, err, services.ErrMalformedResponse)
	_, err = env.reports.Latest(ctx, profile.ID)
	assert.ErrorIs(t, err, services.ErrNotFound, "nothing stored on failure")

	env.gen.reply(`{"healthSnapshot":{"status":"Fair"}}`, `{"healthSnapshot":{"status":"Good"}}`)
	first, err := env.reports.Scan(ctx, profile, services.ScanInput{}, nil)
	require.NoError(t, err)
	second, err := env.reports.Scan(ctx, profile, services.ScanInput{}, nil)
	require.NoError(t, err)

	latest, err := env.reports.Latest(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, models.ReportSchemaVersion, latest.SchemaVersion)

	all, err := env.reports.List(ctx, profile.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[1].ID)

	badges, err := env.badges.List(ctx, profile.ID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, models.BadgeFirstScan, badges[0].BadgeType)
}
