package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodefit/internal/models"
	"nodefit/internal/services"
	"nodefit/pkg/weather"
)

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, services.ExtractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `["x"]`, services.ExtractJSON("  ```\n[\"x\"]```  "))
	assert.Equal(t, `{"a":1}`, services.ExtractJSON(`{"a":1}`))
}

func TestInsightService_HealthReport(t *testing.T) {
	env := newTestEnv(t)
	env.gen.reply("```json\n" + `{"healthSnapshot":{"summary":"Solid","status":"Good"},"metrics":[{"label":"BMI","value":"22","status":"Normal","description":"ok"}],"weeklyPlan":[{"day":"Monday","focus":"Cardio"}]}` + "\n```")

	age := 29
	profile := &models.Profile{Name: "Ann", Age: &age, Goal: "Better Sleep", Medications: []string{"iron"}}
	snap := &services.EnvironmentSnapshot{
		Available:  true,
		Weather:    &weather.Conditions{TemperatureC: 18, Description: "Overcast"},
		AirQuality: &weather.AirQuality{Index: 100, Category: "Moderate"},
	}
	report, err := env.insights.HealthReport(context.Background(), profile, services.ScanInput{Steps: "8000"}, snap)
	require.NoError(t, err)
	assert.Equal(t, "Good", report.HealthSnapshot.Status)
	require.Len(t, report.Metrics, 1)
	assert.Equal(t, "Monday", report.WeeklyPlan[0].Day)

	require.Len(t, env.gen.prompts, 1)
	prompt := env.gen.prompts[0][1].Text
	assert.Contains(t, prompt, "Name: Ann")
	assert.Contains(t, prompt, "Age: 29")
	assert.Contains(t, prompt, "Daily Steps: 8000")
	assert.Contains(t, prompt, "Medications: iron")
	assert.Contains(t, prompt, "AQI: 100 (Moderate)")
	assert.Contains(t, prompt, "Better Sleep")
}

func TestInsightService_AnalyzeFoodMentionsAllergies(t *testing.T) {
	env := newTestEnv(t)
	env.gen.reply(`{"foodName":"Pad Thai","ingredients":["noodles","peanuts"],"estimatedCalories":650,"allergyWarning":{"hasAllergen":true,"allergens":["peanuts"],"severity":"High"}}`)

	analysis, err := env.insights.AnalyzeFood(context.Background(), &models.Profile{Allergies: "peanuts"}, "image/jpeg", "Zm9vZA==")
	require.NoError(t, err)
	assert.Equal(t, "Pad Thai", analysis.FoodName)
	assert.True(t, analysis.AllergyWarning.HasAllergen)

	parts := env.gen.prompts[0]
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].Text, "ALLERGIC to: peanuts")
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/jpeg", parts[1].InlineData.MimeType)
}

func TestInsightService_Failures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	profile := &models.Profile{Name: "Ann"}

	env.gen.reply("Sure! Here are your tasks: drink water.")
	_, err := env.insights.DailyTasks(ctx, profile)
	assert.ErrorIs(t, err, services.ErrMalformedResponse)

	env.gen.err = errors.New("connection reset")
	_, err = env.insights.DailyTasks(ctx, profile)
	assert.ErrorIs(t, err, services.ErrExternalService)

	unconfigured := services.NewInsightService(nil, nil)
	_, err = unconfigured.DashboardInsights(ctx, profile, services.DashboardMetrics{}, nil)
	assert.ErrorIs(t, err, services.ErrExternalService)
}

func TestInsightService_DashboardInsights(t *testing.T) {
	env := newTestEnv(t)
	env.gen.reply(`{"insights":[{"type":"tip","title":"Hydrate","description":"Drink more."}],"dos":["Walk"],"donts":["Skip sleep"],"weatherAdvice":null}`)

	out, err := env.insights.DashboardInsights(context.Background(), &models.Profile{Name: "Ann"},
		services.DashboardMetrics{HeartRate: 72, HeartRateTrend: 3, Steps: 5000, StepsGoal: 10000},
		&weather.Conditions{TemperatureC: 30, HumidityPct: 70, WindKMH: 5})
	require.NoError(t, err)
	require.Len(t, out.Insights, 1)
	assert.Nil(t, out.WeatherAdvice)

	prompt := env.gen.prompts[0][0].Text
	assert.Contains(t, prompt, "(+3% vs yesterday)")
	assert.Contains(t, prompt, "Steps: 5000 (50% of goal)")
	assert.Contains(t, prompt, "30°C, 70% humidity")
}
