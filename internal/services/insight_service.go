package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nodefit/internal/models"
	"nodefit/pkg/gemini"
	"nodefit/pkg/logger"
	"nodefit/pkg/weather"
)

// Generator produces text from a multi-part prompt.
type Generator interface {
	GenerateContent(ctx context.Context, parts ...gemini.Part) (string, error)
}

const reportInstruction = `You are nodeFit AI, a privacy-first health intelligence engine acting as a responsible digital health companion.
Analyze the user's lifestyle, medical background, wearable data and environmental context to generate personalized, preventive and easy-to-understand health insights.
Never give a medical diagnosis. Use clear, human-friendly language.

Return ONLY a valid JSON object with this structure and no markdown around it:
{
  "healthSnapshot": {"summary": "Short summary of health state", "status": "Good/Fair/Needs Attention"},
  "metrics": [{"label": "BMI", "value": "24.5", "status": "Normal", "description": "Within healthy range."}],
  "recommendations": [{"title": "Increase Zone 2 Cardio", "reason": "Why", "impact": "High/Medium/Low"}],
  "lifestyleOptimization": {"sleep": "Tips", "screenTime": "Tips", "stress": "Tips"},
  "nutrition": {"suggestions": ["Oatmeal"], "hydration": "Drink 3L water"},
  "dosAndDonts": {"dos": ["Walk 10k steps"], "donts": ["Eat late night"]},
  "environmental": {"suggestion": "AQI advice", "alertLevel": "Low/Medium/High"},
  "weeklyPlan": [{"day": "Monday", "focus": "Cardio + Lower Body"}],
  "dashboardSummary": ["Keep up the walking routine."]
}`

// ScanInput is the wearable and free-text data supplied with a health scan.
type ScanInput struct {
	Steps          string `json:"steps"`
	DistanceKM     string `json:"distance_km"`
	Calories       string `json:"calories"`
	HeartRate      string `json:"heart_rate"`
	SleepData      string `json:"sleep_data"`
	StressLevel    string `json:"stress_level"`
	MedicalReports string `json:"medical_reports"`
}

// DashboardMetrics are the headline numbers shown on the dashboard.
type DashboardMetrics struct {
	HeartRate      int     `json:"heart_rate"`
	HeartRateTrend int     `json:"heart_rate_trend"`
	Steps          int     `json:"steps"`
	StepsGoal      int     `json:"steps_goal"`
	SleepHours     float64 `json:"sleep_hours"`
	DeepSleepHours float64 `json:"deep_sleep_hours"`
	ActiveMinutes  int     `json:"active_minutes"`
}

// Insight is a single dashboard card.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DashboardInsights is the reply to the dashboard prompt.
type DashboardInsights struct {
	Insights      []Insight `json:"insights"`
	Dos           []string  `json:"dos"`
	Donts         []string  `json:"donts"`
	WeatherAdvice *string   `json:"weatherAdvice"`
}

// InsightService builds prompts for the AI collaborator and decodes its
// JSON replies.
type InsightService struct {
	gen    Generator
	logger *zap.Logger
}

// NewInsightService creates a new InsightService. A nil generator makes every
// call fail with ErrExternalService.
func NewInsightService(gen Generator, log *zap.Logger) *InsightService {
	return &InsightService{gen: gen, logger: logger.OrNop(log)}
}

// ExtractJSON strips markdown code fences and surrounding whitespace.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func (s *InsightService) generate(ctx context.Context, out interface{}, parts ...gemini.Part) error {
	if s.gen == nil {
		return fmt.Errorf("AI service is not configured: %w", ErrExternalService)
	}
	text, err := s.gen.GenerateContent(ctx, parts...)
	if err != nil {
		s.logger.Warn("AI request failed", zap.Error(err))
		return fmt.Errorf("%v: %w", err, ErrExternalService)
	}
	if err := json.Unmarshal([]byte(ExtractJSON(text)), out); err != nil {
		s.logger.Warn("AI reply is not valid JSON", zap.Error(err), zap.Int("length", len(text)))
		return fmt.Errorf("%v: %w", err, ErrMalformedResponse)
	}
	return nil
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func intOr(v *int, fallback string) string {
	if v == nil {
		return fallback
	}
	return strconv.Itoa(*v)
}

func floatOr(v *float64, fallback string) string {
	if v == nil {
		return fallback
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func goalOf(p *models.Profile) string {
	if p == nil {
		return "General Wellness"
	}
	return orDefault(p.Goal, "General Wellness")
}

// HealthReport asks for a full health report for profile.
func (s *InsightService) HealthReport(ctx context.Context, p *models.Profile, scan ScanInput, env *EnvironmentSnapshot) (*models.HealthReport, error) {
	const ns = "Not specified"
	const nt = "Not tracked"
	habits := strings.TrimSpace(strings.Join([]string{p.SmokingStatus, p.AlcoholFrequency, p.SubstanceUse}, " "))

	var b strings.Builder
	b.WriteString("ANALYZE THIS USER DATA AND GENERATE A COMPREHENSIVE HEALTH REPORT:\n\n")
	fmt.Fprintf(&b, "=== USER PROFILE ===\nName: %s\nAge: %s\nGender: %s\nHeight: %s cm\nWeight: %s kg\nTarget Weight: %s kg\nBlood Group: %s\n\n",
		orDefault(p.Name, "User"), intOr(p.Age, ns), orDefault(p.Gender, ns), floatOr(p.HeightCM, ns),
		floatOr(p.WeightKG, ns), floatOr(p.TargetWeightKG, ns), orDefault(p.BloodGroup, ns))
	fmt.Fprintf(&b, "=== LIFESTYLE ===\nFood Preference: %s\nMeals Per Day: %s\nWater: %s glasses/day\nCaffeine: %s cups/day\nActivity Level: %s\nExercise Days: %s/week\nSleep Hours: %s\nSleep Quality: %s\nScreen Time: %s hours/day\nHeadphone Usage: %s hours/day\nSmoking/Alcohol: %s\n\n",
		orDefault(p.DietType, ns), intOr(p.MealsPerDay, ns), intOr(p.WaterIntakeGlasses, ns), intOr(p.CaffeineCups, ns),
		orDefault(p.ActivityLevel, ns), intOr(p.ExerciseDaysPerWeek, ns), floatOr(p.SleepHours, ns),
		orDefault(p.SleepQuality, ns), floatOr(p.ScreenTimeHours, ns), floatOr(p.HeadphoneHours, ns), orDefault(habits, "None"))
	fmt.Fprintf(&b, "=== MEDICAL ===\nExisting Conditions: %s\nPast History: %s\nAllergies: %s\nMedications: %s\nReports: %s\n\n",
		orDefault(p.MedicalConditions, "None"), orDefault(p.PastConditions, "None"), orDefault(p.Allergies, "None"),
		orDefault(strings.Join(p.Medications, ", "), "None"), orDefault(scan.MedicalReports, "None provided"))
	fmt.Fprintf(&b, "=== WEARABLE DATA ===\nDaily Steps: %s\nDistance: %s km\nCalories Burned: %s\nHeart Rate: %s\nSleep Quality: %s\nStress Level: %s\n\n",
		orDefault(scan.Steps, intOr(p.AvgSteps, nt)), orDefault(scan.DistanceKM, nt), orDefault(scan.Calories, nt),
		orDefault(scan.HeartRate, intOr(p.AvgHeartRate, nt)), orDefault(scan.SleepData, nt), orDefault(scan.StressLevel, ns))

	b.WriteString("=== ENVIRONMENT ===\n")
	if env != nil && env.Weather != nil {
		fmt.Fprintf(&b, "Weather: %s, %.1f°C\n", env.Weather.Description, env.Weather.TemperatureC)
	} else {
		b.WriteString("Weather: " + ns + "\n")
	}
	if env != nil && env.AirQuality != nil {
		fmt.Fprintf(&b, "AQI: %d (%s)\n\n", env.AirQuality.Index, env.AirQuality.Category)
	} else {
		b.WriteString("AQI: " + ns + "\n\n")
	}

	fmt.Fprintf(&b, "=== PRIMARY GOAL ===\n%s\n\nPlease analyze all this data and return a comprehensive JSON health report.", goalOf(p))

	var report models.HealthReport
	if err := s.generate(ctx, &report, gemini.Text(reportInstruction), gemini.Text(b.String())); err != nil {
		return nil, err
	}
	return &report, nil
}

// AnalyzeFood asks for a nutritional analysis of a food photo. profile may be
// nil for users who have not finished onboarding.
func (s *InsightService) AnalyzeFood(ctx context.Context, p *models.Profile, mimeType, data string) (*models.FoodAnalysis, error) {
	allergies := ""
	if p != nil {
		allergies = strings.TrimSpace(p.Allergies)
	}

	var b strings.Builder
	b.WriteString("Analyze this food image and return ONLY valid JSON.\n")
	hasAllergen := "false"
	if allergies != "" {
		fmt.Fprintf(&b, "IMPORTANT: The user is ALLERGIC to: %s. Check if ANY ingredients might contain these allergens!\n", allergies)
		hasAllergen = "true/false based on ingredients"
	}
	fmt.Fprintf(&b, `
{
  "foodName": "Name of the dish",
  "ingredients": ["ingredient1", "ingredient2"],
  "estimatedCalories": 350,
  "nutritionScore": "Good/Fair/Poor",
  "healthAnalysis": "Brief analysis",
  "allergyWarning": {
    "hasAllergen": %s,
    "allergens": ["list of detected allergens that user is allergic to"],
    "severity": "High/Medium/Low",
    "message": "Warning message if allergens detected"
  },
  "goalAlignment": {
    "goal": %q,
    "isAligned": true,
    "reason": "Why it helps or hurts your goal"
  },
  "recommendations": ["Tip 1", "Tip 2"]
}`, hasAllergen, goalOf(p))

	var analysis models.FoodAnalysis
	if err := s.generate(ctx, &analysis, gemini.Text(b.String()), gemini.Image(mimeType, data)); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// DailyTasks asks for five actionable tasks for today.
func (s *InsightService) DailyTasks(ctx context.Context, p *models.Profile) ([]string, error) {
	prompt := fmt.Sprintf(`Generate 5 personalized daily health tasks for a person with this profile:
- Goal: %s
- Age: %s
- Gender: %s

Return ONLY a JSON array of task strings (no markdown):
["Task 1", "Task 2", "Task 3", "Task 4", "Task 5"]

Tasks should be specific, actionable, and achievable in one day.`, goalOf(p), intOr(p.Age, "Unknown"), orDefault(p.Gender, "Unknown"))

	var tasks []string
	if err := s.generate(ctx, &tasks, gemini.Text(prompt)); err != nil {
		return nil, err
	}
	return tasks, nil
}

// DashboardInsights asks for short insights on the current metrics.
func (s *InsightService) DashboardInsights(ctx context.Context, p *models.Profile, m DashboardMetrics, cond *weather.Conditions) (*DashboardInsights, error) {
	stepsPct := 0
	if m.StepsGoal > 0 {
		stepsPct = m.Steps * 100 / m.StepsGoal
	}
	trend := strconv.Itoa(m.HeartRateTrend)
	if m.HeartRateTrend > 0 {
		trend = "+" + trend
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Generate personalized health insights for this user. Keep it concise.

User Profile:
- Goal: %s
- Age: %s
- Gender: %s

Current Metrics:
- Heart Rate: %d bpm (%s%% vs yesterday)
- Steps: %d (%d%% of goal)
- Sleep: %.1f hrs (%.1f hrs deep sleep)
- Active Minutes: %d min
`, goalOf(p), intOr(p.Age, "Unknown"), orDefault(p.Gender, "Unknown"),
		m.HeartRate, trend, m.Steps, stepsPct, m.SleepHours, m.DeepSleepHours, m.ActiveMinutes)
	if cond != nil {
		fmt.Fprintf(&b, "- Weather: %.0f°C, %.0f%% humidity, %.0f km/h wind\n", cond.TemperatureC, cond.HumidityPct, cond.WindKMH)
	}
	b.WriteString(`
Return ONLY valid JSON:
{
  "insights": [
    {"type": "positive", "title": "Brief title", "description": "1-2 sentence insight"},
    {"type": "warning", "title": "Brief title", "description": "1-2 sentence insight"},
    {"type": "tip", "title": "Brief title", "description": "1-2 sentence insight"}
  ],
  "dos": ["Do recommendation 1", "Do recommendation 2", "Do recommendation 3"],
  "donts": ["Don't recommendation 1", "Don't recommendation 2", "Don't recommendation 3"],
  "weatherAdvice": "Brief weather-based health advice if weather data available, or null"
}`)

	var out DashboardInsights
	if err := s.generate(ctx, &out, gemini.Text(b.String())); err != nil {
		return nil, err
	}
	return &out, nil
}
