package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nodefit/internal/database"
	"nodefit/internal/repositories"
	"nodefit/internal/services"
	"nodefit/pkg/gemini"
)

const testJWTSecret = "test_jwt_secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// stubGenerator replays canned replies in order and records every prompt.
type stubGenerator struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts [][]gemini.Part
}

func (g *stubGenerator) GenerateContent(_ context.Context, parts ...gemini.Part) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, parts)
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "", errors.New("no canned reply")
	}
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply, nil
}

func (g *stubGenerator) reply(texts ...string) {
	g.mu.Lock()
	g.replies = append(g.replies, texts...)
	g.mu.Unlock()
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	p.mu.Lock()
	p.events = append(p.events, eventType)
	p.mu.Unlock()
	return nil
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e == eventType {
			n++
		}
	}
	return n
}

type testEnv struct {
	db     *gorm.DB
	clock  *fakeClock
	gen    *stubGenerator
	events *recordingPublisher
	kv     repositories.KeyValueRepository

	auth     *services.AuthService
	profiles *services.ProfileService
	badges   *services.BadgeService
	streaks  *services.StreakService
	insights *services.InsightService
	reports  *services.ReportService
	meals    *services.MealService
	tasks    *services.TaskService
	cycles   *services.CycleService
	drafts   *services.DraftService
	session  *services.Session
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	env := &testEnv{
		db:     db,
		clock:  &fakeClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)},
		gen:    &stubGenerator{},
		events: &recordingPublisher{},
		kv:     repositories.NewGORMKeyValueRepository(db),
	}
	env.auth = services.NewAuthService(repositories.NewGORMUserRepository(db), testJWTSecret, time.Hour, bcrypt.MinCost, env.events, nil)
	env.profiles = services.NewProfileService(repositories.NewGORMProfileRepository(db), env.events, nil)
	env.badges = services.NewBadgeService(repositories.NewGORMBadgeRepository(db), env.events, nil)
	env.streaks = services.NewStreakService(repositories.NewGORMStreakRepository(db), env.badges, nil).WithClock(env.clock.Now)
	env.insights = services.NewInsightService(env.gen, nil)
	env.reports = services.NewReportService(repositories.NewGORMReportRepository(db), env.insights, env.badges, env.events, nil)
	env.meals = services.NewMealService(repositories.NewGORMMealRepository(db), env.insights, env.badges, env.events, nil)
	env.tasks = services.NewTaskService(repositories.NewGORMTaskRepository(db), env.insights, nil)
	env.cycles = services.NewCycleService(repositories.NewGORMCycleRepository(db), nil).WithClock(env.clock.Now)
	env.drafts = services.NewDraftService(env.kv)
	env.session = services.NewSession(env.auth, env.profiles, env.streaks, env.meals, env.drafts, env.kv, nil)
	return env
}

// newSession builds a second session over the same store, as a restart would.
func (e *testEnv) newSession() *services.Session {
	return services.NewSession(e.auth, e.profiles, e.streaks, e.meals, e.drafts, e.kv, nil)
}
