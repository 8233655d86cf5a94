package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"nodefit/internal/models"
	"nodefit/internal/repositories"
	"nodefit/pkg/logger"
)

// SessionTokenKey is the key-value slot holding the persisted session token.
const SessionTokenKey = "session_token"

// SessionState is a snapshot of the session.
type SessionState struct {
	Authenticated bool            `json:"authenticated"`
	IsLoading     bool            `json:"is_loading"`
	User          *models.User    `json:"user,omitempty"`
	Profile       *models.Profile `json:"profile,omitempty"`
}

// Session holds the signed-in user and their active profile. It is safe for
// concurrent use.
type Session struct {
	mu      sync.RWMutex
	user    *models.User
	profile *models.Profile
	token   string
	loading bool

	auth     *AuthService
	profiles *ProfileService
	streaks  *StreakService
	meals    *MealService
	drafts   *DraftService
	store    repositories.KeyValueRepository
	logger   *zap.Logger
}

// NewSession creates a signed-out session. Call Init to restore a persisted
// one.
func NewSession(auth *AuthService, profiles *ProfileService, streaks *StreakService, meals *MealService, drafts *DraftService, store repositories.KeyValueRepository, log *zap.Logger) *Session {
	return &Session{
		auth:     auth,
		profiles: profiles,
		streaks:  streaks,
		meals:    meals,
		drafts:   drafts,
		store:    store,
		logger:   logger.OrNop(log),
	}
}

// Init restores the session from the persisted token. Any failure drops the
// token and leaves the session signed out; Init itself never fails.
func (s *Session) Init(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.loadToken(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return
	}
	var (
		user    *models.User
		profile *models.Profile
	)
	if err == nil {
		user, profile, err = s.restore(ctx, token)
	}
	if err != nil {
		s.logger.Warn("discarding persisted session", zap.Error(err))
		if delErr := s.store.Delete(ctx, SessionTokenKey); delErr != nil {
			s.logger.Warn("failed to delete session token", zap.Error(delErr))
		}
		s.mu.Lock()
		s.clearLocked()
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.user, s.profile, s.token = user, profile, token
	s.mu.Unlock()
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Session) restore(ctx context.Context, token string) (*models.User, *models.Profile, error) {
	userID, err := s.auth.ValidateToken(token)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.auth.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return user, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	s.advanceStreak(ctx, profile.ID)
	return user, profile, nil
}

func (s *Session) advanceStreak(ctx context.Context, profileID uint) {
	if _, err := s.streaks.Advance(ctx, profileID); err != nil {
		s.logger.Warn("failed to advance streak", zap.Uint("profile_id", profileID), zap.Error(err))
	}
}

func (s *Session) loadToken(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, SessionTokenKey)
	if err != nil {
		return "", err
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		return "", fmt.Errorf("decode session token: %w", err)
	}
	return token, nil
}

func (s *Session) persistToken(ctx context.Context, user *models.User) error {
	token, err := s.auth.IssueToken(user)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, SessionTokenKey, raw); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.token = token
	return nil
}

// loadProfileLocked loads the user's profile and, when there is one,
// advances its streak. s.mu must be held.
func (s *Session) loadProfileLocked(ctx context.Context) error {
	profile, err := s.profiles.GetByUserID(ctx, s.user.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		s.profile = nil
		return nil
	}
	if err != nil {
		return err
	}
	s.profile = profile
	s.advanceStreak(ctx, profile.ID)
	return nil
}

func (s *Session) clearLocked() {
	s.user = nil
	s.profile = nil
	s.token = ""
}

// SignUp creates an account and signs it in. The new user has no profile.
func (s *Session) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.auth.CreateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistToken(ctx, user); err != nil {
		return nil, err
	}
	s.user = user
	s.profile = nil
	return user, nil
}

// SignIn authenticates and loads the user's profile, if any.
func (s *Session) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistToken(ctx, user); err != nil {
		return nil, err
	}
	s.user = user
	if err := s.loadProfileLocked(ctx); err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

// SetupProfile stores the onboarding answers as the user's profile and makes
// it active.
func (s *Session) SetupProfile(ctx context.Context, input *models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, ErrUnauthenticated
	}

	input.ID = 0
	input.UserID = s.user.ID
	if err := s.profiles.Create(ctx, input); err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}
	s.profile = profile

	if _, err := s.meals.AdoptTemporary(ctx, s.user.ID, profile.ID); err != nil {
		s.logger.Warn("failed to adopt temporary meals", zap.Error(err))
	}
	s.advanceStreak(ctx, profile.ID)
	if err := s.drafts.Clear(ctx, OnboardingForm); err != nil {
		s.logger.Warn("failed to clear onboarding draft", zap.Error(err))
	}
	return profile, nil
}

// RefreshProfile re-reads the active profile from the store.
func (s *Session) RefreshProfile(ctx context.Context) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, ErrUnauthenticated
	}
	profile, err := s.profiles.GetByUserID(ctx, s.user.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		s.profile = nil
		return nil, ErrProfileRequired
	}
	if err != nil {
		return nil, err
	}
	s.profile = profile
	return profile, nil
}

// UpdateProfile replaces the attributes of the active profile.
func (s *Session) UpdateProfile(ctx context.Context, input *models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, ErrUnauthenticated
	}
	if s.profile == nil {
		return nil, ErrProfileRequired
	}

	input.ID = s.profile.ID
	input.UserID = s.user.ID
	if err := s.profiles.Update(ctx, input); err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	s.profile = profile
	return profile, nil
}

// DeleteProfile removes a profile of the signed-in user with all of its
// records. The active profile is cleared when it is the one deleted.
func (s *Session) DeleteProfile(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ErrUnauthenticated
	}
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if profile.UserID != s.user.ID {
		return fmt.Errorf("profile %d: %w", id, ErrPermissionDenied)
	}
	if err := s.profiles.Delete(ctx, id); err != nil {
		return err
	}
	if s.profile != nil && s.profile.ID == id {
		s.profile = nil
	}
	return nil
}

// Logout forgets the user and the persisted token. Stored records stay.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	if err := s.store.Delete(ctx, SessionTokenKey); err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}
	return nil
}

// State returns a snapshot of the session.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{
		Authenticated: s.user != nil,
		IsLoading:     s.loading,
		User:          s.user,
		Profile:       s.profile,
	}
}

// Token returns the active session token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user.
func (s *Session) User() (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, ErrUnauthenticated
	}
	return s.user, nil
}

// Profile returns the active profile.
func (s *Session) Profile() (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, ErrUnauthenticated
	}
	if s.profile == nil {
		return nil, ErrProfileRequired
	}
	return s.profile, nil
}

// MealOwner returns the owner meals are logged under: the active profile, or
// the user's temporary owner before onboarding.
func (s *Session) MealOwner() (models.MealOwner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.MealOwner{}, ErrUnauthenticated
	}
	owner := models.MealOwner{UserID: s.user.ID}
	if s.profile != nil {
		owner.ProfileID = s.profile.ID
	}
	return owner, nil
}
