package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nodefit/internal/repositories"
)

// OnboardingForm is the draft slot of the onboarding form.
const OnboardingForm = "onboarding"

const draftKeyPrefix = "draft:"

// DraftService autosaves in-progress forms, one slot per form.
type DraftService struct {
	store repositories.KeyValueRepository
}

// NewDraftService creates a new DraftService.
func NewDraftService(store repositories.KeyValueRepository) *DraftService {
	return &DraftService{store: store}
}

func draftKey(form string) (string, error) {
	form = strings.TrimSpace(form)
	if form == "" {
		return "", fmt.Errorf("form name is required: %w", ErrInvalidInput)
	}
	return draftKeyPrefix + form, nil
}

// Save replaces the draft of form with fields.
func (s *DraftService) Save(ctx context.Context, form string, fields json.RawMessage) error {
	key, err := draftKey(form)
	if err != nil {
		return err
	}
	if !json.Valid(fields) {
		return fmt.Errorf("draft is not valid JSON: %w", ErrInvalidInput)
	}
	return s.store.Put(ctx, key, fields)
}

// Load returns the last saved draft of form. ok is false when there is none.
func (s *DraftService) Load(ctx context.Context, form string) (fields json.RawMessage, ok bool, err error) {
	key, err := draftKey(form)
	if err != nil {
		return nil, false, err
	}
	fields, err = s.store.Get(ctx, key)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return fields, true, nil
}

// Clear removes the draft of form.
func (s *DraftService) Clear(ctx context.Context, form string) error {
	key, err := draftKey(form)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, key)
}
