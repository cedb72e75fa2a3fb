package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// DraftStore persists wizard drafts.
type DraftStore interface {
	Save(ctx context.Context, userID string, draft *models.Draft) error
	Get(ctx context.Context, userID string, tier models.Tier) (*models.Draft, error)
	Delete(ctx context.Context, userID string, tier models.Tier) error
}

// SaveDraftRequest is the wizard state sent by the client.
type SaveDraftRequest struct {
	Step int             `json:"step"`
	Data json.RawMessage `json:"data" binding:"required"`
}

// DraftService stores the in-progress showcase form per user and tier.
type DraftService struct {
	store DraftStore
	now   func() time.Time
}

// NewDraftService constructs a DraftService.
func NewDraftService(store DraftStore) *DraftService {
	return &DraftService{store: store, now: utcNow}
}

// SaveDraft replaces the user's draft for tier.
func (s *DraftService) SaveDraft(ctx context.Context, userID string, tier models.Tier, req *SaveDraftRequest) (*models.Draft, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: tier must be free or basic", utils.ErrValidation)
	}
	if req.Step < 0 {
		return nil, fmt.Errorf("%w: step must not be negative", utils.ErrValidation)
	}
	if !json.Valid(req.Data) {
		return nil, fmt.Errorf("%w: data must be valid JSON", utils.ErrValidation)
	}

	draft := &models.Draft{
		Tier:    tier,
		Step:    req.Step,
		Data:    req.Data,
		SavedAt: s.now(),
	}
	if err := s.store.Save(ctx, userID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GetDraft returns the user's draft for tier.
func (s *DraftService) GetDraft(ctx context.Context, userID string, tier models.Tier) (*models.Draft, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: tier must be free or basic", utils.ErrValidation)
	}
	return s.store.Get(ctx, userID, tier)
}

// DeleteDraft discards the user's draft for tier.
func (s *DraftService) DeleteDraft(ctx context.Context, userID string, tier models.Tier) error {
	if !tier.Valid() {
		return fmt.Errorf("%w: tier must be free or basic", utils.ErrValidation)
	}
	return s.store.Delete(ctx, userID, tier)
}
