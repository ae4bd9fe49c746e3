package service

import (
	"context"
	"time"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/repository"
	"github.com/kjbranchesi/alf-coach-backend/internal/logging"
)

// maintenanceTimeout bounds the fire-and-forget purge/cleanup spawned from
// the list path; it must not outlive the dashboard request by much.
const maintenanceTimeout = 10 * time.Second

// BlueprintService handles blueprint business logic on top of a Repository.
type BlueprintService struct {
	repo      repository.Repository
	retention time.Duration
	log       *logging.Logger
}

func NewBlueprintService(repo repository.Repository, retention time.Duration, log *logging.Logger) *BlueprintService {
	return &BlueprintService{
		repo:      repo,
		retention: retention,
		log:       log,
	}
}

// Summary is the dashboard projection of a blueprint: the document plus its
// derived stage chip.
type Summary struct {
	domain.Blueprint
	Stage      domain.Stage `json:"stage"`
	StageLabel string       `json:"stageLabel"`
}

// List returns the user's live blueprints, most recently updated first, and
// kicks off the opportunistic maintenance sweep (tombstone purge + empty
// cleanup) in the background. The sweep is best-effort: errors are logged
// and swallowed, and retention is therefore not strictly enforced when no
// traffic arrives; the nightly worker covers that gap.
func (s *BlueprintService) List(ctx context.Context, userID string) ([]Summary, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	go s.maintain(userID)

	return summarize(items), nil
}

func (s *BlueprintService) ListDeleted(ctx context.Context, userID string) ([]Summary, error) {
	items, err := s.repo.ListDeleted(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

func (s *BlueprintService) Get(ctx context.Context, userID, id string) (*Summary, error) {
	b, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	sum := summarizeOne(*b)
	return &sum, nil
}

// Save persists the blueprint and returns it with its adopted id and derived
// stage. Callers holding a placeholder id must switch to the returned id.
func (s *BlueprintService) Save(ctx context.Context, b *domain.Blueprint) (*Summary, error) {
	saved, err := s.repo.Save(ctx, b)
	if err != nil {
		return nil, err
	}
	sum := summarizeOne(*saved)
	return &sum, nil
}

func (s *BlueprintService) Delete(ctx context.Context, userID, id string) (bool, error) {
	return s.repo.Delete(ctx, userID, id)
}

func (s *BlueprintService) Restore(ctx context.Context, userID, id string) (bool, error) {
	return s.repo.Restore(ctx, userID, id)
}

// Complete sets the terminal marker on a blueprint.
func (s *BlueprintService) Complete(ctx context.Context, userID, id string) (*Summary, error) {
	b, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	b.CurrentStep = domain.StepComplete
	return s.Save(ctx, b)
}

func (s *BlueprintService) maintain(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()

	purged, err := s.repo.PurgeExpiredDeleted(ctx, userID, s.retention)
	if err != nil {
		s.log.Warn("tombstone purge failed", "user_id", userID, "error", err)
	} else if purged > 0 {
		s.log.Info("purged expired tombstones", "user_id", userID, "count", purged)
	}

	removed, err := s.repo.CleanupEmpty(ctx, userID)
	if err != nil {
		s.log.Warn("empty-blueprint cleanup failed", "user_id", userID, "error", err)
	} else if removed > 0 {
		s.log.Info("removed empty blueprints", "user_id", userID, "count", removed)
	}
}

func summarize(items []domain.Blueprint) []Summary {
	out := make([]Summary, 0, len(items))
	for _, b := range items {
		out = append(out, summarizeOne(b))
	}
	return out
}

func summarizeOne(b domain.Blueprint) Summary {
	stage := domain.DeriveStage(&b)
	return Summary{Blueprint: b, Stage: stage, StageLabel: stage.Label()}
}
