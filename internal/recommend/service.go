package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coreselect/internal/budget"
	"coreselect/internal/parts"
	"coreselect/internal/recommend/contract"
	"coreselect/internal/shared/metrics"
	"coreselect/internal/shared/telemetry"
)

// Service allocates the budget, asks the picker for a build and records it.
type Service struct {
	Repo    Repo
	Catalog *parts.Catalog
	Picker  Picker

	now   func() time.Time
	newID func() string
}

func NewService(repo Repo, catalog *parts.Catalog, picker Picker) *Service {
	return &Service{
		Repo:    repo,
		Catalog: catalog,
		Picker:  picker,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Recommend serves one POST /recommend.
func (s *Service) Recommend(ctx context.Context, req contract.Request) (Record, error) {
	if s == nil || s.Repo == nil || s.Picker == nil {
		return Record{}, errors.New("recommend service not configured")
	}
	if req.Budget <= 0 {
		return Record{}, ErrBudgetRequired
	}
	if len(req.Priorities) == 0 {
		return Record{}, ErrPrioritiesRequired
	}
	if !contract.GamingSelected(req.Priorities) {
		req.WantToPlayGames = nil
		req.CurrentlyPlayingGames = nil
	}

	start := time.Now()
	rec, err := s.recommend(ctx, req)
	metrics.ObserveRecommendation(s.Picker.Name(), err, time.Since(start))
	if err != nil {
		telemetry.Error("recommend.failed", map[string]any{
			"budget": req.Budget,
			"source": s.Picker.Name(),
			"error":  err,
		})
		return Record{}, err
	}
	telemetry.Info("recommend.completed", map[string]any{
		"recommendation_id": rec.ID,
		"source":            rec.Source,
		"total_cost":        rec.Result.TotalCost,
	})
	return rec, nil
}

func (s *Service) recommend(ctx context.Context, req contract.Request) (Record, error) {
	alloc, err := budget.Allocate(req.Budget, req.Priorities)
	if err != nil {
		return Record{}, err
	}
	result, err := s.Picker.Pick(ctx, PickInput{
		Request:    req,
		Allocation: alloc,
		Catalog:    s.Catalog,
	})
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:        s.newID(),
		Request:   req,
		Result:    result,
		Source:    s.Picker.Name(),
		CreatedAt: s.now(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("save recommendation: %w", err)
	}
	return rec, nil
}

// Get returns a previously served recommendation.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	if s == nil || s.Repo == nil {
		return Record{}, errors.New("recommend service not configured")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Record{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}
