package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coreselect/internal/recclient"
	"coreselect/internal/recommend/contract"
	"coreselect/internal/shared/storage/object/local"
)

func okRecommender() funcRecommender {
	return func(_ context.Context, _ contract.Request) (contract.Result, error) {
		return sampleResult(), nil
	}
}

func newTestSession(t *testing.T, client Recommender) *Session {
	t.Helper()
	store := NewStore(context.Background(), NewObjectPersister(local.New(t.TempDir())))
	s := NewSession(store, nil, client)
	t.Cleanup(s.Close)
	return s
}

func TestBudgetBelowMinimumIsRejectedLocally(t *testing.T) {
	s := newTestSession(t, okRecommender())
	s.Start()

	_, err := s.SubmitBudget(300)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Message == "" {
		t.Fatalf("expected a message for the user")
	}
	if s.Location() != "/" {
		t.Fatalf("no navigation expected, at %q", s.Location())
	}
	if s.Store().IsCompleted(StepBudget) || s.Store().Budget() != 0 {
		t.Fatalf("rejected budget must not be stored")
	}
}

func TestHappyPathWithGaming(t *testing.T) {
	var got contract.Request
	s := newTestSession(t, funcRecommender(func(_ context.Context, req contract.Request) (contract.Result, error) {
		got = req
		return sampleResult(), nil
	}))
	s.Start()

	step, err := s.SubmitBudget(1500)
	if err != nil || step.ID != StepPriorities || s.Location() != "/priorities" {
		t.Fatalf("expected priorities, got %+v err=%v", step, err)
	}
	step, err = s.SubmitPriorities([]string{"Gaming Performance", "Programming", "Streaming"})
	if err != nil || step.ID != StepGaming {
		t.Fatalf("expected gaming, got %+v err=%v", step, err)
	}
	step, err = s.SubmitGames([]string{"Elden Ring"}, []string{"Valorant"})
	if err != nil || step.ID != StepReview {
		t.Fatalf("expected review, got %+v err=%v", step, err)
	}

	res, err := s.RequestRecommendation(context.Background())
	if err != nil {
		t.Fatalf("RequestRecommendation: %v", err)
	}
	if res != sampleResult() {
		t.Fatalf("unexpected result %+v", res)
	}
	if s.Location() != "/results" {
		t.Fatalf("expected results, at %q", s.Location())
	}
	if !s.Store().IsCompleted(StepReview) {
		t.Fatalf("review should be completed")
	}
	if stored, ok := s.Store().Recommendation(); !ok || stored != res {
		t.Fatalf("recommendation not stored")
	}
	if got.Budget != 1500 || len(got.WantToPlayGames) != 1 || got.CurrentlyPlayingGames[0] != "Valorant" {
		t.Fatalf("unexpected request %+v", got)
	}
	if s.Progress() != 1 {
		t.Fatalf("expected full progress, got %v", s.Progress())
	}
}

func TestPrioritiesWithoutGamingSkipToReview(t *testing.T) {
	s := newTestSession(t, okRecommender())
	s.Start()
	if _, err := s.SubmitBudget(1500); err != nil {
		t.Fatalf("budget: %v", err)
	}
	step, err := s.SubmitPriorities([]string{"Programming"})
	if err != nil || step.ID != StepReview {
		t.Fatalf("expected review, got %+v err=%v", step, err)
	}

	_, err = s.SubmitGames([]string{"Doom"}, nil)
	if !errors.Is(err, ErrStepNotApplicable) {
		t.Fatalf("expected ErrStepNotApplicable, got %v", err)
	}
	if s.Store().IsCompleted(StepGaming) {
		t.Fatalf("an inapplicable step must not be marked completed")
	}
	if s.Store().WantToPlayGames() != nil {
		t.Fatalf("games must not be stored, got %v", s.Store().WantToPlayGames())
	}
	for _, id := range s.Store().CompletedSteps() {
		if !s.Sequencer().Applicable(id, s.Store().Answers()) {
			t.Fatalf("completed step %d is not in the sequence", id)
		}
	}
	if s.Location() != "/review" {
		t.Fatalf("location must not move, at %q", s.Location())
	}
}

func TestVisitLockedStep(t *testing.T) {
	s := newTestSession(t, okRecommender())
	s.Start()

	if _, err := s.Visit("/review"); !errors.Is(err, ErrStepLocked) {
		t.Fatalf("expected ErrStepLocked, got %v", err)
	}
	if _, err := s.Visit("/nope"); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep, got %v", err)
	}
	if _, err := s.SubmitPriorities([]string{"Programming"}); !errors.Is(err, ErrStepLocked) {
		t.Fatalf("priorities need the budget first, got %v", err)
	}
	if _, err := s.RequestRecommendation(context.Background()); !errors.Is(err, ErrStepLocked) {
		t.Fatalf("review needs priorities first, got %v", err)
	}
	if s.Location() != "/" {
		t.Fatalf("location must not move, at %q", s.Location())
	}
}

func TestVisitGamesAdvancesWhenGamingNotSelected(t *testing.T) {
	s := newTestSession(t, okRecommender())
	s.Start()
	_, _ = s.SubmitBudget(1500)
	_, _ = s.SubmitPriorities([]string{"Programming", "Streaming"})

	step, err := s.Visit("/games")
	if err != nil {
		t.Fatalf("Visit: %v", err)
	}
	if step.ID != StepReview || s.Location() != "/review" {
		t.Fatalf("expected review, got %+v at %q", step, s.Location())
	}

	if step, err := s.Visit("/"); err != nil || step.ID != StepBudget {
		t.Fatalf("budget is always reachable: %+v %v", step, err)
	}
}

func TestBackendFailureLeavesStateUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "backend unavailable"})
	}))
	defer srv.Close()

	s := newTestSession(t, recclient.New(srv.URL, 5*time.Second))
	s.Start()
	_, _ = s.SubmitBudget(1500)
	_, _ = s.SubmitPriorities([]string{"Programming"})

	_, err := s.RequestRecommendation(context.Background())
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Error() != "backend unavailable" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	var rcErr *recclient.Error
	if !errors.As(err, &rcErr) || rcErr.Kind != recclient.KindStatus || rcErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected status error, got %#v", err)
	}
	if _, ok := s.Store().Recommendation(); ok {
		t.Fatalf("recommendation must stay unset")
	}
	if s.Store().IsCompleted(StepReview) {
		t.Fatalf("review must not be marked completed")
	}
	if s.Location() != "/review" {
		t.Fatalf("expected to stay on review, at %q", s.Location())
	}
}

func TestFailedRefetchKeepsPreviousRecommendation(t *testing.T) {
	fail := false
	s := newTestSession(t, funcRecommender(func(_ context.Context, _ contract.Request) (contract.Result, error) {
		if fail {
			return contract.Result{}, errors.New("backend unavailable")
		}
		return sampleResult(), nil
	}))
	s.Start()
	_, _ = s.SubmitBudget(1500)
	_, _ = s.SubmitPriorities([]string{"Programming"})
	if _, err := s.RequestRecommendation(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	fail = true
	if _, err := s.RequestRecommendation(context.Background()); err == nil {
		t.Fatalf("expected failure")
	}
	if rec, ok := s.Store().Recommendation(); !ok || rec != sampleResult() {
		t.Fatalf("previous recommendation should be kept")
	}
}
