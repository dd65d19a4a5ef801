package wizard

import (
	"context"
	"sort"
	"sync"

	"coreselect/internal/recommend/contract"
	"coreselect/internal/shared/telemetry"
)

// Answers is the in-progress answer set.
type Answers struct {
	Budget                float64
	Priorities            []string
	WantToPlayGames       []string
	CurrentlyPlayingGames []string
}

// Request builds the recommendation request. Game lists are only sent when
// gaming is a top priority.
func (a Answers) Request() contract.Request {
	req := contract.Request{
		Budget:     a.Budget,
		Priorities: cloneStrings(a.Priorities),
	}
	if contract.GamingSelected(a.Priorities) {
		req.WantToPlayGames = cloneStrings(a.WantToPlayGames)
		req.CurrentlyPlayingGames = cloneStrings(a.CurrentlyPlayingGames)
	}
	return req
}

// Store holds the wizard state for one session. Only the recommendation is
// written to the persister; answers and completed steps live in memory.
type Store struct {
	mu             sync.RWMutex
	answers        Answers
	completed      map[StepID]struct{}
	recommendation *contract.Result
	persister      Persister
}

// NewStore creates a store and restores the last recommendation from p.
// A nil persister keeps everything in memory.
func NewStore(ctx context.Context, p Persister) *Store {
	s := &Store{
		completed: make(map[StepID]struct{}),
		persister: p,
	}
	if p == nil {
		return s
	}
	rec, err := p.Load(ctx)
	if err != nil {
		telemetry.Warn("wizard.restore_failed", map[string]any{"error": err})
		return s
	}
	s.recommendation = rec
	return s
}

func (s *Store) SetBudget(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers.Budget = v
}

func (s *Store) SetPriorities(list []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers.Priorities = cloneStrings(list)
}

func (s *Store) SetWantToPlayGames(list []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers.WantToPlayGames = cloneStrings(list)
}

func (s *Store) SetCurrentlyPlayingGames(list []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers.CurrentlyPlayingGames = cloneStrings(list)
}

// MarkStepCompleted adds id to the completed set. Re-marking is a no-op.
func (s *Store) MarkStepCompleted(id StepID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed[id] = struct{}{}
}

// SetRecommendation replaces the stored result and persists it. The
// in-memory value is replaced even when persisting fails.
func (s *Store) SetRecommendation(ctx context.Context, res contract.Result) error {
	s.mu.Lock()
	s.recommendation = &res
	p := s.persister
	s.mu.Unlock()

	if p == nil {
		return nil
	}
	if err := p.Save(ctx, res); err != nil {
		telemetry.Error("wizard.persist_failed", map[string]any{"error": err})
		return err
	}
	return nil
}

func (s *Store) Budget() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.answers.Budget
}

func (s *Store) Priorities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStrings(s.answers.Priorities)
}

func (s *Store) WantToPlayGames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStrings(s.answers.WantToPlayGames)
}

func (s *Store) CurrentlyPlayingGames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStrings(s.answers.CurrentlyPlayingGames)
}

// Answers returns a copy of the answer set.
func (s *Store) Answers() Answers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Answers{
		Budget:                s.answers.Budget,
		Priorities:            cloneStrings(s.answers.Priorities),
		WantToPlayGames:       cloneStrings(s.answers.WantToPlayGames),
		CurrentlyPlayingGames: cloneStrings(s.answers.CurrentlyPlayingGames),
	}
}

// CompletedSteps returns the completed ids in ascending order.
func (s *Store) CompletedSteps() []StepID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StepID, 0, len(s.completed))
	for id := range s.completed {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Store) IsCompleted(id StepID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.completed[id]
	return ok
}

// Recommendation returns the last fetched result, if any.
func (s *Store) Recommendation() (contract.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.recommendation == nil {
		return contract.Result{}, false
	}
	return *s.recommendation, true
}

// Reset clears answers and completed steps. The recommendation is kept.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = Answers{}
	s.completed = make(map[StepID]struct{})
}

// ClearRecommendation forgets the recommendation and removes the persisted record.
func (s *Store) ClearRecommendation(ctx context.Context) error {
	s.mu.Lock()
	s.recommendation = nil
	p := s.persister
	s.mu.Unlock()

	if p == nil {
		return nil
	}
	return p.Clear(ctx)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
