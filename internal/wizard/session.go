package wizard

import (
	"context"
	"errors"
	"fmt"

	"coreselect/internal/recommend/contract"
	"coreselect/internal/shared/telemetry"
)

var (
	// ErrStepLocked is returned when navigating to a step whose gate is not completed.
	ErrStepLocked = errors.New("step is locked")
	// ErrUnknownStep is returned for a path that names no step.
	ErrUnknownStep = errors.New("unknown step")
	// ErrStepNotApplicable is returned when submitting a conditional step that
	// is not part of the sequence for the current answers.
	ErrStepNotApplicable = errors.New("step does not apply to the current answers")
)

// Session drives one user through the wizard.
type Session struct {
	store    *Store
	seq      *Sequencer
	fetcher  *Fetcher
	location string
}

// NewSession wires a session. A nil seq uses DefaultSequencer.
func NewSession(store *Store, seq *Sequencer, client Recommender) *Session {
	if seq == nil {
		seq = DefaultSequencer()
	}
	s := &Session{store: store, seq: seq}
	s.fetcher = NewFetcher(client, func() contract.Request {
		return store.Answers().Request()
	})
	return s
}

func (s *Session) Store() *Store         { return s.store }
func (s *Session) Sequencer() *Sequencer { return s.seq }

// Location is the active step path, empty before Start.
func (s *Session) Location() string {
	return s.location
}

// Current returns the active step, or false when the wizard has not started.
func (s *Session) Current() (Step, bool) {
	return s.seq.Current(s.location, s.store.Answers())
}

// Steps returns the resolved sequence for the current answers.
func (s *Session) Steps() []Step {
	return s.seq.Resolve(s.store.Answers())
}

// Reachable reports whether the user may navigate to id.
func (s *Session) Reachable(id StepID) bool {
	return s.seq.Reachable(id, s.store.CompletedSteps())
}

// Progress is the fraction of the sequence reached.
func (s *Session) Progress() float64 {
	return s.seq.Progress(s.location, s.store.Answers())
}

// Start moves to the first step.
func (s *Session) Start() Step {
	steps := s.Steps()
	s.location = steps[0].Path
	return steps[0]
}

// Visit navigates to path. Conditional steps that no longer apply are
// skipped in favour of the next applicable step.
func (s *Session) Visit(path string) (Step, error) {
	step, ok := s.seq.Lookup(path)
	if !ok {
		return Step{}, fmt.Errorf("%w: %s", ErrUnknownStep, path)
	}
	if !s.Reachable(step.ID) {
		return Step{}, fmt.Errorf("%w: %s", ErrStepLocked, step.Name)
	}
	answers := s.store.Answers()
	for !s.seq.Applicable(step.ID, answers) {
		next, ok := s.seq.Next(step.ID, answers)
		if !ok {
			return Step{}, fmt.Errorf("%w: %s", ErrStepLocked, step.Name)
		}
		if !s.Reachable(next.ID) {
			return Step{}, fmt.Errorf("%w: %s", ErrStepLocked, next.Name)
		}
		step = next
	}
	s.location = step.Path
	return step, nil
}

// SubmitBudget validates and stores the budget, then advances.
func (s *Session) SubmitBudget(v float64) (Step, error) {
	if err := ValidateBudget(v); err != nil {
		return Step{}, err
	}
	s.fetcher.Invalidate()
	s.store.SetBudget(v)
	return s.complete(StepBudget)
}

// SubmitPriorities validates and stores the ranked priorities, then advances
// to Gaming when it applies, else to Review.
func (s *Session) SubmitPriorities(list []string) (Step, error) {
	if err := s.requireReachable(StepPriorities); err != nil {
		return Step{}, err
	}
	if err := ValidatePriorities(list); err != nil {
		return Step{}, err
	}
	s.fetcher.Invalidate()
	s.store.SetPriorities(list)
	return s.complete(StepPriorities)
}

// SubmitGames validates and stores both game lists, then advances. It fails
// with ErrStepNotApplicable, storing nothing, unless gaming is a top priority.
func (s *Session) SubmitGames(want, playing []string) (Step, error) {
	if err := s.requireReachable(StepGaming); err != nil {
		return Step{}, err
	}
	if !s.seq.Applicable(StepGaming, s.store.Answers()) {
		step, _ := s.seq.Step(StepGaming)
		return Step{}, fmt.Errorf("%w: %s", ErrStepNotApplicable, step.Name)
	}
	if err := ValidateGames("wantToPlayGames", want); err != nil {
		return Step{}, err
	}
	if err := ValidateGames("currentlyPlayingGames", playing); err != nil {
		return Step{}, err
	}
	s.fetcher.Invalidate()
	s.store.SetWantToPlayGames(want)
	s.store.SetCurrentlyPlayingGames(playing)
	return s.complete(StepGaming)
}

// RequestRecommendation fetches a recommendation for the current answers.
// On success the result is stored, Review is marked and the session moves to
// Results. On failure nothing changes and the session stays on Review.
func (s *Session) RequestRecommendation(ctx context.Context) (contract.Result, error) {
	if err := s.requireReachable(StepReview); err != nil {
		return contract.Result{}, err
	}
	review, _ := s.seq.Step(StepReview)
	s.location = review.Path

	res, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return contract.Result{}, err
	}
	if err := s.store.SetRecommendation(ctx, res); err != nil {
		telemetry.Warn("wizard.recommendation_not_persisted", map[string]any{"error": err})
	}
	if _, err := s.complete(StepReview); err != nil {
		return contract.Result{}, err
	}
	return res, nil
}

// Close abandons any in-flight fetch.
func (s *Session) Close() {
	s.fetcher.Invalidate()
}

func (s *Session) complete(id StepID) (Step, error) {
	s.store.MarkStepCompleted(id)
	next, ok := s.seq.Next(id, s.store.Answers())
	if !ok {
		step, _ := s.seq.Step(id)
		s.location = step.Path
		return step, nil
	}
	s.location = next.Path
	return next, nil
}

func (s *Session) requireReachable(id StepID) error {
	if s.Reachable(id) {
		return nil
	}
	step, _ := s.seq.Step(id)
	return fmt.Errorf("%w: %s", ErrStepLocked, step.Name)
}
