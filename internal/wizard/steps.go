package wizard

import (
	"coreselect/internal/recommend/contract"
)

// StepID identifies a wizard step. IDs are stable and never reused.
type StepID int

const (
	StepBudget     StepID = 1
	StepPriorities StepID = 2
	StepReview     StepID = 3
	StepResults    StepID = 4
	StepGaming     StepID = 5
)

// Step describes one screen of the wizard.
type Step struct {
	ID   StepID
	Name string
	Path string
	Tier int
}

// Predicate decides whether a conditional step applies to the current answers.
type Predicate func(Answers) bool

// Variant is a Fixed or Conditional entry of the step list.
type Variant struct {
	Step    Step
	Anchor  StepID
	Applies Predicate
}

// Fixed returns a step that is always part of the sequence.
func Fixed(step Step) Variant {
	return Variant{Step: step}
}

// Conditional returns a step spliced right after anchor while pred holds.
// It shares the anchor's tier.
func Conditional(step Step, anchor StepID, pred Predicate) Variant {
	return Variant{Step: step, Anchor: anchor, Applies: pred}
}

func (v Variant) conditional() bool {
	return v.Applies != nil
}

// Sequencer resolves the variant list into a concrete order and answers
// navigation questions about it.
type Sequencer struct {
	variants []Variant
}

// NewSequencer builds a sequencer. Fixed variants must be given in order.
func NewSequencer(variants ...Variant) *Sequencer {
	return &Sequencer{variants: append([]Variant(nil), variants...)}
}

// DefaultSequencer is Budget, Priorities, (Gaming), Review, Results.
func DefaultSequencer() *Sequencer {
	return NewSequencer(
		Fixed(Step{ID: StepBudget, Name: "Budget", Path: "/", Tier: 1}),
		Fixed(Step{ID: StepPriorities, Name: "Priorities", Path: "/priorities", Tier: 2}),
		Conditional(Step{ID: StepGaming, Name: "Gaming", Path: "/games", Tier: 2}, StepPriorities, GamingSelected),
		Fixed(Step{ID: StepReview, Name: "Review", Path: "/review", Tier: 3}),
		Fixed(Step{ID: StepResults, Name: "Results", Path: "/results", Tier: 4}),
	)
}

// GamingSelected holds when "Gaming Performance" is among the first three priorities.
func GamingSelected(a Answers) bool {
	return contract.GamingSelected(a.Priorities)
}

// Resolve returns the ordered steps for the given answers.
func (s *Sequencer) Resolve(a Answers) []Step {
	out := make([]Step, 0, len(s.variants))
	for _, v := range s.variants {
		if v.conditional() {
			continue
		}
		out = append(out, v.Step)
		for _, c := range s.variants {
			if c.conditional() && c.Anchor == v.Step.ID && c.Applies(a) {
				out = append(out, c.Step)
			}
		}
	}
	return out
}

// Lookup finds a step by path among all variants, applicable or not.
func (s *Sequencer) Lookup(path string) (Step, bool) {
	for _, v := range s.variants {
		if v.Step.Path == path {
			return v.Step, true
		}
	}
	return Step{}, false
}

// Step finds a step by id among all variants.
func (s *Sequencer) Step(id StepID) (Step, bool) {
	v, ok := s.variant(id)
	return v.Step, ok
}

func (s *Sequencer) variant(id StepID) (Variant, bool) {
	for _, v := range s.variants {
		if v.Step.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// Current returns the resolved step at path. ok is false before the wizard starts.
func (s *Sequencer) Current(path string, a Answers) (Step, bool) {
	for _, step := range s.Resolve(a) {
		if step.Path == path {
			return step, true
		}
	}
	return Step{}, false
}

// Applicable reports whether id is part of the resolved sequence.
func (s *Sequencer) Applicable(id StepID, a Answers) bool {
	v, ok := s.variant(id)
	if !ok {
		return false
	}
	return !v.conditional() || v.Applies(a)
}

// Gate returns the step whose completion unlocks id. The first step has none.
func (s *Sequencer) Gate(id StepID) (StepID, bool) {
	v, ok := s.variant(id)
	if !ok {
		return 0, false
	}
	if v.conditional() {
		return v.Anchor, true
	}
	var gate StepID
	bestTier := 0
	for _, other := range s.variants {
		if other.conditional() || other.Step.Tier >= v.Step.Tier {
			continue
		}
		if other.Step.Tier > bestTier {
			gate, bestTier = other.Step.ID, other.Step.Tier
		}
	}
	return gate, bestTier > 0
}

// Reachable reports whether the user may navigate to id: it is completed,
// it is the first step, or its gate is completed.
func (s *Sequencer) Reachable(id StepID, completed []StepID) bool {
	if _, ok := s.variant(id); !ok {
		return false
	}
	done := make(map[StepID]struct{}, len(completed))
	for _, c := range completed {
		done[c] = struct{}{}
	}
	if _, ok := done[id]; ok {
		return true
	}
	gate, ok := s.Gate(id)
	if !ok {
		return true
	}
	_, ok = done[gate]
	return ok
}

// Next returns the step after from in the resolved sequence. When from is a
// conditional step that no longer applies, the step after its anchor is
// returned so navigation skips it.
func (s *Sequencer) Next(from StepID, a Answers) (Step, bool) {
	resolved := s.Resolve(a)
	target := from
	if !s.Applicable(from, a) {
		v, ok := s.variant(from)
		if !ok {
			return Step{}, false
		}
		target = v.Anchor
	}
	for i, step := range resolved {
		if step.ID == target && i+1 < len(resolved) {
			return resolved[i+1], true
		}
	}
	return Step{}, false
}

// Progress is the fraction of the resolved sequence reached at path, in [0, 1].
func (s *Sequencer) Progress(path string, a Answers) float64 {
	resolved := s.Resolve(a)
	if len(resolved) < 2 {
		return 0
	}
	for i, step := range resolved {
		if step.Path == path {
			return float64(i) / float64(len(resolved)-1)
		}
	}
	return 0
}
