package wizard

import "testing"

func ids(steps []Step) []StepID {
	out := make([]StepID, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.ID)
	}
	return out
}

func equalIDs(a, b []StepID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolveSplicesGamingAfterPriorities(t *testing.T) {
	seq := DefaultSequencer()

	withGaming := seq.Resolve(Answers{Priorities: []string{"Gaming Performance", "Programming", "Streaming"}})
	want := []StepID{StepBudget, StepPriorities, StepGaming, StepReview, StepResults}
	if got := ids(withGaming); !equalIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	without := seq.Resolve(Answers{Priorities: []string{"Programming", "Streaming", "General Use"}})
	want = []StepID{StepBudget, StepPriorities, StepReview, StepResults}
	if got := ids(without); !equalIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResolveIgnoresGamingBeyondTopThree(t *testing.T) {
	seq := DefaultSequencer()
	steps := seq.Resolve(Answers{Priorities: []string{"Programming", "Streaming", "General Use", "Gaming Performance"}})
	for _, s := range steps {
		if s.ID == StepGaming {
			t.Fatalf("gaming in fourth place must not splice the step")
		}
	}
}

func TestCurrentByPath(t *testing.T) {
	seq := DefaultSequencer()
	answers := Answers{Priorities: []string{"Gaming Performance"}}

	step, ok := seq.Current("/games", answers)
	if !ok || step.ID != StepGaming {
		t.Fatalf("expected gaming step, got %+v ok=%v", step, ok)
	}
	if _, ok := seq.Current("/games", Answers{}); ok {
		t.Fatalf("gaming path should not resolve without gaming priority")
	}
	if _, ok := seq.Current("/nowhere", answers); ok {
		t.Fatalf("unknown path means not started")
	}
}

func TestReachability(t *testing.T) {
	seq := DefaultSequencer()

	if !seq.Reachable(StepBudget, nil) {
		t.Fatalf("budget is always reachable")
	}
	for _, id := range []StepID{StepPriorities, StepGaming, StepReview, StepResults} {
		if seq.Reachable(id, nil) {
			t.Fatalf("step %d should be locked with nothing completed", id)
		}
	}

	completed := []StepID{StepBudget}
	if !seq.Reachable(StepPriorities, completed) {
		t.Fatalf("priorities should unlock after budget")
	}
	if seq.Reachable(StepReview, completed) || seq.Reachable(StepGaming, completed) {
		t.Fatalf("review and gaming need priorities")
	}

	completed = append(completed, StepPriorities)
	if !seq.Reachable(StepGaming, completed) || !seq.Reachable(StepReview, completed) {
		t.Fatalf("gaming and review share the priorities gate")
	}
	if seq.Reachable(StepResults, completed) {
		t.Fatalf("results needs review")
	}

	if !seq.Reachable(StepResults, []StepID{StepResults}) {
		t.Fatalf("a completed step is always reachable")
	}
}

func TestGate(t *testing.T) {
	seq := DefaultSequencer()
	cases := map[StepID]StepID{
		StepPriorities: StepBudget,
		StepGaming:     StepPriorities,
		StepReview:     StepPriorities,
		StepResults:    StepReview,
	}
	for id, want := range cases {
		got, ok := seq.Gate(id)
		if !ok || got != want {
			t.Fatalf("gate of %d: got %d ok=%v, want %d", id, got, ok, want)
		}
	}
	if _, ok := seq.Gate(StepBudget); ok {
		t.Fatalf("the first step has no gate")
	}
}

func TestNextSkipsInapplicableGaming(t *testing.T) {
	seq := DefaultSequencer()
	gaming := Answers{Priorities: []string{"Gaming Performance"}}
	plain := Answers{Priorities: []string{"Programming"}}

	if next, _ := seq.Next(StepPriorities, gaming); next.ID != StepGaming {
		t.Fatalf("expected gaming after priorities, got %d", next.ID)
	}
	if next, _ := seq.Next(StepPriorities, plain); next.ID != StepReview {
		t.Fatalf("expected review after priorities, got %d", next.ID)
	}
	if next, _ := seq.Next(StepGaming, plain); next.ID != StepReview {
		t.Fatalf("inapplicable gaming should advance to review, got %d", next.ID)
	}
	if _, ok := seq.Next(StepResults, plain); ok {
		t.Fatalf("results is the last step")
	}
}

func TestProgress(t *testing.T) {
	seq := DefaultSequencer()
	plain := Answers{Priorities: []string{"Programming"}}
	if p := seq.Progress("/", plain); p != 0 {
		t.Fatalf("expected 0 at budget, got %v", p)
	}
	if p := seq.Progress("/results", plain); p != 1 {
		t.Fatalf("expected 1 at results, got %v", p)
	}
	if p := seq.Progress("/review", plain); p < 0.66 || p > 0.67 {
		t.Fatalf("expected 2/3 at review, got %v", p)
	}
}
