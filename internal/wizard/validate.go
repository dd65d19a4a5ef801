package wizard

import (
	"fmt"
	"math"
	"strings"

	"coreselect/internal/budget"
)

const (
	MinBudget     = 600
	MaxBudget     = 5000
	MaxPriorities = 3
	MaxGames      = 3
)

// ValidationError is a local input failure. Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateBudget enforces the accepted budget range.
func ValidateBudget(v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &ValidationError{Field: "budget", Message: "Budget must be a number"}
	case v < MinBudget:
		return &ValidationError{Field: "budget", Message: fmt.Sprintf("Budget must be at least $%d", MinBudget)}
	case v > MaxBudget:
		return &ValidationError{Field: "budget", Message: fmt.Sprintf("Budget must be at most $%d", MaxBudget)}
	}
	return nil
}

// ValidatePriorities requires one to three distinct known priorities.
func ValidatePriorities(list []string) error {
	if len(list) == 0 {
		return &ValidationError{Field: "priorities", Message: "Select at least one priority"}
	}
	if len(list) > MaxPriorities {
		return &ValidationError{Field: "priorities", Message: fmt.Sprintf("Select at most %d priorities", MaxPriorities)}
	}
	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		if !budget.IsKnownPriority(p) {
			return &ValidationError{Field: "priorities", Message: fmt.Sprintf("Unknown priority %q", p)}
		}
		if _, dup := seen[p]; dup {
			return &ValidationError{Field: "priorities", Message: fmt.Sprintf("%s is already selected", p)}
		}
		seen[p] = struct{}{}
	}
	return nil
}

// ValidateGames caps a game list and rejects blank or repeated titles.
// Repeats are matched case-insensitively.
func ValidateGames(field string, list []string) error {
	if len(list) > MaxGames {
		return &ValidationError{Field: field, Message: fmt.Sprintf("Add at most %d games", MaxGames)}
	}
	seen := make(map[string]struct{}, len(list))
	for _, g := range list {
		key := strings.ToLower(strings.TrimSpace(g))
		if key == "" {
			return &ValidationError{Field: field, Message: "Game names cannot be empty"}
		}
		if _, dup := seen[key]; dup {
			return &ValidationError{Field: field, Message: fmt.Sprintf("%s is already in the list", strings.TrimSpace(g))}
		}
		seen[key] = struct{}{}
	}
	return nil
}

// AvailablePriorities lists the priorities a user can rank.
func AvailablePriorities() []string {
	return append([]string(nil), budget.Priorities...)
}
