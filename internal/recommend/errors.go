package recommend

import "errors"

var (
	ErrNotFound           = errors.New("recommendation not found")
	ErrBudgetRequired     = errors.New("budget is required")
	ErrPrioritiesRequired = errors.New("at least one priority is required")
	ErrNoCandidates       = errors.New("no compatible parts within budget")
)
