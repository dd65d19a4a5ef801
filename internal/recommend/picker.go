package recommend

import (
	"context"

	"coreselect/internal/budget"
	"coreselect/internal/parts"
	"coreselect/internal/recommend/contract"
)

// PickInput is everything a picker needs to assemble one build.
type PickInput struct {
	Request    contract.Request
	Allocation budget.Allocation
	Catalog    *parts.Catalog
}

// Picker chooses one part per category.
type Picker interface {
	Name() string
	Pick(ctx context.Context, in PickInput) (contract.Result, error)
}
