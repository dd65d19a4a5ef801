// Package budget splits a total PC budget across component categories
// according to the user's ranked priorities.
package budget

import (
	"errors"
	"sort"
)

// Component is a budgeted component class.
type Component string

const (
	CPU         Component = "CPU"
	GPU         Component = "GPU"
	RAM         Component = "RAM"
	Storage     Component = "Storage"
	Motherboard Component = "Motherboard"
	Cooler      Component = "Cooler"
	PSU         Component = "PSU"
	Case        Component = "Case"
)

// Components lists every budgeted component in a stable order.
var Components = []Component{CPU, GPU, RAM, Storage, Motherboard, Cooler, PSU, Case}

// ErrBudgetTooLow is returned when the fixed minimums alone exceed the budget.
var ErrBudgetTooLow = errors.New("total budget too low to meet fixed minimums")

// ErrNoPriorities is returned when none of the priorities carries any weight.
var ErrNoPriorities = errors.New("at least one known priority is required")

// Priority names understood by the allocator.
const (
	GamingPerformance = "Gaming Performance"
	VideoEditing      = "Video Editing"
	Rendering3D       = "3D Rendering"
	Programming       = "Programming"
	GeneralUse        = "General Use"
	Streaming         = "Streaming"
	ContentCreation   = "Content Creation"
	MachineLearning   = "Machine Learning"
)

// Priorities lists the priorities in the order the wizard offers them.
var Priorities = []string{
	GamingPerformance,
	VideoEditing,
	Rendering3D,
	Programming,
	GeneralUse,
	Streaming,
	ContentCreation,
	MachineLearning,
}

var useCaseWeights = map[string]map[Component]float64{
	GamingPerformance: {GPU: 0.5, CPU: 0.3, RAM: 0.1, Motherboard: 0.1},
	VideoEditing:      {CPU: 0.35, GPU: 0.35, RAM: 0.15, Storage: 0.15},
	Rendering3D:       {CPU: 0.4, GPU: 0.4, RAM: 0.1, Cooler: 0.1},
	Programming:       {CPU: 0.4, RAM: 0.3, Storage: 0.2, Motherboard: 0.1},
	GeneralUse:        {CPU: 0.4, RAM: 0.3, Storage: 0.2, Case: 0.1},
	Streaming:         {CPU: 0.3, GPU: 0.3, RAM: 0.2, Cooler: 0.1, PSU: 0.1},
	ContentCreation:   {CPU: 0.35, GPU: 0.35, RAM: 0.2, Storage: 0.1},
	MachineLearning:   {GPU: 0.5, CPU: 0.3, RAM: 0.2},
}

// FixedMinimums is the least each component may be allocated.
var FixedMinimums = map[Component]float64{
	CPU:         120,
	GPU:         200,
	RAM:         80,
	Storage:     90,
	Motherboard: 100,
	Cooler:      50,
	PSU:         150,
	Case:        80,
}

// rankWeights scale the use-case weights of the first, second and third priority.
var rankWeights = []float64{0.5, 0.3, 0.2}

// Allocation maps each component to its share of the budget.
type Allocation map[Component]float64

// Total sums the allocation.
func (a Allocation) Total() float64 {
	var sum float64
	for _, v := range a {
		sum += v
	}
	return sum
}

// IsKnownPriority reports whether name is one of the offered priorities.
func IsKnownPriority(name string) bool {
	_, ok := useCaseWeights[name]
	return ok
}

// Allocate splits budget across components. Only the first three priorities
// count. Components whose weighted share falls below their minimum are locked
// at the minimum; the remainder is spread over the other components in
// proportion to their weighted share.
func Allocate(total float64, priorities []string) (Allocation, error) {
	weights := make(map[Component]float64, len(Components))
	for idx, name := range priorities {
		if idx >= len(rankWeights) {
			break
		}
		for comp, w := range useCaseWeights[name] {
			weights[comp] += w * rankWeights[idx]
		}
	}

	var weightSum float64
	for _, w := range weights {
		weightSum += w
	}
	if weightSum == 0 {
		return nil, ErrNoPriorities
	}

	out := make(Allocation, len(Components))
	locked := 0.0
	adjustable := make(map[Component]float64)
	for _, comp := range Components {
		raw := total * weights[comp] / weightSum
		min := FixedMinimums[comp]
		if raw < min {
			out[comp] = min
			locked += min
			continue
		}
		adjustable[comp] = raw
	}

	remaining := total - locked
	if remaining < 0 {
		return nil, ErrBudgetTooLow
	}

	var adjustableSum float64
	for _, raw := range adjustable {
		adjustableSum += raw
	}
	for comp, raw := range adjustable {
		out[comp] = raw / adjustableSum * remaining
	}
	return out, nil
}

// Ranked returns the components ordered by allocation, largest first.
func (a Allocation) Ranked() []Component {
	out := append([]Component(nil), Components...)
	sort.SliceStable(out, func(i, j int) bool {
		return a[out[i]] > a[out[j]]
	})
	return out
}
