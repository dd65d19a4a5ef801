package recommend

import (
	"sort"

	"coreselect/internal/budget"
	"coreselect/internal/parts"
)

// categoryBudget maps catalog categories to allocator components. Case fans
// carry no allocation of their own.
var categoryBudget = map[parts.Category]budget.Component{
	parts.CPUs:         budget.CPU,
	parts.GPUs:         budget.GPU,
	parts.Memory:       budget.RAM,
	parts.Storage:      budget.Storage,
	parts.Motherboards: budget.Motherboard,
	parts.CPUCoolers:   budget.Cooler,
	parts.PSUs:         budget.PSU,
	parts.Cases:        budget.Case,
}

// AllocationFor returns the amount budgeted for a category and whether it has one.
func AllocationFor(alloc budget.Allocation, cat parts.Category) (float64, bool) {
	comp, ok := categoryBudget[cat]
	if !ok {
		return 0, false
	}
	return alloc[comp], true
}

// WithinBudget keeps the parts priced at or under limit.
func WithinBudget(list []parts.Part, limit float64) []parts.Part {
	out := make([]parts.Part, 0, len(list))
	for _, p := range list {
		if p.Price <= limit {
			out = append(out, p)
		}
	}
	return out
}

// RequiredMemoryType returns the DRAM generation a CPU socket needs, or "" if
// the socket is not constrained.
func RequiredMemoryType(cpu parts.Part) string {
	switch cpu.Attr("socket_type") {
	case "LGA 1700", "AM4":
		return "DDR4"
	case "LGA 1851", "AM5":
		return "DDR5"
	default:
		return ""
	}
}

// MemoryFits reports whether ram can be used with cpu.
func MemoryFits(cpu, ram parts.Part) bool {
	want := RequiredMemoryType(cpu)
	return want == "" || ram.Attr("dram") == want
}

// MotherboardFits reports whether the board's socket matches the CPU.
func MotherboardFits(cpu, board parts.Part) bool {
	return board.Attr("socket") == cpu.Attr("socket_type")
}

// CaseFits reports whether the case clears the GPU's length.
func CaseFits(gpu, pcCase parts.Part) bool {
	return pcCase.Number("GPU_clearance", 0) >= gpu.Number("length", 0)
}

// PSUCutoff is the minimum wattage for a PSU paired with gpu.
func PSUCutoff(gpu parts.Part) float64 {
	if gpu.Number("recommended_wattage", 500) > 600 {
		return 600
	}
	return 500
}

// PSUFits reports whether psu delivers enough power for gpu.
func PSUFits(gpu, psu parts.Part) bool {
	return psu.Number("wattage", 0) >= PSUCutoff(gpu)
}

// filter keeps the parts accepted by fits.
func filter(list []parts.Part, fits func(parts.Part) bool) []parts.Part {
	out := make([]parts.Part, 0, len(list))
	for _, p := range list {
		if fits(p) {
			out = append(out, p)
		}
	}
	return out
}

// byPriceDesc returns a copy of list ordered from most to least expensive.
func byPriceDesc(list []parts.Part) []parts.Part {
	out := append([]parts.Part(nil), list...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	return out
}
