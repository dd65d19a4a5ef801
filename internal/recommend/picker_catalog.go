package recommend

import (
	"context"
	"fmt"
	"math"
	"strings"

	"coreselect/internal/parts"
	"coreselect/internal/recommend/contract"
)

// CatalogPicker builds deterministically from the catalog: the most
// expensive compatible part that fits each category's allocation, or the
// cheapest compatible part when nothing fits.
type CatalogPicker struct{}

func (CatalogPicker) Name() string { return SourceCatalog }

func (CatalogPicker) Pick(ctx context.Context, in PickInput) (contract.Result, error) {
	if err := ctx.Err(); err != nil {
		return contract.Result{}, err
	}
	choose := func(cat parts.Category, fits func(parts.Part) bool) (parts.Part, error) {
		list := in.Catalog.Parts(cat)
		if fits != nil {
			list = filter(list, fits)
		}
		if len(list) == 0 {
			return parts.Part{}, fmt.Errorf("%w: %s", ErrNoCandidates, cat)
		}
		ordered := byPriceDesc(list)
		if limit, ok := AllocationFor(in.Allocation, cat); ok {
			if affordable := WithinBudget(ordered, limit); len(affordable) > 0 {
				return affordable[0], nil
			}
			return ordered[len(ordered)-1], nil
		}
		// unbudgeted categories get the cheapest option
		return ordered[len(ordered)-1], nil
	}

	cpu, err := choose(parts.CPUs, nil)
	if err != nil {
		return contract.Result{}, err
	}
	gpu, err := choose(parts.GPUs, nil)
	if err != nil {
		return contract.Result{}, err
	}
	board, err := choose(parts.Motherboards, func(p parts.Part) bool { return MotherboardFits(cpu, p) })
	if err != nil {
		return contract.Result{}, err
	}
	ram, err := choose(parts.Memory, func(p parts.Part) bool {
		return MemoryFits(cpu, p) && (board.Attr("memory_type") == "" || p.Attr("dram") == board.Attr("memory_type"))
	})
	if err != nil {
		return contract.Result{}, err
	}
	storage, err := choose(parts.Storage, nil)
	if err != nil {
		return contract.Result{}, err
	}
	pcCase, err := choose(parts.Cases, func(p parts.Part) bool { return CaseFits(gpu, p) })
	if err != nil {
		return contract.Result{}, err
	}
	cooler, err := choose(parts.CPUCoolers, nil)
	if err != nil {
		return contract.Result{}, err
	}
	fans, err := choose(parts.CaseFans, nil)
	if err != nil {
		return contract.Result{}, err
	}
	psu, err := choose(parts.PSUs, func(p parts.Part) bool { return PSUFits(gpu, p) })
	if err != nil {
		return contract.Result{}, err
	}

	build := []parts.Part{board, cpu, ram, storage, gpu, pcCase, cooler, fans, psu}
	total := 0.0
	for _, p := range build {
		total += p.Price
	}
	return contract.Result{
		Motherboard: board.Name,
		CPU:         cpu.Name,
		Memory:      ram.Name,
		Storage:     storage.Name,
		GPU:         gpu.Name,
		Case:        pcCase.Name,
		CPUCooler:   cooler.Name,
		CaseFans:    fans.Name,
		PSU:         psu.Name,
		TotalCost:   math.Round(total*100) / 100,
		Explanation: explain(in.Request, cpu, gpu, ram, psu),
	}, nil
}

func explain(req contract.Request, cpu, gpu, ram, psu parts.Part) string {
	var b strings.Builder
	if len(req.Priorities) > 0 {
		fmt.Fprintf(&b, "This build is tuned for %s. ", strings.Join(topPriorities(req.Priorities), ", "))
	}
	fmt.Fprintf(&b, "The %s does the general computing work and the %s handles graphics. ", cpu.Name, gpu.Name)
	if dram := ram.Attr("dram"); dram != "" {
		fmt.Fprintf(&b, "%s uses %s memory, which matches the processor's platform. ", ram.Name, dram)
	}
	fmt.Fprintf(&b, "The %s supplies enough power for the graphics card.", psu.Name)
	return b.String()
}

func topPriorities(list []string) []string {
	if len(list) > contract.MaxRankedPriorities {
		return list[:contract.MaxRankedPriorities]
	}
	return list
}

var _ Picker = CatalogPicker{}
