package recommend

import (
	"fmt"
	"strings"

	"coreselect/internal/parts"
	"coreselect/internal/recommend/contract"
)

const systemPrompt = `You are a PC building expert who explains things simply.
You must:
1. Ensure CPU and motherboard socket compatibility
2. Match RAM type (DDR4/DDR5) with the CPU platform and motherboard
3. Keep explanations simple and beginner-friendly
4. Focus on what each part does and why it's good for the user
Respond with ONLY a valid JSON object containing the recommended parts.`

// candidateCatalog narrows each category to parts within its allocation,
// keeping the full list when nothing fits.
func candidateCatalog(in PickInput) *parts.Catalog {
	byCategory := make(map[parts.Category][]parts.Part, len(parts.AllCategories))
	for _, cat := range parts.AllCategories {
		list := in.Catalog.Parts(cat)
		if limit, ok := AllocationFor(in.Allocation, cat); ok {
			if affordable := WithinBudget(list, limit); len(affordable) > 0 {
				list = affordable
			}
		}
		byCategory[cat] = list
	}
	return parts.NewCatalog(byCategory)
}

// BuildPrompt renders the user prompt for an LLM pick.
func BuildPrompt(in PickInput) string {
	req := in.Request
	var b strings.Builder
	b.WriteString("Given the following user requirements and PC parts data, recommend the best PC build:\n\n")
	fmt.Fprintf(&b, "Budget: $%.2f\n\n", req.Budget)

	b.WriteString("User Priorities (in order of importance):\n")
	for i, p := range topPriorities(req.Priorities) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	if contract.GamingSelected(req.Priorities) {
		b.WriteString("\nGames they want to play:\n")
		for _, g := range req.WantToPlayGames {
			fmt.Fprintf(&b, "- %s\n", g)
		}
		b.WriteString("\nGames they currently play:\n")
		for _, g := range req.CurrentlyPlayingGames {
			fmt.Fprintf(&b, "- %s\n", g)
		}
	}

	b.WriteString("\nAvailable PC Parts:\n")
	b.WriteString(candidateCatalog(in).Describe())

	b.WriteString(`
IMPORTANT RULES:
1. CPU and motherboard must be compatible: the motherboard socket must equal the CPU socket_type.
2. RAM must be DDR4 for LGA 1700 and AM4 CPUs, DDR5 for LGA 1851 and AM5 CPUs, and must match the motherboard's memory_type.
3. The case GPU_clearance must be at least the GPU length.
4. The PSU wattage must be at least 600 when the GPU's recommended_wattage is above 600, otherwise at least 500.
5. Keep the explanation simple and beginner-friendly.

Please recommend ONE specific part from each category that best matches the user's requirements while staying within their budget. Format your response as a JSON object with the following structure:
{
    "motherboard": "exact name from list",
    "cpu": "exact name from list",
    "memory": "exact name from list",
    "storage": "exact name from list",
    "gpu": "exact name from list",
    "case": "exact name from list",
    "cpu_cooler": "exact name from list",
    "case_fans": "exact name from list",
    "psu": "exact name from list",
    "total_cost": total cost as a number,
    "explanation": "why these parts were chosen"
}`)
	return b.String()
}
