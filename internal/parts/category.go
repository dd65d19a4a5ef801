package parts

import "strings"

// Category identifies one kind of component in the catalog.
type Category string

const (
	Motherboards Category = "motherboards"
	CPUs         Category = "cpus"
	Memory       Category = "memory"
	Storage      Category = "storage"
	GPUs         Category = "gpus"
	Cases        Category = "cases"
	CPUCoolers   Category = "cpu_coolers"
	CaseFans     Category = "case_fans"
	PSUs         Category = "psus"
)

// AllCategories lists every category in catalog order.
var AllCategories = []Category{Motherboards, CPUs, Memory, Storage, GPUs, Cases, CPUCoolers, CaseFans, PSUs}

// FileName is the CSV file the category is loaded from.
func (c Category) FileName() string {
	return string(c) + ".csv"
}

// ParseCategory resolves a path parameter such as "cpus" or "CPU_Coolers".
func ParseCategory(raw string) (Category, bool) {
	want := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, c := range AllCategories {
		if c == want {
			return c, true
		}
	}
	return "", false
}
