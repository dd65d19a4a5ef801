package parts

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog holds the parts available for recommendation, by category.
type Catalog struct {
	byCategory map[Category][]Part
}

// NewCatalog builds a catalog from already parsed parts.
func NewCatalog(byCategory map[Category][]Part) *Catalog {
	c := &Catalog{byCategory: make(map[Category][]Part, len(AllCategories))}
	for _, cat := range AllCategories {
		c.byCategory[cat] = append([]Part{}, byCategory[cat]...)
	}
	return c
}

// Parts returns a copy of the parts in a category.
func (c *Catalog) Parts(cat Category) []Part {
	if c == nil {
		return []Part{}
	}
	return append([]Part{}, c.byCategory[cat]...)
}

// Find looks a part up by exact name.
func (c *Catalog) Find(cat Category, name string) (Part, bool) {
	if c == nil {
		return Part{}, false
	}
	for _, p := range c.byCategory[cat] {
		if p.Name == name {
			return p, true
		}
	}
	return Part{}, false
}

// Size returns the total number of parts.
func (c *Catalog) Size() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, list := range c.byCategory {
		n += len(list)
	}
	return n
}

// Describe renders the catalog as plain text for an LLM prompt.
func (c *Catalog) Describe() string {
	var b strings.Builder
	for _, cat := range AllCategories {
		fmt.Fprintf(&b, "\n%s OPTIONS:\n", strings.ToUpper(string(cat)))
		for _, p := range c.Parts(cat) {
			fmt.Fprintf(&b, "- %s ($%.2f)", p.Name, p.Price)
			keys := make([]string, 0, len(p.Attributes))
			for k := range p.Attributes {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&b, " %s=%s", k, p.Attributes[k])
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
