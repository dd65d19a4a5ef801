package parts

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Part is one catalog row. Name and Price are always present; everything
// else is kept as the raw column value.
type Part struct {
	Name       string
	Price      float64
	Attributes map[string]string
}

// Attr returns the trimmed attribute value for key, matching case-insensitively.
func (p Part) Attr(key string) string {
	if v, ok := p.Attributes[key]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range p.Attributes {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Number parses a numeric attribute, returning def when absent or malformed.
func (p Part) Number(key string, def float64) float64 {
	raw := p.Attr(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

// MarshalJSON flattens the part into a single record, the shape GET /parts returns.
func (p Part) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Attributes)+2)
	for k, v := range p.Attributes {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			out[k] = n
			continue
		}
		out[k] = v
	}
	out["name"] = p.Name
	out["price"] = p.Price
	return json.Marshal(out)
}
