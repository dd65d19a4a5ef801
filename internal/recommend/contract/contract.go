// Package contract holds the request and result shapes exchanged between the
// wizard and the recommendation backend.
package contract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// GamingPriority is the priority that makes the games step applicable.
const GamingPriority = "Gaming Performance"

// MaxRankedPriorities is how many priorities influence the recommendation.
const MaxRankedPriorities = 3

// Request is the body of POST /recommend.
type Request struct {
	Budget                float64  `json:"budget"`
	Priorities            []string `json:"priorities"`
	WantToPlayGames       []string `json:"wantToPlayGames,omitempty"`
	CurrentlyPlayingGames []string `json:"currentlyPlayingGames,omitempty"`
}

// GamingSelected reports whether gaming is among the top ranked priorities.
func GamingSelected(priorities []string) bool {
	for i, p := range priorities {
		if i >= MaxRankedPriorities {
			break
		}
		if p == GamingPriority {
			return true
		}
	}
	return false
}

// Result is a complete parts recommendation. It is never partially filled:
// ParseResult rejects bodies missing any required field.
type Result struct {
	Motherboard string  `json:"motherboard"`
	CPU         string  `json:"cpu"`
	Memory      string  `json:"memory"`
	Storage     string  `json:"storage"`
	GPU         string  `json:"gpu"`
	Case        string  `json:"case"`
	CPUCooler   string  `json:"cpu_cooler"`
	CaseFans    string  `json:"case_fans"`
	PSU         string  `json:"psu"`
	TotalCost   float64 `json:"total_cost"`
	Explanation string  `json:"explanation"`
}

// RequiredFields lists the keys every recommendation must carry.
var RequiredFields = []string{
	"motherboard", "cpu", "memory", "storage", "gpu", "case",
	"cpu_cooler", "case_fans", "psu", "total_cost", "explanation",
}

var fieldAliases = map[string]string{
	"cpuCooler": "cpu_cooler",
	"caseFans":  "case_fans",
	"totalCost": "total_cost",
}

// MissingFieldsError reports required keys that are absent, null or blank in
// a recommendation body.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields in recommendation: " + strings.Join(e.Fields, ", ")
}

// ParseResult decodes a recommendation body, accepting both snake_case and
// camelCase spellings of the multi-word keys.
func ParseResult(data []byte) (Result, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{}, fmt.Errorf("decode recommendation: %w", err)
	}
	if raw == nil {
		return Result{}, fmt.Errorf("decode recommendation: expected a JSON object")
	}
	for alias, canonical := range fieldAliases {
		if v, ok := raw[alias]; ok && !isNull(v) && isNull(raw[canonical]) {
			raw[canonical] = v
		}
	}

	var out Result
	texts := map[string]*string{
		"motherboard": &out.Motherboard,
		"cpu":         &out.CPU,
		"memory":      &out.Memory,
		"storage":     &out.Storage,
		"gpu":         &out.GPU,
		"case":        &out.Case,
		"cpu_cooler":  &out.CPUCooler,
		"case_fans":   &out.CaseFans,
		"psu":         &out.PSU,
		"explanation": &out.Explanation,
	}
	// A key counts as missing when it is absent, null or blank.
	var missing []string
	for _, f := range RequiredFields {
		v := raw[f]
		if isNull(v) {
			missing = append(missing, f)
			continue
		}
		dst, ok := texts[f]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return Result{}, fmt.Errorf("decode recommendation field %s: %w", f, err)
		}
		*dst = strings.TrimSpace(*dst)
		if *dst == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return Result{}, &MissingFieldsError{Fields: missing}
	}

	cost, err := parseCost(raw["total_cost"])
	if err != nil {
		return Result{}, err
	}
	out.TotalCost = cost
	return out, nil
}

// isNull is true for an absent key and for a JSON null.
func isNull(v json.RawMessage) bool {
	return len(v) == 0 || strings.TrimSpace(string(v)) == "null"
}

// UnmarshalJSON applies ParseResult.
func (r *Result) UnmarshalJSON(data []byte) error {
	parsed, err := ParseResult(data)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// parseCost accepts a JSON number or a string such as "$1,234.50".
func parseCost(raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("decode recommendation field total_cost: %w", err)
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("decode recommendation field total_cost: %q is not a number", s)
	}
	return n, nil
}
