package recommend

import (
	"time"

	"coreselect/internal/recommend/contract"
)

const (
	SourceLLM     = "llm"
	SourceCatalog = "catalog"
)

// Record is one served recommendation, kept for GET /recommendations/:id.
type Record struct {
	ID        string           `json:"id"`
	Request   contract.Request `json:"request"`
	Result    contract.Result  `json:"result"`
	Source    string           `json:"source"`
	CreatedAt time.Time        `json:"createdAt"`
}
