package recommend

import (
	"context"
	"testing"

	"coreselect/internal/llm"
	"coreselect/internal/parts"
)

func sampleCatalog(t *testing.T) *parts.Catalog {
	t.Helper()
	catalog, err := parts.Sample()
	if err != nil {
		t.Fatalf("parts.Sample: %v", err)
	}
	return catalog
}

type stubLLM struct {
	out   string
	err   error
	calls int
	last  llm.CompleteInput
}

func (s *stubLLM) Complete(ctx context.Context, input llm.CompleteInput) (string, error) {
	s.calls++
	s.last = input
	return s.out, s.err
}
