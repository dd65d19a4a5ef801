package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for part picking.
type Client interface {
	Complete(ctx context.Context, input CompleteInput) (string, error)
}

// CompleteInput carries one system/user prompt pair.
type CompleteInput struct {
	System string
	User   string
	// JSON asks the provider to constrain the answer to a JSON object.
	JSON bool
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient stands in when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, input CompleteInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotImplemented
}
