package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"coreselect/internal/recommend/contract"
	"coreselect/internal/shared/util"
)

// ErrStale is returned when a fetch was superseded or its inputs changed
// before the response arrived. The response is discarded.
var ErrStale = errors.New("recommendation request superseded")

// Recommender performs the backend call.
type Recommender interface {
	Recommend(ctx context.Context, req contract.Request) (contract.Result, error)
}

// Fetcher runs at most one recommendation request at a time. Each Fetch
// takes a new generation and cancels the previous one; a response is
// delivered only while its generation is current and the inputs it was
// built from are unchanged.
type Fetcher struct {
	client Recommender
	inputs func() contract.Request

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewFetcher builds a fetcher reading request inputs from inputs.
func NewFetcher(client Recommender, inputs func() contract.Request) *Fetcher {
	return &Fetcher{client: client, inputs: inputs}
}

// Fetch snapshots the inputs and performs the request.
func (f *Fetcher) Fetch(ctx context.Context) (contract.Result, error) {
	req := f.inputs()
	hash := requestHash(req)

	fctx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	gen := f.gen
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	res, err := f.client.Recommend(fctx, req)

	f.mu.Lock()
	current := f.gen == gen
	if current {
		f.cancel = nil
	}
	f.mu.Unlock()

	if !current || requestHash(f.inputs()) != hash {
		return contract.Result{}, ErrStale
	}
	if err != nil {
		return contract.Result{}, err
	}
	return res, nil
}

// Invalidate cancels any in-flight request and makes its response stale.
func (f *Fetcher) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
}

func requestHash(req contract.Request) string {
	payload, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	return util.HashBytes(payload)
}
