package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"coreselect/internal/recommend/contract"
	"coreselect/internal/shared/storage/object"
)

// StorageKey names the single persisted wizard record.
const StorageKey = "coreselect-storage"

const storageVersion = 0

// Persister stores the last recommendation across restarts.
type Persister interface {
	// Load returns nil when nothing has been saved.
	Load(ctx context.Context) (*contract.Result, error)
	Save(ctx context.Context, res contract.Result) error
	Clear(ctx context.Context) error
}

type persistedState struct {
	State struct {
		Recommendation *contract.Result `json:"recommendation"`
	} `json:"state"`
	Version int `json:"version"`
}

// ObjectPersister keeps the record in an object store (local directory or S3).
type ObjectPersister struct {
	Store object.ObjectStore
	Key   string
}

// NewObjectPersister persists under StorageKey.
func NewObjectPersister(store object.ObjectStore) *ObjectPersister {
	return &ObjectPersister{Store: store, Key: StorageKey}
}

func (p *ObjectPersister) key() string {
	if p.Key == "" {
		return StorageKey
	}
	return p.Key
}

func (p *ObjectPersister) Load(ctx context.Context) (*contract.Result, error) {
	rc, err := p.Store.Open(ctx, p.key())
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", p.key(), err)
	}
	defer rc.Close()

	var state persistedState
	if err := json.NewDecoder(rc).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.key(), err)
	}
	if state.Version != storageVersion {
		return nil, fmt.Errorf("decode %s: unsupported version %d", p.key(), state.Version)
	}
	return state.State.Recommendation, nil
}

func (p *ObjectPersister) Save(ctx context.Context, res contract.Result) error {
	var state persistedState
	state.State.Recommendation = &res
	state.Version = storageVersion
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.key(), err)
	}
	if _, err := p.Store.Put(ctx, p.key(), "application/json", bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("write %s: %w", p.key(), err)
	}
	return nil
}

func (p *ObjectPersister) Clear(ctx context.Context) error {
	if err := p.Store.Delete(ctx, p.key()); err != nil && !errors.Is(err, object.ErrNotFound) {
		return fmt.Errorf("delete %s: %w", p.key(), err)
	}
	return nil
}

var _ Persister = (*ObjectPersister)(nil)
