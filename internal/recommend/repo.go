package recommend

import "context"

// Repo keeps served recommendations.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
}
