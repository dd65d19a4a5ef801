package recommend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a recommendation record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO recommendations (id, request, result, source, created_at)
VALUES ($1, $2, $3, $4, $5)`
	reqPayload, err := json.Marshal(rec.Request)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	resPayload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query, rec.ID, reqPayload, resPayload, rec.Source, rec.CreatedAt)
	return err
}

// GetByID returns a recommendation by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	const query = `
SELECT id, request, result, source, created_at
FROM recommendations
WHERE id = $1
LIMIT 1`
	var rec Record
	var reqPayload, resPayload []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&rec.ID, &reqPayload, &resPayload, &rec.Source, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if err := json.Unmarshal(reqPayload, &rec.Request); err != nil {
		return Record{}, fmt.Errorf("decode request: %w", err)
	}
	if err := json.Unmarshal(resPayload, &rec.Result); err != nil {
		return Record{}, fmt.Errorf("decode result: %w", err)
	}
	return rec, nil
}
