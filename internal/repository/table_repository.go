package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/tablebooker/restaurant-reservation/internal/model"
)

const tablePrefix = "table:"

// TableRepo reads table records.  Tables are static seed data; availability
// is computed from reservation records, not mutated here.
type TableRepo struct {
	rdb *redis.Client
}

// NewTableRepo returns a TableRepo bound to the given client.
func NewTableRepo(rdb *redis.Client) *TableRepo { return &TableRepo{rdb: rdb} }

// Get fetches a table by id, returning (nil, nil) when unknown.
func (r *TableRepo) Get(ctx context.Context, id string) (*model.Table, error) {
	raw, err := r.rdb.Get(ctx, tablePrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var t model.Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Put writes the table record; used by seeding.
func (r *TableRepo) Put(ctx context.Context, t *model.Table) error {
	body, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, tablePrefix+t.ID, body, 0).Err()
}
