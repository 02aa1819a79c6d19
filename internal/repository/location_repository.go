package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/tablebooker/restaurant-reservation/internal/model"
)

const locationPrefix = "location:"

// LocationRepo reads and writes restaurant location records.  Locations are
// seeded out of band and only their waiter list is mutated at runtime, when
// waiters register against a location.
type LocationRepo struct {
	rdb *redis.Client
}

// NewLocationRepo returns a LocationRepo bound to the given client.
func NewLocationRepo(rdb *redis.Client) *LocationRepo { return &LocationRepo{rdb: rdb} }

// Get fetches a location by id, returning (nil, nil) when unknown.
func (r *LocationRepo) Get(ctx context.Context, id string) (*model.Location, error) {
	raw, err := r.rdb.Get(ctx, locationPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var loc model.Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// Put writes the location record, replacing any previous version.
func (r *LocationRepo) Put(ctx context.Context, loc *model.Location) error {
	body, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, locationPrefix+loc.ID, body, 0).Err()
}
