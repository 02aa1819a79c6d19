package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/tablebooker/restaurant-reservation/internal/model"
)

const waiterPrefix = "waiter:"

// WaiterRepo stores per-waiter workload records keyed by waiter email.  The
// record's reservation-id list is what the least-busy assignment reads, so
// every booking, cancellation and postponement ends with a Put here.
//
// Get-modify-Put is not atomic across concurrent requests; two bookings
// racing on the same waiter can lose one list update.  The list is a load
// heuristic, not a ledger, so a lost update skews assignment slightly and
// nothing else.
type WaiterRepo struct {
	rdb *redis.Client
}

// NewWaiterRepo returns a WaiterRepo bound to the given client.
func NewWaiterRepo(rdb *redis.Client) *WaiterRepo { return &WaiterRepo{rdb: rdb} }

// Get fetches a waiter record by email, returning (nil, nil) when unknown.
func (r *WaiterRepo) Get(ctx context.Context, email string) (*model.Waiter, error) {
	raw, err := r.rdb.Get(ctx, waiterPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var w model.Waiter
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Put writes the waiter record, replacing any previous version.
func (r *WaiterRepo) Put(ctx context.Context, w *model.Waiter) error {
	body, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, waiterPrefix+w.Email, body, 0).Err()
}
