package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/tablebooker/restaurant-reservation/internal/model"
)

const reservationPrefix = "reservation:"

// ReservationRepo stores reservation records in Redis as JSON values keyed
// by the composite reservation id.  Because the id is deterministic per
// table-slot-date, a conditional SET is enough to guarantee that at most one
// active reservation exists for any bookable unit: Claim performs the
// insert-if-free check and the write as a single atomic step on the server,
// closing the check-then-act window a separate GET+SET would leave open.
type ReservationRepo struct {
	rdb *redis.Client
}

// NewReservationRepo returns a ReservationRepo bound to the given client.
func NewReservationRepo(rdb *redis.Client) *ReservationRepo { return &ReservationRepo{rdb: rdb} }

// claimScript inserts the reservation unless the key already holds a
// non-cancelled record.  A cancelled record may be overwritten: cancellation
// is terminal, so the slot is bookable again.  Returns 1 when the write
// happened, 0 on conflict.
var claimScript = redis.NewScript(`
	local cur = redis.call('GET', KEYS[1])
	if cur then
		local rec = cjson.decode(cur)
		if rec.status ~= 'Cancelled' then
			return 0
		end
	end
	redis.call('SET', KEYS[1], ARGV[1])
	return 1
`)

// Get fetches a reservation by its composite id.  A missing key yields
// (nil, nil) so callers can treat absence as "slot free" without sentinel
// comparisons.
func (r *ReservationRepo) Get(ctx context.Context, id string) (*model.Reservation, error) {
	raw, err := r.rdb.Get(ctx, reservationPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var res model.Reservation
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Claim atomically inserts the reservation if its key is free or holds only
// a cancelled record.  It returns false when an active reservation already
// occupies the key.
func (r *ReservationRepo) Claim(ctx context.Context, res *model.Reservation) (bool, error) {
	body, err := json.Marshal(res)
	if err != nil {
		return false, err
	}
	n, err := claimScript.Run(ctx, r.rdb, []string{reservationPrefix + res.ID}, string(body)).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Put unconditionally writes the reservation, replacing any existing record
// under the same key.  Use it for status updates on records the caller has
// already loaded; new bookings must go through Claim.
func (r *ReservationRepo) Put(ctx context.Context, res *model.Reservation) error {
	body, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, reservationPrefix+res.ID, body, 0).Err()
}

// Delete removes the reservation record.  Deleting a missing key is not an
// error; postponement compensation relies on that.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, reservationPrefix+id).Err()
}

// All scans every reservation record.  This is the full-table scan behind
// reservation history; the keyspace is bounded by tables x slots x dates so
// SCAN with a generous page size is acceptable here.
func (r *ReservationRepo) All(ctx context.Context) ([]model.Reservation, error) {
	var out []model.Reservation
	iter := r.rdb.Scan(ctx, 0, reservationPrefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		raw, err := r.rdb.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // deleted between scan and fetch
		}
		if err != nil {
			return nil, err
		}
		var res model.Reservation
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
